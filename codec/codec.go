// Package codec is the JSON encoding used wherever hydro turns values into bytes: shared-value fingerprints
// and type-registry payloads.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

func Decode[T any](bz []byte) (T, error) {
	var v T
	if err := json.Unmarshal(bz, &v); err != nil {
		return v, eris.Wrap(err, "decode")
	}
	return v, nil
}

func Encode(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrapf(err, "encode %T", v)
	}
	return bz, nil
}
