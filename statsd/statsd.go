// Package statsd is a helper package that wraps the few statsd calls hydro makes.
// It hides the datadog dependency so a different client only needs to change this file.
package statsd

import (
	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const (
	EntitiesCreated   = "entities.created"
	EntitiesDeleted   = "entities.deleted"
	ArchetypesCreated = "archetypes.created"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// SetClient replaces the global client; tests use it to capture metrics.
func SetClient(c ddstatsd.ClientInterface) {
	if c == nil {
		c = &ddstatsd.NoOpClient{}
	}
	client = c
}

// Count emits a counter. Failures are logged, never returned: metrics must not break storage.
func Count(name string, value int64, tags []string) {
	if value == 0 {
		return
	}
	if err := Client().Count(name, value, tags, 1); err != nil {
		log.Logger.Warn().Err(err).Str("metric", name).Msg("failed to emit count")
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("hydro"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "")
	}
	client = newClient
	return nil
}
