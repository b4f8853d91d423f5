package component

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"pkg.world.dev/hydro/codec"
)

const defaultRedisTimeout = 5 * time.Second

/*
	KEYS:
-	TYPE IDS:     TYPES:NS-hydro          hash name -> TypeID
-	TYPE SCHEMAS: SCHEMAS:NS-hydro        hash name -> SchemaRecord (json)
-	NEXT TYPE ID: TYPEID:NS-hydro:NEXT    -> uint32 counter
*/

var _ Registry = &RedisRegistry{}

// RedisRegistry is a Registry whose assignments live in Redis, so Worlds in different processes that point at
// the same namespace agree on TypeIDs. Assignments are cached locally after the first round trip.
type RedisRegistry struct {
	client    redis.Cmdable
	namespace string
	timeout   time.Duration

	mu    sync.RWMutex
	cache map[string]TypeID
}

// SchemaRecord is the payload stored per name in the schema hash.
type SchemaRecord struct {
	// Type is the Go type that first claimed the name.
	Type   string          `json:"type"`
	Schema json.RawMessage `json:"schema"`
}

type RedisRegistryOption func(*RedisRegistry)

// WithRedisTimeout bounds each Register call. The default is 5 seconds.
func WithRedisTimeout(d time.Duration) RedisRegistryOption {
	return func(r *RedisRegistry) {
		r.timeout = d
	}
}

func NewRedisRegistry(client redis.Cmdable, namespace string, opts ...RedisRegistryOption) *RedisRegistry {
	r := &RedisRegistry{
		client:    client,
		namespace: namespace,
		timeout:   defaultRedisTimeout,
		cache:     map[string]TypeID{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisRegistry) typesKey() string {
	return fmt.Sprintf("TYPES:NS-%s", r.namespace)
}

func (r *RedisRegistry) schemasKey() string {
	return fmt.Sprintf("SCHEMAS:NS-%s", r.namespace)
}

func (r *RedisRegistry) nextIDKey() string {
	return fmt.Sprintf("TYPEID:NS-%s:NEXT", r.namespace)
}

func (r *RedisRegistry) Register(t reflect.Type) (TypeID, error) {
	name := Name(t)
	if name == "" {
		return 0, eris.Wrapf(ErrEmptyName, "type %s", t)
	}
	r.mu.RLock()
	id, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	schema, err := SchemaOf(t)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	// The schema is claimed before the id so a reader that sees an id can always find its schema.
	if err := r.claimSchema(ctx, name, SchemaRecord{Type: t.String(), Schema: schema}); err != nil {
		return 0, eris.Wrapf(err, "name %q (type %s)", name, t)
	}
	id, err = r.claimID(ctx, name)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.cache[name] = id
	r.mu.Unlock()
	return id, nil
}

func (r *RedisRegistry) claimSchema(ctx context.Context, name string, record SchemaRecord) error {
	payload, err := codec.Encode(record)
	if err != nil {
		return err
	}
	set, err := r.client.HSetNX(ctx, r.schemasKey(), name, payload).Result()
	if err != nil {
		return eris.Wrap(err, "store schema")
	}
	if set {
		return nil
	}
	raw, err := r.client.HGet(ctx, r.schemasKey(), name).Bytes()
	if err != nil {
		return eris.Wrap(err, "load schema")
	}
	existing, err := codec.Decode[SchemaRecord](raw)
	if err != nil {
		return err
	}
	match, err := SchemaMatches(existing.Schema, record.Schema)
	if err != nil {
		return err
	}
	if !match {
		return eris.Wrapf(ErrSchemaMismatch, "first claimed by %s", existing.Type)
	}
	return nil
}

func (r *RedisRegistry) claimID(ctx context.Context, name string) (TypeID, error) {
	if id, ok, err := r.loadID(ctx, name); err != nil || ok {
		return id, err
	}
	next, err := r.client.Incr(ctx, r.nextIDKey()).Result()
	if err != nil {
		return 0, eris.Wrap(err, "allocate type id")
	}
	set, err := r.client.HSetNX(ctx, r.typesKey(), name, next).Result()
	if err != nil {
		return 0, eris.Wrap(err, "store type id")
	}
	if set {
		return TypeID(next), nil
	}
	// lost the race; the counter value is simply skipped
	id, ok, err := r.loadID(ctx, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, eris.Errorf("type id for %q vanished", name)
	}
	return id, nil
}

func (r *RedisRegistry) loadID(ctx context.Context, name string) (TypeID, bool, error) {
	raw, err := r.client.HGet(ctx, r.typesKey(), name).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, eris.Wrap(err, "load type id")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false, eris.Wrapf(err, "type id for %q", name)
	}
	return TypeID(id), true, nil
}
