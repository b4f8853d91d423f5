package hydro

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"pkg.world.dev/hydro/component"
	"pkg.world.dev/hydro/log"
	"pkg.world.dev/hydro/statsd"
)

const redisPingTimeout = 5 * time.Second

// Universe creates Worlds and keeps track of them. CreateWorld may be called from several goroutines.
type Universe struct {
	mu     sync.Mutex
	worlds []*World
	byID   map[uuid.UUID]*World

	types    component.Registry
	cfg      *Config
	capacity int
	logger   zerolog.Logger
	redis    *redis.Client
}

func NewUniverse(opts ...UniverseOption) (*Universe, error) {
	u := &Universe{
		byID:     map[uuid.UUID]*World{},
		capacity: DefaultInitialCapacity,
		logger:   zlog.Logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.cfg != nil {
		if err := u.applyConfig(*u.cfg); err != nil {
			return nil, err
		}
	}
	if u.capacity < 0 {
		return nil, eris.Errorf("initial capacity must not be negative, got %d", u.capacity)
	}
	return u, nil
}

func (u *Universe) applyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		level, _ := zerolog.ParseLevel(cfg.LogLevel)
		u.logger = u.logger.Level(level)
	}
	u.capacity = cfg.InitialCapacity
	if cfg.StatsdAddress != "" {
		if err := statsd.Init(cfg.StatsdAddress, []string{"namespace:" + cfg.Namespace}); err != nil {
			return eris.Wrap(err, "failed to start statsd")
		}
	}
	if cfg.RedisAddress != "" && u.types == nil {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       0, // use default DB
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return eris.Wrapf(err, "failed to reach redis at %s", cfg.RedisAddress)
		}
		u.redis = client
		u.types = component.NewRedisRegistry(client, cfg.Namespace)
	}
	return nil
}

// CreateWorld returns a new, empty World.
func (u *Universe) CreateWorld() *World {
	types := u.types
	if types == nil {
		types = component.NewTypeRegistry()
	}
	id := uuid.New()
	rootLogger := log.Logger{Logger: &u.logger}
	w := newWorld(id, types, u.capacity, rootLogger.CreateWorldLogger(id.String()))

	u.mu.Lock()
	u.worlds = append(u.worlds, w)
	u.byID[id] = w
	u.mu.Unlock()

	w.logger.Debug().Int("initial_capacity", u.capacity).Msg("world created")
	return w
}

// Worlds returns the Worlds created so far, oldest first.
func (u *Universe) Worlds() []*World {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]*World(nil), u.worlds...)
}

func (u *Universe) World(id uuid.UUID) (*World, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	w, ok := u.byID[id]
	return w, ok
}

// Close releases the Redis connection the Universe opened from its Config, if any.
func (u *Universe) Close() error {
	if u.redis == nil {
		return nil
	}
	err := u.redis.Close()
	u.redis = nil
	return eris.Wrap(err, "")
}
