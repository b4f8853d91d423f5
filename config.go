package hydro

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	DefaultLogLevel        = "info"
	DefaultNamespace       = "hydro"
	DefaultInitialCapacity = 256
)

// Config is the environment-driven configuration of a Universe.
type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string `config:"HYDRO_LOG_LEVEL"`
	// RedisAddress, when set, makes every World of the Universe share a Redis-backed type registry.
	RedisAddress  string `config:"HYDRO_REDIS_ADDRESS"`
	RedisPassword string `config:"HYDRO_REDIS_PASSWORD"`
	// Namespace prefixes the registry keys in Redis.
	Namespace string `config:"HYDRO_NAMESPACE"`
	// StatsdAddress, when set, enables Datadog metrics.
	StatsdAddress string `config:"HYDRO_STATSD_ADDRESS"`
	// InitialCapacity is the number of entities a new World preallocates for.
	InitialCapacity int `config:"HYDRO_INITIAL_CAPACITY"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:        DefaultLogLevel,
		Namespace:       DefaultNamespace,
		InitialCapacity: DefaultInitialCapacity,
	}
}

// LoadConfig reads HYDRO_* environment variables over the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "HYDRO_LOG_LEVEL %q", c.LogLevel)
	}
	if c.InitialCapacity < 0 {
		return eris.Errorf("HYDRO_INITIAL_CAPACITY must not be negative, got %d", c.InitialCapacity)
	}
	if c.RedisAddress != "" && c.Namespace == "" {
		return eris.New("HYDRO_NAMESPACE must be set when HYDRO_REDIS_ADDRESS is set")
	}
	return nil
}
