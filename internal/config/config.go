package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nDmitry/storefront/internal/entity"
	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

// Load reads the configuration from defaults, an optional YAML file at path
// and STOREFRONT_* environment variables, in increasing priority.
func Load(path string) (*entity.Config, error) {
	v := viper.New()

	v.SetDefault("http.port", "8080")
	v.SetDefault("cache.backend", entity.CacheBackendMemory)
	v.SetDefault("cache.sweep_interval", "5m")
	v.SetDefault("redis.address", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("upstream.rates_url", "http://rates:8081")
	v.SetDefault("upstream.promo_url", "http://promo:8082")
	v.SetDefault("upstream.catalog_url", "http://supplier/catalog")
	v.SetDefault("upstream.timeout", "10s")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var config entity.Config

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(config *entity.Config) error {
	switch config.Cache.Backend {
	case entity.CacheBackendMemory, entity.CacheBackendRedis:
	default:
		return fmt.Errorf("cache backend must be %s or %s, got %q",
			entity.CacheBackendMemory, entity.CacheBackendRedis, config.Cache.Backend)
	}

	if config.Cache.SweepInterval <= 0 {
		return errors.New("cache sweep interval must be positive")
	}

	if config.Upstream.Timeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}

	return nil
}
