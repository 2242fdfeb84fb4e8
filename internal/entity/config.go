package entity

import "time"

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type CacheConfig struct {
	// Backend for rendered feeds, "memory" or "redis".
	Backend       string        `mapstructure:"backend"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type UpstreamConfig struct {
	RatesURL   string        `mapstructure:"rates_url"`
	PromoURL   string        `mapstructure:"promo_url"`
	CatalogURL string        `mapstructure:"catalog_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}
