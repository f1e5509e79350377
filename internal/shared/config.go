package shared

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type (
	Config struct {
		AppEnv      string `yaml:"app_env" env:"APP_ENV" env-default:"prod"`
		LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
		HTTPAddr    string `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
		MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR" env-description:"separate metrics listener; empty serves /metrics on HTTP_ADDR only"`

		DB    DB    `yaml:"db"`
		Redis Redis `yaml:"redis"`
		HTTP  HTTP  `yaml:"http"`
		Seed  Seed  `yaml:"seed"`
	}

	DB struct {
		Driver       string `yaml:"driver" env:"DB_DRIVER" env-default:"mysql" env-description:"mysql, postgres, sqlite or memory"`
		DSN          string `yaml:"dsn" env:"DB_DSN" env-default:"root:root@tcp(localhost:3306)/villas?parseTime=true&loc=UTC"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
		Retries      uint64 `yaml:"connect_retries" env:"DB_CONNECT_RETRIES" env-default:"5"`
	}

	Redis struct {
		Addr            string `yaml:"addr" env:"REDIS_ADDR" env-description:"empty disables the read cache"`
		Password        string `yaml:"password" env:"REDIS_PASSWORD"`
		DB              int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds" env:"CACHE_TTL_SECONDS" env-default:"900"`
	}

	HTTP struct {
		RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"15s"`
		RateLimitRPS   float64       `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS" env-default:"0" env-description:"0 disables limiting"`
		RateLimitBurst int           `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST" env-default:"20"`
	}

	Seed struct {
		Workers   int    `yaml:"workers" env:"SEED_WORKERS" env-default:"4"`
		SourceURL string `yaml:"source_url" env:"SEED_SOURCE_URL" env-description:"remote listing; empty seeds the built-in villas"`
		SourceKey string `yaml:"source_key" env:"SEED_SOURCE_KEY"`
	}
)

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}

// Load reads path (YAML, optional) and then the environment, which wins.
func Load(path string) (Config, error) {
	var c Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &c)
	} else {
		err = cleanenv.ReadEnv(&c)
	}
	if err != nil {
		return Config{}, errors.Wrap(err, "config error")
	}
	if c.Seed.Workers <= 0 {
		c.Seed.Workers = 1
	}
	if c.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: villas are not persisted")
	}
	return c, nil
}

// Usage describes every supported environment variable.
func Usage() string {
	var c Config
	u, _ := cleanenv.GetDescription(&c, nil)
	return u
}
