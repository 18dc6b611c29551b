package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Storage drivers selectable via STORAGE_DRIVER
const (
	StorageDriverMongo    = "mongo"
	StorageDriverPostgres = "postgres"
)

type ServerCfg struct {
	Port          int    `env:"PORT" envDefault:"5000"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"mongo"`
}

type MongoCfg struct {
	URI         string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB" envDefault:"contacts"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

type PostgresCfg struct {
	User        string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password    string `env:"POSTGRES_PASSWORD" envDefault:""`
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	Database    string `env:"POSTGRES_DB" envDefault:"contacts"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Config struct {
	ServerCfg   ServerCfg
	MongoCfg    MongoCfg
	PostgresCfg PostgresCfg
	RedisCfg    RedisCfg
}

func Build() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}
	return cfg, nil
}
