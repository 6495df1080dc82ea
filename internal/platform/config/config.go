package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	LockTTLMillis int    `mapstructure:"LOCK_TTL_MS"`
	CacheTTLSec   int    `mapstructure:"CACHE_TTL_SEC"`
}

// Load reads app.env from path, with OS environment variables taking
// precedence over the file. A missing file is fine: env vars and the
// defaults below cover every key.
func Load(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("LOCK_TTL_MS", 5000)
	viper.SetDefault("CACHE_TTL_SEC", 30)

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}
	err = viper.Unmarshal(&cfg)
	return
}
