package config

import (
	"fmt"
	"time"

	"notable/utils"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	SecretKey         string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
	Issuer            string
}

type StatsConfig struct {
	// IANA timezone name used for calendar-date grouping in the
	// notes-per-day aggregation. Never the ambient server timezone.
	Timezone string
}

type ServerConfig struct {
	Port           string
	MaxRequestSize int64
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Stats    StatsConfig
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "notable"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
	}
}

func LoadJWTConfig() (JWTConfig, error) {
	secret := utils.GetEnvAsString("JWT_SECRET_KEY", "")
	if secret == "" {
		return JWTConfig{}, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	return JWTConfig{
		SecretKey:         secret,
		AccessExpiration:  time.Duration(utils.GetEnvAsInt("JWT_EXPIRATION_TIME", 3600)) * time.Second,
		RefreshExpiration: time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_EXPIRATION_TIME", 604800)) * time.Second,
		Issuer:            utils.GetEnvAsString("JWT_ISSUER", "notable"),
	}, nil
}

func LoadStatsConfig() (StatsConfig, error) {
	tz := utils.GetEnvAsString("STATS_TIMEZONE", "UTC")
	if _, err := time.LoadLocation(tz); err != nil {
		return StatsConfig{}, fmt.Errorf("invalid STATS_TIMEZONE %q: %w", tz, err)
	}
	return StatsConfig{Timezone: tz}, nil
}

func Load() (*Config, error) {
	jwtCfg, err := LoadJWTConfig()
	if err != nil {
		return nil, err
	}

	statsCfg, err := LoadStatsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:           utils.GetEnvAsString("PORT", "8080"),
			MaxRequestSize: int64(utils.GetEnvAsInt("MAX_REQUEST_SIZE", 1<<20)),
		},
		Database: LoadDatabaseConfig(),
		Redis:    LoadRedisConfig(),
		JWT:      jwtCfg,
		Stats:    statsCfg,
	}, nil
}
