package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AppEnv   string
	LogLevel string

	TransferReportSchedule string
	LotReportSchedule      string
	SnowflakeNode          int64
}

// LoadConfig reads envFile into the process environment, when it exists, and resolves
// every setting from the environment with defaults for local development.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "fulfillment")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TRANSFER_REPORT_SCHEDULE", "0 */5 * * * *")
	v.SetDefault("LOT_REPORT_SCHEDULE", "*/30 * * * * *")
	v.SetDefault("SNOWFLAKE_NODE", 1)

	cfg := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		AppEnv:                 strings.ToLower(v.GetString("APP_ENV")),
		LogLevel:               v.GetString("LOG_LEVEL"),
		TransferReportSchedule: v.GetString("TRANSFER_REPORT_SCHEDULE"),
		LotReportSchedule:      v.GetString("LOT_REPORT_SCHEDULE"),
		SnowflakeNode:          v.GetInt64("SNOWFLAKE_NODE"),
	}

	if cfg.SnowflakeNode < 0 || cfg.SnowflakeNode > 1023 {
		return Config{}, fmt.Errorf("SNOWFLAKE_NODE must be between 0 and 1023, got %d", cfg.SnowflakeNode)
	}
	return cfg, nil
}

// DSN is accepted by both the gorm postgres driver and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
