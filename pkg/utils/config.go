package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Business BusinessConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Timezone string
}

// Location resolves the configured timezone, falling back to local time.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type StoreConfig struct {
	Driver  string
	DataDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type AdminConfig struct {
	TokenHash string
}

type RedisConfig struct {
	Addr   string
	Stream string
}

type BusinessConfig struct {
	PaymentSuccessRate float64
	MaxPaymentAttempts int
	BookingHorizonDays int
}

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// LoadConfig reads path (a .env file) when it exists, then the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "art-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "Asia/Kuching")
	v.SetDefault("STORE_DRIVER", StoreDriverFile)
	v.SetDefault("DATA_DIR", "data/")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_STREAM", "art:notifications")
	v.SetDefault("PAYMENT_SUCCESS_RATE", 0.8)
	v.SetDefault("MAX_PAYMENT_ATTEMPTS", 3)
	v.SetDefault("BOOKING_HORIZON_DAYS", 30)

	if path != "" {
		var notFound viper.ConfigFileNotFoundError
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Port:     v.GetString("PORT"),
			Debug:    v.GetBool("DEBUG"),
			LogPath:  v.GetString("LOG_PATH"),
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		Store: StoreConfig{
			Driver:  v.GetString("STORE_DRIVER"),
			DataDir: v.GetString("DATA_DIR"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Admin: AdminConfig{
			TokenHash: v.GetString("ADMIN_TOKEN_HASH"),
		},
		Redis: RedisConfig{
			Addr:   v.GetString("REDIS_ADDR"),
			Stream: v.GetString("REDIS_STREAM"),
		},
		Business: BusinessConfig{
			PaymentSuccessRate: v.GetFloat64("PAYMENT_SUCCESS_RATE"),
			MaxPaymentAttempts: v.GetInt("MAX_PAYMENT_ATTEMPTS"),
			BookingHorizonDays: v.GetInt("BOOKING_HORIZON_DAYS"),
		},
	}

	if config.Business.MaxPaymentAttempts < 1 {
		return nil, fmt.Errorf("invalid MAX_PAYMENT_ATTEMPTS %d", config.Business.MaxPaymentAttempts)
	}
	if config.Business.PaymentSuccessRate < 0 || config.Business.PaymentSuccessRate > 1 {
		return nil, fmt.Errorf("invalid PAYMENT_SUCCESS_RATE %.2f", config.Business.PaymentSuccessRate)
	}

	return config, nil
}
