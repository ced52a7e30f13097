package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"lastmile/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisURL enables assignment notifications when set.
	RedisURL           string
	RedisChannelPrefix string

	DispatchSchedule string
	DispatchRate     float64
	DispatchBurst    int

	// SettingsPath points at the optional YAML dispatch settings.
	SettingsPath string
}

// DSN returns the PostgreSQL connection string in key=value form.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment after loading envFiles into it.
// Missing env files are skipped; variables already set in the process win.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	rate, err := floatEnv("DISPATCH_RATE", 1)
	if err != nil {
		return Config{}, err
	}

	burst, err := intEnv("DISPATCH_BURST", 3)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:           stringEnv("HTTP_PORT", "8080"),
		DBHost:             stringEnv("DB_HOST", "localhost"),
		DBPort:             stringEnv("DB_PORT", "5432"),
		DBUser:             stringEnv("DB_USER", "postgres"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             stringEnv("DB_NAME", "lastmile"),
		DBSslMode:          stringEnv("DB_SSLMODE", "disable"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisChannelPrefix: os.Getenv("REDIS_CHANNEL_PREFIX"),
		DispatchSchedule:   os.Getenv("DISPATCH_SCHEDULE"),
		DispatchRate:       rate,
		DispatchBurst:      burst,
		SettingsPath:       os.Getenv("DISPATCH_SETTINGS_PATH"),
	}, nil
}

func stringEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}
