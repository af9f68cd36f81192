package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	JWT      JWT
	Logger   LoggerMode
}

type Server struct {
	Port           string
	Environment    string
	AllowedOrigins string
}

type Database struct {
	Driver     string
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type JWT struct {
	Secret string
}

type LoggerMode struct {
	Level string
}

var defaults = map[string]interface{}{
	"PORT":            "8080",
	"APP_ENV":         "development",
	"ALLOWED_ORIGINS": "",
	"LOG_LEVEL":       "info",
	"JWT_SECRET":      "",
	"DB_DRIVER":       "postgres",
	"DATABASE_URL":    "",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "",
	"DB_PASSWORD":     "",
	"DB_NAME":         "cohort",
	"DB_SSLMODE":      "disable",
	"SQLITE_PATH":     "cohort.db",
	"REDIS_ADDR":      "localhost:6379",
	"REDIS_PASSWORD":  "",
	"REDIS_DB":        0,
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return Parse(v)
}

func Parse(v *viper.Viper) (*Config, error) {
	c := &Config{
		Server: Server{
			Port:           v.GetString("PORT"),
			Environment:    v.GetString("APP_ENV"),
			AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		},
		Database: Database{
			Driver:     strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			URL:        v.GetString("DATABASE_URL"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT:    JWT{Secret: v.GetString("JWT_SECRET")},
		Logger: LoggerMode{Level: v.GetString("LOG_LEVEL")},
	}

	if c.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return c, nil
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}
