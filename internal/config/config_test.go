package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, value := range overrides {
		v.Set(key, value)
	}
	return v
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(newViper(map[string]interface{}{"JWT_SECRET": "secret"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "sqlite", mustParse(t, map[string]interface{}{"JWT_SECRET": "s", "DB_DRIVER": " SQLite "}).Database.Driver)
}

func mustParse(t *testing.T, overrides map[string]interface{}) *Config {
	t.Helper()
	cfg, err := Parse(newViper(overrides))
	require.NoError(t, err)
	return cfg
}

func TestParseRequiresSecret(t *testing.T) {
	_, err := Parse(newViper(nil))
	assert.Error(t, err)
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	_, err := Parse(newViper(map[string]interface{}{"JWT_SECRET": "s", "DB_DRIVER": "mysql"}))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := Database{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", d.DSN())

	d.URL = "postgres://x"
	assert.Equal(t, "postgres://x", d.DSN())
}
