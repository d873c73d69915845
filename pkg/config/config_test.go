package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 24*60, cfg.JWT.Expiration)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Minute, cfg.Auth.LoginRateWindow)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "8081")
	v.Set("BCRYPT_COST", "4")
	v.Set("DB_MIGRATE", "true")

	cfg := fromViper(v)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Storage.Migrate)
}

func TestValidate(t *testing.T) {
	cfg := fromViper(viper.New())
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.JWT.Secret, "development usa un secret por defecto")

	prod := fromViper(viper.New())
	prod.App.Env = "production"
	assert.Error(t, prod.Validate(), "production sin JWT_SECRET debe fallar")

	bad := fromViper(viper.New())
	bad.Storage.Driver = "redis"
	assert.Error(t, bad.Validate())
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "backoffice", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/backoffice?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
