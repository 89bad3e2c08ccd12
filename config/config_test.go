package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DB_ENGINE", "PORT", "JWT_SECRET", "BCRYPT_COST", "REDIS_ADDR", "MONGODB_TIMEOUT"} {
		t.Setenv(k, "")
	}
	c := Load()

	assert.Equal(t, "postgres", c.DBEngine)
	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Empty(t, c.RedisAddr)
	assert.Equal(t, 10*time.Second, c.MongoTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_ENGINE", "mongo")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	c := Load()

	assert.Equal(t, "mongo", c.DBEngine)
	assert.Equal(t, int32(10), c.DBMaxConns)
	assert.False(t, c.RateLimitEnabled)
	assert.Equal(t, "postgres://app:pw@db:6543/shop?sslmode=disable", c.PostgresDSN())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())
}

func TestPostgresDSNEscapesCredentials(t *testing.T) {
	c := &Config{DBUser: "app user", DBPassword: "p@ss/w#rd:1", DBHost: "db", DBPort: "5432", DBName: "shop", DBSSLMode: "require"}
	dsn := c.PostgresDSN()
	assert.Equal(t, "postgres://app%20user:p%40ss%2Fw%23rd%3A1@db:5432/shop?sslmode=require", dsn)

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)
	pwd, _ := parsed.User.Password()
	assert.Equal(t, "p@ss/w#rd:1", pwd)
	assert.Equal(t, "app user", parsed.User.Username())
	assert.Equal(t, "db:5432", parsed.Host)
}
