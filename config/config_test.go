package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_TELEGRAM_IDS", "")
	t.Setenv("ROLL_DELAY_MS", "")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := load()
		require.NoError(t, err)

		assert.Equal(t, "test", cfg.Environment)
		assert.Equal(t, 1500*time.Millisecond, cfg.RollDelay)
		assert.Empty(t, cfg.AdminIDs)
	})

	t.Run("admin list parsed", func(t *testing.T) {
		t.Setenv("ADMIN_TELEGRAM_IDS", "111, 222,333")

		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, []int64{111, 222, 333}, cfg.AdminIDs)
	})

	t.Run("bad admin entry rejected", func(t *testing.T) {
		t.Setenv("ADMIN_TELEGRAM_IDS", "111,notanumber")

		_, err := load()
		assert.Error(t, err)
	})

	t.Run("roll delay override", func(t *testing.T) {
		t.Setenv("ROLL_DELAY_MS", "200")

		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, 200*time.Millisecond, cfg.RollDelay)
	})

	t.Run("token required outside test", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")

		_, err := load()
		assert.Error(t, err)
	})
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{111, 222}}

	assert.True(t, cfg.IsAdmin(111))
	assert.True(t, cfg.IsAdmin(222))
	assert.False(t, cfg.IsAdmin(333))
	assert.False(t, (&Config{}).IsAdmin(111))
}
