package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseDriver_FallsBackOnUnknown(t *testing.T) {
	Set("DB_DRIVER", "oracle")
	assert.Equal(t, "postgres", DatabaseDriver())

	Set("DB_DRIVER", "sqlite")
	assert.Equal(t, "sqlite", DatabaseDriver())

	Set("DB_DRIVER", "")
	assert.Equal(t, "postgres", DatabaseDriver())
}

func TestAdminPassword_EmptyWhenUnset(t *testing.T) {
	Set("ADMIN_PASSWORD", "")
	assert.Equal(t, "", AdminPassword())

	Set("ADMIN_PASSWORD", "s3cret")
	assert.Equal(t, "s3cret", AdminPassword())
	Set("ADMIN_PASSWORD", "")
}

func TestDatabaseDSN_HasNoDefault(t *testing.T) {
	Set("DATABASE_DSN", "")
	assert.Equal(t, "", DatabaseDSN())
}

func TestGet_NormalisesKeyAndTrims(t *testing.T) {
	Set("custom_key", "  value  ")
	// Set normalises the key; get trims the value.
	assert.Equal(t, "value", Get("CUSTOM_KEY", "fallback"))
	assert.Equal(t, "fallback", Get("MISSING_KEY", "fallback"))
}
