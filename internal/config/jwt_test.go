package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "jobboard-test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "jobboard-test-secret", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "expiration should default to 24 hours")
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
		wantHours  int
		wantErr    bool
	}{
		{name: "custom 12 hours", expiration: "12", wantHours: 12},
		{name: "minimum 1 hour", expiration: "1", wantHours: 1},
		{name: "week-long sessions", expiration: "168", wantHours: 168},
		{name: "zero rejected", expiration: "0", wantErr: true},
		{name: "negative rejected", expiration: "-5", wantErr: true},
		{name: "float rejected", expiration: "12.5", wantErr: true},
		{name: "non-numeric rejected", expiration: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "jobboard-test-secret")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "jobboard-test-secret", cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}

func TestJWTConfig_Normalize(t *testing.T) {
	assert.NoError(t, (&JWTConfig{Secret: "s", ExpirationHours: 24}).normalize())
	assert.Error(t, (&JWTConfig{Secret: "", ExpirationHours: 24}).normalize())
	assert.Error(t, (&JWTConfig{Secret: "s", ExpirationHours: 0}).normalize())
}
