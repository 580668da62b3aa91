package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("DICE_AUTH_SECRET", "secret")
	t.Setenv("DEBUG", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ROOM_POLICY", "")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.Addr)
	require.Equal(t, "./dice.db", cfg.DatabasePath)
	require.Equal(t, "secret", cfg.AuthSecret)
	require.False(t, cfg.Debug)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	require.Equal(t, RoomPolicyExclusive, cfg.RoomPolicy)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("DICE_AUTH_SECRET", "")

	_, err := Load(Overrides{})
	require.Error(t, err)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("DICE_AUTH_SECRET", "secret")
	t.Setenv("DEBUG", "1")
	t.Setenv("ALLOWED_ORIGINS", "https://dice.example, https://staging.dice.example")
	t.Setenv("ROOM_POLICY", "multi")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	require.True(t, cfg.Debug)
	require.Equal(t, []string{"https://dice.example", "https://staging.dice.example"}, cfg.AllowedOrigins)
	require.Equal(t, RoomPolicyMulti, cfg.RoomPolicy)
}

func TestLoad_BlankAllowedOriginsFallsBackToDefault(t *testing.T) {
	t.Setenv("DICE_AUTH_SECRET", "secret")
	t.Setenv("ALLOWED_ORIGINS", " , ,")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidRoomPolicy(t *testing.T) {
	t.Setenv("DICE_AUTH_SECRET", "secret")
	t.Setenv("ROOM_POLICY", "shared")

	_, err := Load(Overrides{})
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DICE_AUTH_SECRET", "")
	t.Setenv("ROOM_POLICY", "")

	addr := ":9000"
	secret := "override-secret"
	policy := RoomPolicyMulti
	cfg, err := Load(Overrides{
		Addr:       &addr,
		AuthSecret: &secret,
		RoomPolicy: &policy,
	})
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)
	require.Equal(t, "override-secret", cfg.AuthSecret)
	require.Equal(t, RoomPolicyMulti, cfg.RoomPolicy)
}
