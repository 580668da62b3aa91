package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RoomPolicy controls what happens when a connected socket joins a group
// while it is already in another group's room.
type RoomPolicy string

const (
	// RoomPolicyExclusive evicts the previous room on join, emitting its
	// leave notification.
	RoomPolicyExclusive RoomPolicy = "exclusive"
	// RoomPolicyMulti keeps previous room memberships on join.
	RoomPolicyMulti RoomPolicy = "multi"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr           string
	DatabasePath   string
	AuthSecret     string
	Debug          bool
	AllowedOrigins []string
	RoomPolicy     RoomPolicy
}

// Overrides optionally overrides values from environment variables.
//
// A nil pointer means "use the environment/default value".
type Overrides struct {
	Addr         *string
	DatabasePath *string
	AuthSecret   *string
	Debug        *bool
	RoomPolicy   *RoomPolicy
}

// Load loads server configuration from environment variables and applies any
// explicit overrides.
func Load(overrides Overrides) (*Config, error) {
	port := 3000
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	addr := fmt.Sprintf(":%d", port)
	if overrides.Addr != nil {
		addr = *overrides.Addr
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./dice.db"
	}
	if overrides.DatabasePath != nil {
		dbPath = *overrides.DatabasePath
	}

	authSecret := os.Getenv("DICE_AUTH_SECRET")
	if overrides.AuthSecret != nil {
		authSecret = *overrides.AuthSecret
	}
	if authSecret == "" {
		return nil, fmt.Errorf("DICE_AUTH_SECRET environment variable is required")
	}

	debug := false
	if debugStr := os.Getenv("DEBUG"); debugStr == "true" || debugStr == "1" {
		debug = true
	}
	if overrides.Debug != nil {
		debug = *overrides.Debug
	}

	origins := []string{"http://localhost:3000"}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		var parsed []string
		for _, o := range strings.Split(originsStr, ",") {
			if o = strings.TrimSpace(o); o != "" {
				parsed = append(parsed, o)
			}
		}
		// A value of only blanks and commas falls back to the default;
		// callers rely on at least one origin being present.
		if len(parsed) > 0 {
			origins = parsed
		}
	}

	policy := RoomPolicyExclusive
	if policyStr := os.Getenv("ROOM_POLICY"); policyStr != "" {
		switch RoomPolicy(policyStr) {
		case RoomPolicyExclusive, RoomPolicyMulti:
			policy = RoomPolicy(policyStr)
		default:
			return nil, fmt.Errorf("invalid ROOM_POLICY %q (want %q or %q)", policyStr, RoomPolicyExclusive, RoomPolicyMulti)
		}
	}
	if overrides.RoomPolicy != nil {
		policy = *overrides.RoomPolicy
	}

	return &Config{
		Addr:           addr,
		DatabasePath:   dbPath,
		AuthSecret:     authSecret,
		Debug:          debug,
		AllowedOrigins: origins,
		RoomPolicy:     policy,
	}, nil
}
