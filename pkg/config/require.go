package config

import (
	"log"
	"slices"
)

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustOneOf(value, envName string, allowed ...string) {
	if !slices.Contains(allowed, value) {
		log.Fatalf("env %s=%q must be one of %v", envName, value, allowed)
	}
}

// Validate checks the settings the storefront cannot start without.
func (c Config) Validate() {
	MustNonEmptyBytes(c.SessionSecret, "SESSION_SECRET")
	MustOneOf(c.DBDriver, "DB_DRIVER", "sqlite", "postgres")
	MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	MustOneOf(c.SessionBackend, "SESSION_BACKEND", "memory", "redis", "valkey")
	if c.SessionBackend == "valkey" {
		MustNonEmpty(c.ValkeyURI, "VALKEY_URI")
	}
	if c.AdminEmail != "" {
		MustNonEmpty(c.AdminPassword, "ADMIN_PASSWORD")
	}
}
