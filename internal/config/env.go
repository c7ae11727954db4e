package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names recognized as overrides. Overrides beat the
// config file so deployment pipelines can retarget a build without editing it.
const (
	EnvBasePath  = "HYPERSITE_BASE_PATH"
	EnvBaseURL   = "HYPERSITE_BASE_URL"
	EnvOutputDir = "HYPERSITE_OUTPUT_DIR"
)

// loadDotEnv loads .env/.env.local if present. godotenv.Load never overwrites
// variables already set in the process environment, matching the usual
// local-development layering.
func loadDotEnv() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// applyEnvOverrides copies recognized environment values into the config.
// The base path override exists so one content tree can be compiled for
// different mount points (e.g. user pages vs. project pages) without a
// config edit; it is resolved here once and threaded explicitly from the
// orchestrator into every URL construction.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvBasePath); v != "" {
		c.Site.BasePath = normalizeBasePath(v)
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Site.BaseURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}
}
