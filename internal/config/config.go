// Package config resolves the session directories that sessionsearch
// scans.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the resolved search roots.
type Config struct {
	ClaudeProjectsDir string
	OpenClawDir       string
}

// Default returns a Config pointing at the standard locations under
// the home directory.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf(
			"determining home directory: %w", err,
		)
	}
	return Config{
		ClaudeProjectsDir: filepath.Join(home, ".claude", "projects"),
		OpenClawDir:       filepath.Join(home, ".openclaw"),
	}, nil
}

// Load builds a Config by layering: defaults < env.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	cfg.loadEnv()
	return cfg, nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("CLAUDE_PROJECTS_DIR"); v != "" {
		c.ClaudeProjectsDir = v
	}
	if v := os.Getenv("OPENCLAW_DIR"); v != "" {
		c.OpenClawDir = v
	}
}

// OpenClawSessionsDir returns the session directory for the given
// OpenClaw agent.
func (c Config) OpenClawSessionsDir(agent string) string {
	return filepath.Join(c.OpenClawDir, "agents", agent, "sessions")
}
