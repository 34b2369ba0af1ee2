package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults under home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("CLAUDE_PROJECTS_DIR", "")
		t.Setenv("OPENCLAW_DIR", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t,
			filepath.Join(home, ".claude", "projects"),
			cfg.ClaudeProjectsDir)
		assert.Equal(t,
			filepath.Join(home, ".openclaw"), cfg.OpenClawDir)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("CLAUDE_PROJECTS_DIR", "/custom/projects")
		t.Setenv("OPENCLAW_DIR", "/custom/openclaw")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/custom/projects", cfg.ClaudeProjectsDir)
		assert.Equal(t, "/custom/openclaw", cfg.OpenClawDir)
	})
}

func TestOpenClawSessionsDir(t *testing.T) {
	cfg := Config{OpenClawDir: "/home/u/.openclaw"}
	assert.Equal(t,
		filepath.Join("/home/u/.openclaw", "agents", "main",
			"sessions"),
		cfg.OpenClawSessionsDir("main"))
	assert.Equal(t,
		filepath.Join("/home/u/.openclaw", "agents", "dev",
			"sessions"),
		cfg.OpenClawSessionsDir("dev"))
}
