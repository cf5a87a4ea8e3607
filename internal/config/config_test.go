package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Workspace.ID)
	assert.Equal(t, "Default Workspace", cfg.Workspace.Name)
	assert.Equal(t, "rt.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "csv", cfg.Export.DefaultFormat)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
workspace:
  id: team-alpha
  name: Team Alpha
database:
  dir: /tmp/rt-test
  filename: tracker.db
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "team-alpha", cfg.Workspace.ID)
	assert.Equal(t, "Team Alpha", cfg.Workspace.Name)
	assert.Equal(t, filepath.Join("/tmp/rt-test", "tracker.db"), cfg.Database.Path())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("RT_WORKSPACE_ID", "from-env")
	t.Setenv("RT_LOGGING_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Workspace.ID)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Workspace.ID)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "should reject empty workspace id",
			content: "workspace:\n  id: \"\"\n",
		},
		{
			name:    "should reject unknown log level",
			content: "logging:\n  level: verbose\n",
		},
		{
			name:    "should reject unknown log format",
			content: "logging:\n  format: xml\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
