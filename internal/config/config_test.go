package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rota.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "rota-solver", cfg.Solver.Command)
	assert.Equal(t, 30*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, "rota.db", filepath.Base(cfg.Database.Path))
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
db:
  path: /tmp/roster.db
solver:
  command: python3
  args: ["-m", "rota_solver"]
  timeout: 5s
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/roster.db", cfg.Database.Path)
	assert.Equal(t, "python3", cfg.Solver.Command)
	assert.Equal(t, []string{"-m", "rota_solver"}, cfg.Solver.Args)
	assert.Equal(t, 5*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "solver:\n  command: from-file\n")
	t.Setenv("ROTA_SOLVER_COMMAND", "from-env")
	t.Setenv("ROTA_DB_PATH", ":memory:")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Solver.Command)
	assert.Equal(t, ":memory:", cfg.Database.Path)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	path := writeConfig(t, "solver:\n  timeout: 0s\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solver.timeout")
}

func TestValidate_RequiresSolverCommand(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Path: "x.db"},
		Solver:   SolverConfig{Timeout: time.Second},
	}
	assert.ErrorContains(t, cfg.Validate(), "solver.command")
}
