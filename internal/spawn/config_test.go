package spawn

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	require.Equal(t, "localhost:8090", cfg.Server.Address)
	require.Equal(t, "http://localhost:8080", cfg.Game.APIURL)
	require.Equal(t, 10, cfg.Limits.SpawnQuota)
	require.Equal(t, time.Minute, cfg.Limits.Window())
}

func TestLoadConfigAppliesFieldDefaults(t *testing.T) {
	content := `
server {
  address = "0.0.0.0:9000"
}

game {
  api_url = "http://game:8080"
}

openai {
  api_key = "sk-test"
}

limits {
  spawn_quota = 3
}

worker {
  invocation_budget_seconds = 780
}
`
	path := filepath.Join(t.TempDir(), "songbots.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "http://game:8080", cfg.Game.APIURL)
	require.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	require.Equal(t, 3, cfg.Limits.SpawnQuota)
	require.Equal(t, 60, cfg.Limits.WindowSeconds)
	require.Equal(t, 780, cfg.Worker.InvocationBudgetSeconds)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
