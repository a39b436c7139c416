// Package spawn hosts the HTTP surface that creates and resumes bot
// sessions: registration with the game authority, a fixed-window rate
// limiter, and the launcher that runs sessions.
package spawn

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the spawn service configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
	OpenAI OpenAISettings `hcl:"openai,block"`
	Limits LimitSettings  `hcl:"limits,block"`
	Worker WorkerSettings `hcl:"worker,block"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings points at the game authority.
type GameSettings struct {
	APIURL string `hcl:"api_url,optional"`
}

// OpenAISettings configures the suggestion provider. An empty key runs bots
// on the static fallback tables only.
type OpenAISettings struct {
	APIKey string `hcl:"api_key,optional"`
	Model  string `hcl:"model,optional"`
}

// LimitSettings configures the spawn rate limiter.
type LimitSettings struct {
	SpawnQuota    int `hcl:"spawn_quota,optional"`
	WindowSeconds int `hcl:"window_seconds,optional"`
}

// WorkerSettings tunes the sessions this service launches.
type WorkerSettings struct {
	// InvocationBudgetSeconds enables continuation handoff when non-zero.
	InvocationBudgetSeconds int `hcl:"invocation_budget_seconds,optional"`
}

// Window returns the rate-limit window as a duration.
func (l LimitSettings) Window() time.Duration {
	return time.Duration(l.WindowSeconds) * time.Second
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{Address: "localhost:8090", LogLevel: "info"},
		Game:   GameSettings{APIURL: "http://localhost:8080"},
		Limits: LimitSettings{SpawnQuota: 10, WindowSeconds: 60},
	}
}

// LoadConfig loads the spawn service configuration from an HCL file,
// falling back to defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost:8090"
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Game.APIURL == "" {
		config.Game.APIURL = "http://localhost:8080"
	}
	if config.Limits.SpawnQuota == 0 {
		config.Limits.SpawnQuota = 10
	}
	if config.Limits.WindowSeconds == 0 {
		config.Limits.WindowSeconds = 60
	}
	return &config, nil
}
