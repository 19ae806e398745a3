package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// ConfigFileName is the config file name under the config directory.
const ConfigFileName = "config.toml"

// Config is the application configuration, loaded from TOML.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Chat      ChatConfig      `toml:"chat"`
	Matching  MatchingConfig  `toml:"matching"`
	Risk      RiskConfig      `toml:"risk"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DataConfig configures data locations. An empty Dir selects
// ~/.beenthere/data.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// ChatConfig configures the conversational reply provider. The
// OpenRouter API key comes from the OPENROUTER_API_KEY environment
// variable, never from this file.
type ChatConfig struct {
	// Provider is "openrouter" or "ollama".
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// MatchingConfig sets matching defaults for the API and CLI.
type MatchingConfig struct {
	TopK          int     `toml:"top_k"`
	MinSimilarity float64 `toml:"min_similarity"`
}

// RiskConfig configures the risk classifier. An empty ModelPath
// selects risk_model.json under the data directory.
type RiskConfig struct {
	ModelPath  string   `toml:"model_path"`
	SafeLabels []string `toml:"safe_labels"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Chat: ChatConfig{
			Provider: "openrouter",
			Model:    "openai/gpt-4o-mini",
		},
		Matching: MatchingConfig{
			TopK:          domain.DefaultTopK,
			MinSimilarity: domain.DefaultMinSimilarity,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the config directory, honouring an explicit
// override. Empty selects ~/.beenthere.
func ConfigDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".beenthere"), nil
}

// Load reads the configuration from configDir. A missing file yields
// the defaults; a malformed file is an error.
func Load(configDir string) (Config, error) {
	cfg := Default()

	dir, err := ConfigDir(configDir)
	if err != nil {
		return cfg, err
	}

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to configDir, creating the directory
// if needed. Used by "beenthere config init" to seed an editable file.
func Save(configDir string, cfg Config) error {
	dir, err := ConfigDir(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DataDir resolves the data directory from the config, defaulting to
// ~/.beenthere/data.
func (c Config) DataDir() (string, error) {
	if c.Data.Dir != "" {
		return c.Data.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".beenthere", "data"), nil
}

// RiskModelPath resolves the risk model file location.
func (c Config) RiskModelPath() (string, error) {
	if c.Risk.ModelPath != "" {
		return c.Risk.ModelPath, nil
	}
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "risk_model.json"), nil
}

// SnapshotPath resolves the index snapshot file location.
func (c Config) SnapshotPath() (string, error) {
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "index.gob"), nil
}

// Addr returns the server listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
