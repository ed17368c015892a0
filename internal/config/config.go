package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCleanedPath is where the canonical ledger lands when the config does
// not say otherwise.
const DefaultCleanedPath = "data/cleaned_transactions.parquet"

// Config represents the top-level config.yaml. It is constructed once at
// startup and passed into components; core packages never read it globally.
type Config struct {
	Data DataConfig `yaml:"data"`
	AI   AIConfig   `yaml:"ai"`
}

// DataConfig locates the source exports and the canonical ledger.
type DataConfig struct {
	TransactionsPath        string `yaml:"transactions_path"`
	InvestmentsPath         string `yaml:"investments_path"`
	CleanedTransactionsPath string `yaml:"cleaned_transactions_path"`
}

// AIConfig selects the narrative model.
type AIConfig struct {
	Model string `yaml:"model"`
}

// Load reads a config.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Data.CleanedTransactionsPath == "" {
		cfg.Data.CleanedTransactionsPath = DefaultCleanedPath
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			TransactionsPath:        "data/transactions.csv",
			InvestmentsPath:         "data/investments.csv",
			CleanedTransactionsPath: DefaultCleanedPath,
		},
		AI: AIConfig{
			Model: "gpt-4o-mini",
		},
	}
}
