package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/natefinch/atomic"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// BuildConfig holds the defaults for reading a corpus into a model.
type BuildConfig struct {
	Order     int    `json:"order" yaml:"order"`
	Normalize bool   `json:"normalize" yaml:"normalize"`
	MinFreq   int    `json:"min_freq" yaml:"min_freq"`
	Recursive bool   `json:"recursive" yaml:"recursive"`
	Filter    string `json:"filter" yaml:"filter"`
	KeepCase  bool   `json:"keep_case" yaml:"keep_case"`
	// LoadWorkers bounds concurrent document extraction. 0 uses every CPU.
	LoadWorkers int `json:"load_workers" yaml:"load_workers"`
}

// GenerateConfig holds the defaults for sentence generation.
type GenerateConfig struct {
	MaxLength   int     `json:"max_length" yaml:"max_length"`
	Count       int     `json:"count" yaml:"count"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	TopK        int     `json:"top_k" yaml:"top_k"`
	Workers     int     `json:"workers" yaml:"workers"`
	// Seed makes output reproducible when set.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel     string          `json:"log_level" yaml:"log_level"`
	DatabasePath string          `json:"database_path" yaml:"database_path"`
	Build        *BuildConfig    `json:"build" yaml:"build"`
	Generate     *GenerateConfig `json:"generate" yaml:"generate"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DatabasePath: "wordwalk.db",
		Build: &BuildConfig{
			Order: 2,
		},
		Generate: &GenerateConfig{
			Count:       10,
			Temperature: 1.0,
			Workers:     1,
		},
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wordwalk.yaml"
	}
	return filepath.Join(dir, "wordwalk", "config.yaml")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func marshalConfig(path string, config *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(config)
	}
	return json.MarshalIndent(config, "", "  ")
}

func unmarshalConfig(path string, data []byte, config *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, config)
	}
	return json.Unmarshal(data, config)
}

// LoadConfig reads the configuration at path, as YAML if the extension says
// so and as JSON otherwise. If the file doesn't exist, it creates one with
// default values. Sections missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = marshalConfig(path, config)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if dir := filepath.Dir(path); dir != "" {
				err = os.MkdirAll(dir, 0o755)
			}
			if err == nil {
				err = atomic.WriteFile(path, bytes.NewReader(data))
			}
			if err != nil {
				// Running with defaults is still possible.
				_, _ = fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = unmarshalConfig(path, file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if config.Build == nil {
		config.Build = DefaultConfig().Build
	}
	if config.Generate == nil {
		config.Generate = DefaultConfig().Generate
	}
	return config, nil
}

// setup loads the config file, applies it beneath the global flags and returns
// the logger every command uses.
func setup(cmd *cli.Command) (*Config, *slog.Logger, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, nil, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	root := cmd.Root()
	if cfg.LogLevel != "" && !root.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.DatabasePath != "" && !root.IsSet("database") {
		databasePath = cfg.DatabasePath
	}

	logger := newLogger(logLevel)
	logger.Debug("Configuration loaded", slog.String("path", configFile))
	return cfg, logger, nil
}

// applyBuildConfig applies config file defaults to build flags that were not
// explicitly set.
func applyBuildConfig(c *cli.Command, cfg *BuildConfig, b *buildFlags) {
	if cfg.Order != 0 && !c.IsSet("order") {
		b.order = int64(cfg.Order)
	}
	if !c.IsSet("normalize") {
		b.normalize = cfg.Normalize
	}
	if !c.IsSet("min-freq") {
		b.minFreq = int64(cfg.MinFreq)
	}
	if !c.IsSet("recursive") {
		b.recursive = cfg.Recursive
	}
	if cfg.Filter != "" && !c.IsSet("filter") {
		b.filter = cfg.Filter
	}
	if !c.IsSet("keep-case") {
		b.keepCase = cfg.KeepCase
	}
	b.loadWorkers = cfg.LoadWorkers
}

// applyGenerateConfig applies config file defaults to generate flags that
// were not explicitly set.
func applyGenerateConfig(c *cli.Command, cfg *GenerateConfig, g *generateFlags) {
	if !c.IsSet("max-length") {
		g.maxLength = int64(cfg.MaxLength)
	}
	if cfg.Count != 0 && !c.IsSet("count") {
		g.count = int64(cfg.Count)
	}
	if !c.IsSet("temperature") {
		g.temperature = cfg.Temperature
	}
	if !c.IsSet("top-k") {
		g.topK = int64(cfg.TopK)
	}
	if cfg.Workers != 0 && !c.IsSet("workers") {
		g.workers = int64(cfg.Workers)
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		g.seed = *cfg.Seed
		g.seeded = true
	} else if c.IsSet("seed") {
		g.seeded = true
	}
}
