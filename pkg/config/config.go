// Package config defines the read configuration shared by the CLI and the
// parsing layers, with a YAML loader supporting ${ENV_VAR} substitution.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/astralkit/strata/pkg/dsv"
	"github.com/astralkit/strata/pkg/straerrors"
)

// ReadConfig describes how delimiter-separated input is parsed and shaped
// into a table.
type ReadConfig struct {
	// Delimiter separates fields. Must not be empty.
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// Bookend is the quoting character. Empty disables quote handling.
	Bookend string `yaml:"bookend" json:"bookend"`
	// Strip trims surrounding whitespace from fields.
	Strip bool `yaml:"strip" json:"strip"`
	// HeaderRows is the number of leading rows merged into column names.
	HeaderRows int `yaml:"header_rows" json:"header_rows"`
	// SkipFooterRows is the number of trailing rows excluded.
	SkipFooterRows int `yaml:"skip_footer_rows" json:"skip_footer_rows"`
	// SkipEmptyRows discards rows whose fields are all empty.
	SkipEmptyRows bool `yaml:"skip_empty_rows" json:"skip_empty_rows"`
	// ChunkSize is the streaming read-ahead in rows. Minimum 100.
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`
}

// Default returns the conventional CSV read configuration.
func Default() ReadConfig {
	return ReadConfig{
		Delimiter:     ",",
		Bookend:       `"`,
		Strip:         true,
		HeaderRows:    1,
		SkipEmptyRows: true,
		ChunkSize:     1000,
	}
}

// Validate checks the configuration eagerly, before any row is read.
func (c *ReadConfig) Validate() error {
	if c.Delimiter == "" {
		return straerrors.New(straerrors.ErrorTypeParameter, "delimiter must not be empty").
			WithDetail("parameter", "delimiter")
	}
	if c.HeaderRows < 0 {
		return straerrors.New(straerrors.ErrorTypeParameter, "header rows must be >= 0").
			WithDetail("parameter", "header_rows").
			WithDetail("value", c.HeaderRows)
	}
	if c.SkipFooterRows < 0 {
		return straerrors.New(straerrors.ErrorTypeParameter, "skip footer rows must be >= 0").
			WithDetail("parameter", "skip_footer_rows").
			WithDetail("value", c.SkipFooterRows)
	}
	if c.ChunkSize < dsv.MinChunkSize {
		return straerrors.New(straerrors.ErrorTypeParameter, "chunk size below minimum").
			WithDetail("parameter", "chunk_size").
			WithDetail("value", c.ChunkSize).
			WithDetail("minimum", dsv.MinChunkSize)
	}
	return nil
}

// ParseOptions converts the configuration to tokenizer options.
func (c *ReadConfig) ParseOptions() dsv.Options {
	return dsv.Options{Delimiter: c.Delimiter, Bookend: c.Bookend, Strip: c.Strip}
}

// StreamOptions converts the configuration to row reader options.
func (c *ReadConfig) StreamOptions() dsv.StreamOptions {
	return dsv.StreamOptions{Options: c.ParseOptions(), ChunkSize: c.ChunkSize}
}

// Load loads a configuration from a YAML file, substituting ${VAR_NAME}
// references with environment variable values, and validates it.
func Load(filePath string) (ReadConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path is controlled by caller
	if err != nil {
		return cfg, straerrors.Wrap(err, straerrors.ErrorTypeFile, "failed to read config file").
			WithDetail("path", filePath)
	}

	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return cfg, straerrors.Wrap(err, straerrors.ErrorTypeParameter, "failed to parse YAML").
			WithDetail("path", filePath)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes a configuration to a YAML file.
func Save(filePath string, cfg ReadConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return straerrors.Wrap(err, straerrors.ErrorTypeInternal, "failed to marshal YAML")
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil { //nolint:gosec
		return straerrors.Wrap(err, straerrors.ErrorTypeFile, "failed to write config file").
			WithDetail("path", filePath)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
