package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralkit/strata/pkg/straerrors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, `"`, cfg.Bookend)
	assert.True(t, cfg.Strip)
	assert.Equal(t, 1, cfg.HeaderRows)
	assert.True(t, cfg.SkipEmptyRows)
	assert.Equal(t, 1000, cfg.ChunkSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReadConfig)
	}{
		{"empty delimiter", func(c *ReadConfig) { c.Delimiter = "" }},
		{"negative header rows", func(c *ReadConfig) { c.HeaderRows = -1 }},
		{"negative footer rows", func(c *ReadConfig) { c.SkipFooterRows = -2 }},
		{"chunk size below minimum", func(c *ReadConfig) { c.ChunkSize = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))
		})
	}
}

func TestOptionConversion(t *testing.T) {
	cfg := Default()
	cfg.Delimiter = "|"
	cfg.ChunkSize = 500

	po := cfg.ParseOptions()
	assert.Equal(t, "|", po.Delimiter)
	assert.Equal(t, `"`, po.Bookend)
	assert.True(t, po.Strip)

	so := cfg.StreamOptions()
	assert.Equal(t, 500, so.ChunkSize)
	assert.Equal(t, "|", so.Delimiter)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "read.yaml")
	content := `
delimiter: "|"
header_rows: 2
skip_footer_rows: 1
chunk_size: 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "|", cfg.Delimiter)
	assert.Equal(t, 2, cfg.HeaderRows)
	assert.Equal(t, 1, cfg.SkipFooterRows)
	assert.Equal(t, 250, cfg.ChunkSize)
	// Unspecified fields keep their defaults.
	assert.Equal(t, `"`, cfg.Bookend)
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("STRATA_TEST_DELIM", ";")

	path := filepath.Join(t.TempDir(), "read.yaml")
	content := "delimiter: \"${STRATA_TEST_DELIM}\"\nchunk_size: 100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ";", cfg.Delimiter)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeFile))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delimiter: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "read.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: 10\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, straerrors.IsType(err, straerrors.ErrorTypeParameter))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "read.yaml")

	cfg := Default()
	cfg.Delimiter = "\t"
	cfg.HeaderRows = 0
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
