package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.json"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, c)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"input_fasta":"in.fasta","output_json":"records.json","log_level":"debug"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "in.fasta", c.InputFasta)
	assert.Equal(t, "records.json", c.OutputJSON)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "", c.LogFile)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}
