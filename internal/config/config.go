package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type Config struct {
	InputFasta string `json:"input_fasta"`
	OutputJSON string `json:"output_json"`
	LogFile    string `json:"log_file"`
	LogLevel   string `json:"log_level"`
}

// LoadConfig loads a JSON config from the given path. If path is empty, looks
// for ./config.json. A missing file is not fatal: defaults are returned and
// CLI flags take over.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}
	f, err := os.Open(path)
	if err != nil {
		// not fatal: return defaults
		return &Config{}, nil
	}
	defer f.Close()
	var c Config
	dec := json.NewDecoder(f)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrapf(err, "decode config %q", path)
	}
	return &c, nil
}
