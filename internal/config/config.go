// Package config loads the coverart command configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "COVERART_CONFIG"

// Config is the coverart command configuration. Parallel bounds how many
// files are processed at once; zero means one per CPU.
type Config struct {
	Output   Output       `yaml:"output"`
	Local    Local        `yaml:"local"`
	LogLevel logrus.Level `yaml:"log_level"`
	Parallel int          `yaml:"parallel"`
	Composer bool         `yaml:"composer"`
}

// Output controls where extracted covers are written. An empty Dir writes
// next to the audio file; an empty Name reuses the audio file's base name.
// A fixed Name only works with a single input file.
type Output struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

// Local controls the sibling image probe used when a file has no embedded
// cover. An empty Name probes for the audio file's base name.
type Local struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		LogLevel: logrus.InfoLevel,
		Parallel: runtime.NumCPU(),
		Local:    Local{Enabled: true},
	}
}

// New loads the configuration from path, or from $COVERART_CONFIG when path
// is empty. A missing file yields the defaults.
func New(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}

	config := Default()
	if path == "" {
		return config, nil
	}

	rawConfig, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantReadConfigFile, err)
	}

	err = yaml.Unmarshal(rawConfig, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantParseConfigFile, err)
	}

	if config.Parallel < 0 {
		return nil, fmt.Errorf("%w: %w (parallel %d)", ErrConfiguration, ErrInvalidValue, config.Parallel)
	}
	if config.Parallel == 0 {
		config.Parallel = runtime.NumCPU()
	}

	return config, nil
}
