// Package config loads splot's optional TOML configuration file.
//
// The file supplies defaults for the run and serve commands; flags given on
// the command line take precedence. Its default location follows the XDG
// convention: $XDG_CONFIG_HOME/splot/config.toml, or
// ~/.config/splot/config.toml when XDG_CONFIG_HOME is unset.
//
// Example:
//
//	rows = 318
//	cols = 540
//	density = "DPI300"
//	mask_length = 0
//	check_source = true
//	output = "results/"
//
//	[pattern]
//	enabled = true
//	range = "1:1"
//	format = "text"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/pattern"
	"github.com/splotbio/splot/pkg/pipeline"
)

const appName = "splot"

// FileName is the name of the config file inside the config directory.
const FileName = "config.toml"

// Config mirrors the config file.
type Config struct {
	Rows            int    `toml:"rows"`
	Cols            int    `toml:"cols"`
	Density         string `toml:"density"`
	MaskLength      int    `toml:"mask_length"`
	DefectThreshold int    `toml:"defect_threshold"`
	CheckSource     bool   `toml:"check_source"`
	Seed            uint64 `toml:"seed"`
	Output          string `toml:"output"`
	Sheet           string `toml:"sheet"`

	Pattern Pattern `toml:"pattern"`
	Server  Server  `toml:"server"`
}

// Pattern configures pattern generation.
type Pattern struct {
	Enabled bool   `toml:"enabled"`
	Range   string `toml:"range"`
	Format  string `toml:"format"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rows:        pipeline.DefaultRows,
		Cols:        pipeline.DefaultCols,
		Density:     pipeline.DefaultDensity,
		CheckSource: true,
		Output:      "output",
		Pattern:     Pattern{Format: pipeline.DefaultPatternFormat},
		Server:      Server{Addr: ":8080", MaxBodyBytes: 64 << 20},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means the default location, which may be absent; an explicit path must
// exist. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return Default(), nil
			}
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Options converts the config into pipeline options.
func (c Config) Options() (pipeline.Options, error) {
	r, err := pattern.ParseRange(c.Pattern.Range)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Rows:            c.Rows,
		Cols:            c.Cols,
		Density:         c.Density,
		MaskLength:      c.MaskLength,
		DefectThreshold: c.DefectThreshold,
		SkipSourceCheck: !c.CheckSource,
		Seed:            c.Seed,
		GeneratePattern: c.Pattern.Enabled,
		PatternRange:    r,
		PatternFormat:   c.Pattern.Format,
	}, nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
