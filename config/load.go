package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"

	"minic/common"
	"minic/report"
)

// tomlConfigFile represents the configuration file as it is encoded in TOML.
type tomlConfigFile struct {
	Compiler *tomlCompiler `toml:"compiler"`
	Server   *tomlServer   `toml:"server"`
}

// tomlCompiler represents the `[compiler]` table.  Zero values stand for keys
// that were not given.
type tomlCompiler struct {
	LogLevel        string `toml:"log-level"`
	MaxSourceBytes  int    `toml:"max-source-bytes"`
	MaxNestingDepth int    `toml:"max-nesting-depth"`
	Jobs            int    `toml:"jobs"`
	SourceExtension string `toml:"source-extension"`
}

// tomlServer represents the `[server]` table.
type tomlServer struct {
	Address        string   `toml:"address"`
	CacheSize      int      `toml:"cache-size"`
	AllowedOrigins []string `toml:"allowed-origins"`
}

// Load loads the configuration file at the given path.  A missing file is not
// an error: the default configuration is returned instead.  Keys missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}

	cfg := Default()
	if err := mergeCompiler(cfg, tcf.Compiler); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := mergeServer(cfg, tcf.Server); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadDir loads the configuration file in the given directory.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, common.ConfigFileName))
}

// mergeCompiler validates the `[compiler]` table and moves the values it
// gives into the configuration.
func mergeCompiler(cfg *Config, tc *tomlCompiler) error {
	if tc == nil {
		return nil
	}

	if tc.LogLevel != "" {
		level, err := report.ParseLogLevel(tc.LogLevel)
		if err != nil {
			return fmt.Errorf("compiler.log-level: %w", err)
		}

		cfg.LogLevelName = strings.ToLower(tc.LogLevel)
		cfg.LogLevel = level
	}

	if err := mergePositive("compiler.max-source-bytes", &cfg.MaxSourceBytes, tc.MaxSourceBytes); err != nil {
		return err
	}

	if err := mergePositive("compiler.max-nesting-depth", &cfg.MaxDepth, tc.MaxNestingDepth); err != nil {
		return err
	}

	if err := mergePositive("compiler.jobs", &cfg.Jobs, tc.Jobs); err != nil {
		return err
	}

	if tc.SourceExtension != "" {
		if !strings.HasPrefix(tc.SourceExtension, ".") || len(tc.SourceExtension) < 2 {
			return fmt.Errorf("compiler.source-extension: `%s` must be a dot followed by an extension", tc.SourceExtension)
		}

		cfg.SourceExt = tc.SourceExtension
	}

	return nil
}

// mergeServer validates the `[server]` table and moves the values it gives
// into the configuration.
func mergeServer(cfg *Config, ts *tomlServer) error {
	if ts == nil {
		return nil
	}

	if ts.Address != "" {
		if !strings.Contains(ts.Address, ":") {
			return fmt.Errorf("server.address: `%s` must be of the form host:port", ts.Address)
		}

		cfg.Server.Address = ts.Address
	}

	if err := mergePositive("server.cache-size", &cfg.Server.CacheSize, ts.CacheSize); err != nil {
		return err
	}

	if ts.AllowedOrigins != nil {
		cfg.Server.AllowedOrigins = ts.AllowedOrigins
	}

	return nil
}

// mergePositive moves a given integer value into dest.  Zero means the value
// was not given; negative values are rejected.
func mergePositive(key string, dest *int, value int) error {
	if value < 0 {
		return fmt.Errorf("%s: must be positive, got %d", key, value)
	} else if value > 0 {
		*dest = value
	}

	return nil
}
