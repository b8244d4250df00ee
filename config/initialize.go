package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"minic/common"
)

// Init writes a configuration file with the default settings into the given
// directory.  It returns the path of the new file.  An existing configuration
// file is never overwritten.
func Init(dir string) (string, error) {
	path := filepath.Join(dir, common.ConfigFileName)

	// check to see if a configuration already exists
	_, err := os.Stat(path)
	if err == nil {
		return "", errors.New("configuration file already exists")
	}

	if !os.IsNotExist(err) {
		return "", fmt.Errorf("configuration file error: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating configuration file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(toTOML(Default())); err != nil {
		return "", fmt.Errorf("error encoding TOML: %w", err)
	}

	return path, nil
}

// toTOML converts a configuration into its TOML encoding.
func toTOML(cfg *Config) *tomlConfigFile {
	return &tomlConfigFile{
		Compiler: &tomlCompiler{
			LogLevel:        cfg.LogLevelName,
			MaxSourceBytes:  cfg.MaxSourceBytes,
			MaxNestingDepth: cfg.MaxDepth,
			Jobs:            cfg.Jobs,
			SourceExtension: cfg.SourceExt,
		},
		Server: &tomlServer{
			Address:        cfg.Server.Address,
			CacheSize:      cfg.Server.CacheSize,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
	}
}
