package config

import (
	"minic/build"
	"minic/common"
	"minic/report"
	"minic/syntax"
)

// Config is the configuration of the minic tools, loaded from a `minic.toml`
// project file.
type Config struct {
	// The name of the log level and its enumerated value.
	LogLevelName string
	LogLevel     int

	// The largest source text accepted in bytes.
	MaxSourceBytes int

	// The deepest nesting of blocks and expressions accepted by the parser.
	MaxDepth int

	// The number of files checked at once.
	Jobs int

	// The extension of source files, including its leading dot.
	SourceExt string

	Server ServerConfig
}

// ServerConfig is the configuration of the analysis service.
type ServerConfig struct {
	// The address the service listens on, eg. `127.0.0.1:7070`.
	Address string

	// The number of analysis results kept in the service's cache.
	CacheSize int

	// The origins allowed to make cross-origin requests.
	AllowedOrigins []string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevelName:   "verbose",
		LogLevel:       report.LogLevelVerbose,
		MaxSourceBytes: build.DefaultMaxSourceBytes,
		MaxDepth:       syntax.DefaultMaxDepth,
		Jobs:           4,
		SourceExt:      common.SourceFileExt,
		Server: ServerConfig{
			Address:        "127.0.0.1:7070",
			CacheSize:      256,
			AllowedOrigins: []string{"*"},
		},
	}
}

// BuildOptions returns the analysis options described by the configuration.
func (c *Config) BuildOptions(stage int) build.Options {
	return build.Options{
		MaxSourceBytes: c.MaxSourceBytes,
		MaxDepth:       c.MaxDepth,
		Stage:          stage,
	}
}
