package common

// MinicVersion is the current compiler version as a string.
const MinicVersion string = "0.1.0"

// ConfigFileName is the name of the project configuration file.
const ConfigFileName string = "minic.toml"

// SourceFileExt is the default file extension for a minic source file.
const SourceFileExt string = ".mc"
