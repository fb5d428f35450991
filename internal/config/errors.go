package config

import "errors"

var (
	// ErrConfiguration wraps every error returned by New.
	ErrConfiguration = errors.New("configuration")
	// ErrCantReadConfigFile reports a config file that exists but can't be read.
	ErrCantReadConfigFile = errors.New("can't read config file")
	// ErrCantParseConfigFile reports a config file that isn't valid YAML.
	ErrCantParseConfigFile = errors.New("can't parse config file")
	// ErrInvalidValue reports a field outside its allowed range.
	ErrInvalidValue = errors.New("invalid value")
)
