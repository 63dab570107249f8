package config

import "errors"

// ErrInvalidConfig indicates a configuration value is out of range or
// malformed.
var ErrInvalidConfig = errors.New("invalid config")
