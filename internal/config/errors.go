package config

import "errors"

var ErrInvalid = errors.New("invalid config")
