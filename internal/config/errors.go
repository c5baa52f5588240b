package config

import "errors"

// ErrUnknownSetting is returned when a caller names a key that is not persisted.
var ErrUnknownSetting = errors.New("unknown setting")
