package config

import "errors"

// ErrInvalidSetting is returned when an external source supplies a value the
// compiler cannot use, such as an unknown target or an empty library path.
var ErrInvalidSetting = errors.New("invalid setting")
