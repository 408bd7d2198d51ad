package catalog

import "errors"

var (
	// ErrUnknownEcmaVersion is returned when a target version text is not recognised.
	ErrUnknownEcmaVersion = errors.New("unknown ECMA version")
	// ErrUnknownModuleKind is returned when a module kind text is not recognised.
	ErrUnknownModuleKind = errors.New("unknown module kind")
)
