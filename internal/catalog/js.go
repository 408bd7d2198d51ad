package catalog

import "github.com/eugenenazirov/compilerconf/internal/compilerconfig"

// Keys read by the JavaScript backend.
var (
	// Libraries lists the library files linked into the module, in load order.
	Libraries = compilerconfig.NewListKey[string]("library file paths")

	// SourceMap enables source map generation next to each output file.
	SourceMap = compilerconfig.NewKey[bool]("generate source map")

	// MetaInfo enables the .meta.js and .kjsm outputs used for incremental builds.
	MetaInfo = compilerconfig.NewKey[bool]("generate .meta.js and .kjsm files")

	// Target selects the ECMAScript edition generated code must run on.
	Target = compilerconfig.NewKey[EcmaVersion]("ECMA version target")

	// ModuleKindKey selects the module system wrapping generated code.
	ModuleKindKey = compilerconfig.NewKey[ModuleKind]("module kind")

	// TypedArrays maps primitive arrays onto JavaScript typed arrays.
	TypedArrays = compilerconfig.NewKey[bool]("TypedArrays enabled")
)
