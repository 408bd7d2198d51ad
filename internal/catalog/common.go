package catalog

import "github.com/eugenenazirov/compilerconf/internal/compilerconfig"

// Keys shared by the front end and every backend.
var (
	// ModuleName names the compiled module and its output files.
	ModuleName = compilerconfig.NewKey[string]("module name")

	// OutputDir is the directory outputs are written to.
	OutputDir = compilerconfig.NewKey[string]("output directory")

	// SourceRoots lists the directories sources are resolved against.
	SourceRoots = compilerconfig.NewListKey[string]("source roots")

	// SkipRuntimeVersionCheck disables the check that linked libraries match the runtime version.
	SkipRuntimeVersionCheck = compilerconfig.NewKey[bool]("skip runtime version check")
)

// All lists every catalog key, front end first.
func All() []compilerconfig.Identifier {
	return []compilerconfig.Identifier{
		ModuleName,
		OutputDir,
		SourceRoots,
		SkipRuntimeVersionCheck,
		Libraries,
		SourceMap,
		MetaInfo,
		Target,
		ModuleKindKey,
		TypedArrays,
	}
}
