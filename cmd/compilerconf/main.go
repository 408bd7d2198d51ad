package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/compilerconf/internal/application"
	"github.com/eugenenazirov/compilerconf/internal/config"
	"github.com/eugenenazirov/compilerconf/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "compilerconf: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	overrides config.CLIOverrides

	target       *string
	moduleKind   *string
	moduleName   *string
	outputDir    *string
	sourceMap    *bool
	metaInfo     *bool
	typedArrays  *bool
	skipCheck    *bool
	sourceMapSet bool
	metaInfoSet  bool
	typedSet     bool
	skipCheckSet bool
	libraries    *[]string
	sourceRoots  *[]string

	logLevel   *string
	devLogging *bool
}

func registerFlags(app *kingpin.Application) *cliFlags {
	f := &cliFlags{}
	app.Flag("config", "Path to YAML build settings file").StringVar(&f.overrides.ConfigFile)
	f.target = app.Flag("target", "ECMA version target (es3, es5, es6)").String()
	f.moduleKind = app.Flag("module-kind", "Module kind (plain, amd, commonjs, umd)").String()
	f.moduleName = app.Flag("module-name", "Name of the compiled module").String()
	f.outputDir = app.Flag("output-dir", "Directory emitted files are written to").String()
	f.sourceMap = app.Flag("source-map", "Generate source maps").IsSetByUser(&f.sourceMapSet).Bool()
	f.metaInfo = app.Flag("meta-info", "Generate .meta.js and .kjsm files").IsSetByUser(&f.metaInfoSet).Bool()
	f.typedArrays = app.Flag("typed-arrays", "Translate primitive arrays to TypedArrays").IsSetByUser(&f.typedSet).Bool()
	f.skipCheck = app.Flag("skip-runtime-version-check", "Skip checking library runtime versions").IsSetByUser(&f.skipCheckSet).Bool()
	f.libraries = app.Flag("library", "Library file path (repeatable, appended in order)").Strings()
	f.sourceRoots = app.Flag("source-root", "Source root (repeatable)").Strings()
	f.logLevel = app.Flag("log-level", "Minimum log level").Default("info").String()
	f.devLogging = app.Flag("dev-log", "Human-readable log output").Bool()
	return f
}

// cliOverrides converts parsed flags; flags the user did not pass stay nil.
func (f *cliFlags) cliOverrides() *config.CLIOverrides {
	overrides := f.overrides

	if *f.target != "" {
		overrides.Target = f.target
	}
	if *f.moduleKind != "" {
		overrides.ModuleKind = f.moduleKind
	}
	if *f.moduleName != "" {
		overrides.ModuleName = f.moduleName
	}
	if *f.outputDir != "" {
		overrides.OutputDir = f.outputDir
	}
	if f.sourceMapSet {
		overrides.SourceMap = f.sourceMap
	}
	if f.metaInfoSet {
		overrides.MetaInfo = f.metaInfo
	}
	if f.typedSet {
		overrides.TypedArrays = f.typedArrays
	}
	if f.skipCheckSet {
		overrides.SkipRuntimeVersionCheck = f.skipCheck
	}
	overrides.Libraries = *f.libraries
	overrides.SourceRoots = *f.sourceRoots

	return &overrides
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("compilerconf", "Resolve compiler configuration and inspect what the JavaScript backend would emit")
	flags := registerFlags(kingpinApp)

	kingpinApp.Command("dump", "Print the resolved configuration as YAML").Default()

	planCmd := kingpinApp.Command("plan", "Print the emission plan for one or more modules")
	modules := planCmd.Flag("module", "Plan a module forked from the resolved configuration (repeatable)").Strings()
	maxConcurrency := planCmd.Flag("max-concurrency", "Modules planned at once (0 selects the CPU count)").Default("0").Int()
	dispatchRate := planCmd.Flag("dispatch-rate", "Modules started per second (0 disables pacing)").Default("0").Float64()
	dispatchBurst := planCmd.Flag("dispatch-burst", "Burst capacity for module dispatch").Default("1").Int()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(*flags.logLevel)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.WithLevel(level), logging.WithDevelopment(*flags.devLogging))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load(flags.cliOverrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app, err := application.New(cfg, logger, application.Options{
		MaxConcurrency: *maxConcurrency,
		DispatchRate:   *dispatchRate,
		DispatchBurst:  *dispatchBurst,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	switch command {
	case planCmd.FullCommand():
		plans, err := app.Plan(ctx, *modules)
		if err != nil {
			logger.Error("planning failed", zap.Error(err))
			return err
		}
		return application.WritePlans(stdout, plans)
	default:
		return app.WriteConfiguration(stdout)
	}
}
