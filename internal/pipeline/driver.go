package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eugenenazirov/compilerconf/internal/catalog"
	"github.com/eugenenazirov/compilerconf/internal/compilerconfig"
)

// DriverOption configures the behaviour of NewDriver.
type DriverOption func(*Driver)

// WithMaxConcurrency bounds how many modules run at once. Values <= 0 select
// the number of CPUs.
func WithMaxConcurrency(n int) DriverOption {
	return func(d *Driver) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		d.maxConcurrency = n
	}
}

// WithDispatchRate limits how many modules start per second. A non-positive
// rate disables pacing.
func WithDispatchRate(perSecond float64, burst int) DriverOption {
	return func(d *Driver) {
		d.dispatch = newTokenBucketDispatcher(perSecond, burst)
	}
}

// Driver runs phases against configurations.
type Driver struct {
	logger         *zap.Logger
	maxConcurrency int
	dispatch       dispatcher
}

// NewDriver creates a Driver. A nil logger discards log output.
func NewDriver(logger *zap.Logger, opts ...DriverOption) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Driver{
		logger:         logger,
		maxConcurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes phases in order against a read-only snapshot of cfg. It stops
// at the first failing phase or when ctx is cancelled.
func (d *Driver) Run(ctx context.Context, cfg *compilerconfig.Configuration, phases ...Phase) error {
	snap := cfg.Snapshot()
	logger := d.logger
	if name, ok := compilerconfig.Get(snap, catalog.ModuleName); ok {
		logger = logger.With(zap.String("module", name))
	}
	logger.Debug("running phases", zap.Int("phases", len(phases)), zap.Object("configuration", snap))

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("before phase %q: %w", phase.Name(), err)
		}
		start := time.Now()
		if err := phase.Run(ctx, snap); err != nil {
			logger.Warn("phase failed", zap.String("phase", phase.Name()), zap.Error(err))
			return fmt.Errorf("phase %q: %w", phase.Name(), err)
		}
		logger.Debug("phase completed",
			zap.String("phase", phase.Name()),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return nil
}

// RunModules forks base once per module, applies each module's Configure to its
// own fork, and runs phases for all modules concurrently. Every fork is taken
// before any goroutine starts, so branches never share a writable
// configuration. The first error cancels the remaining modules.
func (d *Driver) RunModules(ctx context.Context, base *compilerconfig.Configuration, modules []Module, phases ...Phase) error {
	if len(modules) == 0 {
		return nil
	}

	forks := make([]*compilerconfig.Configuration, len(modules))
	for i, module := range modules {
		fork := base.Copy()
		if module.Name != "" {
			compilerconfig.Put(fork, catalog.ModuleName, module.Name)
		}
		if module.Configure != nil {
			module.Configure(fork)
		}
		forks[i] = fork
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.maxConcurrency)

	for i, fork := range forks {
		if d.dispatch != nil {
			if err := d.dispatch.Wait(groupCtx); err != nil {
				if runErr := group.Wait(); runErr != nil {
					return fmt.Errorf("run modules: %w", runErr)
				}
				return fmt.Errorf("dispatch module %q: %w", modules[i].Name, err)
			}
		}
		group.Go(func() error {
			if err := d.Run(groupCtx, fork, phases...); err != nil {
				return fmt.Errorf("module %q: %w", modules[i].Name, err)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("run modules: %w", err)
	}
	return nil
}
