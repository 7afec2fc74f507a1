// Package bootstrap wires the foundation components in a fixed order and
// unwinds them in reverse on shutdown. It is the only package that
// constructs the root allocator and the process-wide config instance;
// everything else in cmd/teleios consumes a *Foundation.
package bootstrap

import (
	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/config"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// Foundation holds the root allocator and the loaded configuration handed
// to out-of-scope subsystems once bootstrap completes.
type Foundation struct {
	Allocator alloc.Allocator
	Config    *config.Config
}

// Run wires: (1) root tracked-heap allocator, (2) logger attached to stdout
// at INFO, (3) argv[1] parsed as the YAML config path, (4) the logger
// threshold re-applied from engine.logging.level. argv must have exactly
// two elements (the process name and the config path); any other count is
// fatal.
func Run(argv []string) *Foundation {
	defer trace.Enter("bootstrap.Run(argc=%d)", len(argv))()

	root := alloc.New(alloc.StrategyTrackedHeap, 0)

	logx.SetThreshold(logx.Info)

	if len(argv) != 2 {
		logx.Fatalf("usage: %s <config.yaml>", programName(argv))

		return nil
	}

	cfg := config.Load(argv[1])

	logx.SetThreshold(cfg.GetLogLevel("engine.logging.level", logx.Info))

	if unknown := cfg.Unknown(); len(unknown) > 0 {
		logx.Warnf("config: %d unrecognized propert(y/ies): %v", len(unknown), unknown)
	}

	return &Foundation{Allocator: root, Config: cfg}
}

func programName(argv []string) string {
	if len(argv) > 0 {
		return argv[0]
	}

	return "teleios"
}

// Shutdown unwinds the foundation in the reverse of Run's wiring order:
// the root allocator is destroyed last, reporting any leaks by tag.
func (f *Foundation) Shutdown() {
	defer trace.Enter("Foundation.Shutdown()")()

	if f == nil || f.Allocator == nil {
		return
	}

	f.Allocator.Destroy()
}
