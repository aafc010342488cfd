// Package driver runs constraint fixtures: one at a time for the solve
// command, or in parallel batches for check runs. The solver core stays
// single-threaded per invocation; the driver only parallelizes across
// fixtures.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"solvent/internal/constraint"
	"solvent/internal/fixture"
	"solvent/internal/solver"
	"solvent/internal/types"
)

// FixtureRun is the full outcome of solving one fixture.
type FixtureRun struct {
	Fixture   *fixture.Fixture
	Vars      map[string]*constraint.TypeVariable
	Interner  *types.Interner
	Solutions []*constraint.Solution
	Stats     solver.Stats
}

// RunFixture loads, builds, and solves a single fixture. The base config
// supplies the tracer and weights; the fixture's own options section
// controls the solver mode flags.
func RunFixture(path string, base solver.Config) (*FixtureRun, error) {
	f, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}
	sys, vars, err := f.Build()
	if err != nil {
		return nil, err
	}

	cfg := base
	cfg.AllowFreeTypeVariables = f.Options.AllowFreeTypeVariables
	cfg.DiagnosticMode = f.Options.DiagnosticMode
	cfg.DisablePerformanceHacks = f.Options.DisablePerformanceHacks

	sols, stats := solver.Solve(sys, cfg)
	return &FixtureRun{
		Fixture:   f,
		Vars:      vars,
		Interner:  sys.Interner,
		Solutions: sols,
		Stats:     stats,
	}, nil
}

// Outcome summarizes one fixture of a batch run.
type Outcome struct {
	Path      string
	Name      string
	Solutions int
	Stats     solver.Stats
	Elapsed   time.Duration
	Err       error
}

// Options configure a batch run.
type Options struct {
	// Jobs bounds worker parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// Sink receives progress events. Nil disables reporting.
	Sink ProgressSink

	// Solver is the base config handed to each fixture run.
	Solver solver.Config
}

// Run solves the given fixtures in parallel and verifies their expect
// blocks. Per-fixture failures land in the outcome's Err; the returned error
// reports only cancellation. Outcomes keep the input order.
func Run(ctx context.Context, paths []string, opts Options) ([]Outcome, error) {
	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range paths {
		sink.OnEvent(Event{Fixture: path, Stage: StageLoad, Status: StatusQueued})
	}

	outcomes := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			outcomes[i] = runOne(path, opts.Solver, sink)
			outcomes[i].Elapsed = time.Since(start)

			status := StatusDone
			if outcomes[i].Err != nil {
				status = StatusError
			}
			sink.OnEvent(Event{
				Fixture: path,
				Stage:   StageCheck,
				Status:  status,
				Err:     outcomes[i].Err,
				Elapsed: outcomes[i].Elapsed,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

func runOne(path string, base solver.Config, sink ProgressSink) Outcome {
	out := Outcome{Path: path, Name: path}

	sink.OnEvent(Event{Fixture: path, Stage: StageLoad, Status: StatusWorking})
	f, err := fixture.Load(path)
	if err != nil {
		out.Err = err
		return out
	}
	out.Name = f.Name
	sys, vars, err := f.Build()
	if err != nil {
		out.Err = err
		return out
	}

	cfg := base
	cfg.AllowFreeTypeVariables = f.Options.AllowFreeTypeVariables
	cfg.DiagnosticMode = f.Options.DiagnosticMode
	cfg.DisablePerformanceHacks = f.Options.DisablePerformanceHacks

	sink.OnEvent(Event{Fixture: path, Stage: StageSolve, Status: StatusWorking})
	sols, stats := solver.Solve(sys, cfg)
	out.Solutions = len(sols)
	out.Stats = stats

	sink.OnEvent(Event{Fixture: path, Stage: StageCheck, Status: StatusWorking})
	out.Err = f.Expect.Check(sys.Interner, vars, sols)
	return out
}

// ListFixtures expands the given arguments into fixture files: directories
// are walked for *.toml files in sorted order, plain paths pass through.
func ListFixtures(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".toml") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

// Failures counts outcomes that ended in an error.
func Failures(outcomes []Outcome) int {
	n := 0
	for _, out := range outcomes {
		if out.Err != nil {
			n++
		}
	}
	return n
}
