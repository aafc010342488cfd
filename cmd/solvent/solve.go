package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"solvent/internal/constraint"
	"solvent/internal/driver"
	"solvent/internal/result"
	"solvent/internal/solver"
	"solvent/internal/trace"
	"solvent/internal/types"
)

var (
	solveReportPath string
	solveShowStats  bool
)

func init() {
	solveCmd.Flags().StringVar(&solveReportPath, "report", "", "write a msgpack solve report (single fixture only)")
	solveCmd.Flags().BoolVar(&solveShowStats, "stats", false, "print search statistics")
}

var solveCmd = &cobra.Command{
	Use:   "solve <fixture.toml>...",
	Short: "Solve constraint fixtures and print their solutions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if solveReportPath != "" && len(args) != 1 {
			return fmt.Errorf("--report requires exactly one fixture, got %d", len(args))
		}

		cfg := solver.Config{Tracer: trace.FromContext(cmd.Context())}
		out := cmd.OutOrStdout()

		for _, path := range args {
			run, err := driver.RunFixture(path, cfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s: %d solution(s)\n", run.Fixture.Name, len(run.Solutions))
			for i, sol := range run.Solutions {
				fmt.Fprintf(out, "  #%d %s score %s\n", i+1, renderBindings(run.Interner, sol), sol.Score)
			}
			if solveShowStats {
				s := run.Stats
				fmt.Fprintf(out, "  stats: vars=%d bindings=%d choices=%d merges=%d recorded=%d\n",
					s.TypeVariablesBound, s.BindingsAttempted, s.ChoicesAttempted,
					s.CombinationsMerged, s.SolutionsRecorded)
			}
			if err := run.Fixture.Expect.Check(run.Interner, run.Vars, run.Solutions); err != nil {
				return fmt.Errorf("%s: %w", run.Fixture.Name, err)
			}

			if solveReportPath != "" {
				report := result.New(run.Fixture.Name, run.Interner, run.Solutions, run.Stats)
				if err := report.WriteFile(solveReportPath); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				digest, err := report.Digest()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "report: %s (%s)\n", solveReportPath, digest)
			}
		}
		return nil
	},
}

func renderBindings(in *types.Interner, sol *constraint.Solution) string {
	names := make([]*constraint.TypeVariable, 0, len(sol.Bindings))
	for tv := range sol.Bindings {
		names = append(names, tv)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].ID < names[j].ID })

	s := "{"
	for i, tv := range names {
		if i > 0 {
			s += " "
		}
		ty, _ := sol.TypeOf(tv)
		s += fmt.Sprintf("%s=%s", tv.Name, in.String(ty))
	}
	return s + "}"
}
