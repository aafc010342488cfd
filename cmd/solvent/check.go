package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"solvent/internal/driver"
	"solvent/internal/solver"
	"solvent/internal/trace"
)

var (
	checkJobs int
	checkUI   string
)

func init() {
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "parallel workers (0 = all CPUs)")
	checkCmd.Flags().StringVar(&checkUI, "ui", "auto", "progress UI (auto|on|off)")
}

var checkCmd = &cobra.Command{
	Use:   "check <fixture.toml|dir>...",
	Short: "Batch-verify fixtures against their expect blocks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		mode, err := parseUIMode(checkUI)
		if err != nil {
			return err
		}

		paths, err := driver.ListFixtures(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no fixtures found in %v", args)
		}

		opts := driver.Options{
			Jobs:   checkJobs,
			Solver: solver.Config{Tracer: trace.FromContext(cmd.Context())},
		}

		var outcomes []driver.Outcome
		if shouldUseTUI(mode) {
			outcomes, err = runCheckWithUI(cmd, paths, opts)
		} else {
			outcomes, err = driver.Run(cmd.Context(), paths, opts)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, o := range outcomes {
			if o.Err != nil {
				fmt.Fprintf(out, "FAIL %s: %v\n", o.Path, o.Err)
				continue
			}
			fmt.Fprintf(out, "ok   %s (%d solution(s), %v)\n", o.Name, o.Solutions, o.Elapsed.Round(timeRounding))
		}

		if failed := driver.Failures(outcomes); failed > 0 {
			return fmt.Errorf("%d of %d fixtures failed", failed, len(outcomes))
		}
		fmt.Fprintf(out, "%d fixtures passed\n", len(outcomes))
		return nil
	},
}

const timeRounding = time.Millisecond

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func parseUIMode(value string) (uiMode, error) {
	switch strings.ToLower(value) {
	case "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
