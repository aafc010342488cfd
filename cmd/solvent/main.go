package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"solvent/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "solvent",
	Short: "Constraint solver for type inference fixtures",
	Long:  `Solvent solves type-inference constraint systems described as TOML fixtures`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("trace", "", "trace output path ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "trace ring buffer capacity")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
