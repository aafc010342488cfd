package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"solvent/internal/version"
)

const versionTagline = "every binding is a choice"

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include git commit and build date")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show solvent build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch strings.ToLower(versionFormat) {
		case "json":
			return printVersionJSON(out, versionShowFull)
		case "pretty":
			printVersionPretty(out, versionShowFull)
			return nil
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
	},
}

func printVersionPretty(out io.Writer, full bool) {
	fmt.Fprintf(out, "solvent %s - %s\n", versionString(), versionTagline)
	if !full {
		return
	}
	fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
	if msg := strings.TrimSpace(version.GitMessage); msg != "" {
		fmt.Fprintf(out, "message: %s\n", msg)
	}
	fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
}

func printVersionJSON(out io.Writer, full bool) error {
	payload := struct {
		Tool       string `json:"tool"`
		Version    string `json:"version"`
		Tagline    string `json:"tagline"`
		GitCommit  string `json:"git_commit,omitempty"`
		GitMessage string `json:"git_message,omitempty"`
		BuildDate  string `json:"build_date,omitempty"`
	}{
		Tool:    "solvent",
		Version: versionString(),
		Tagline: versionTagline,
	}
	if full {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
		payload.GitMessage = strings.TrimSpace(version.GitMessage)
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func versionString() string {
	if v := strings.TrimSpace(version.Version); v != "" {
		return v
	}
	return "dev"
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
