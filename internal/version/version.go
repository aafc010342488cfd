// Package version carries build metadata stamped in via -ldflags.
package version

import "github.com/fatih/color"

var (
	major = color.New(color.FgYellow, color.Bold).Sprint("0")
	minor = color.New(color.FgGreen, color.Bold).Sprint("1")
	patch = color.New(color.FgBlue, color.Bold).Sprint("0")

	// Version is the semantic version of the CLI.
	Version = major + "." + minor + "." + patch + "-dev"

	// GitCommit, GitMessage, and BuildDate are empty unless the build
	// stamps them.
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)
