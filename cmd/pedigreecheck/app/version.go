package app

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/pedigreecheck/internal/cmd/output"
)

// VersionInfo is the structured form of the version command output.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Built     string `json:"built" yaml:"built"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version:   a.version,
				Commit:    a.commit,
				Built:     a.date,
				BuiltBy:   a.builtBy,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if format := output.Format(strings.ToLower(a.config.Format)); format == output.FormatJSON || format == output.FormatYAML {
				return output.FormatAny(a.stdout, format, info)
			}
			_, err := fmt.Fprintf(a.stdout,
				"pedigreecheck version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s\n",
				info.Version, info.Commit, info.Built, info.BuiltBy, info.GoVersion, info.Platform)
			return err
		},
	}
}
