package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by main
var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "none"
)

// SetVersionInfo allows setting version info from outside
func SetVersionInfo(v, bt, c string) {
	version = v
	buildTime = bt
	commit = c
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationNoConfig: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			if useJSON {
				return printJSON(cmd, map[string]string{
					"version":   version,
					"buildTime": buildTime,
					"commit":    commit,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Clipman\n")
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Build Time: %s\n", buildTime)
			fmt.Fprintf(out, "Commit:     %s\n", commit)
			return nil
		},
	}
}
