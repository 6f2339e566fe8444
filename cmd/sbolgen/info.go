package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dd0wney/sbolgraph/pkg/audit"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sbolgen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "sbolgen %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with credentials masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.WriteYAML(a.stdout)
		},
	}
}

func (a *app) journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect audit journals",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "verify <file>",
		Short: "Check the hash chain of an audit journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, last, err := audit.Verify(args[0])
			if err != nil {
				return fmt.Errorf("verify %s: %w", args[0], err)
			}
			fmt.Fprintf(a.stdout, "%s: %d entries, chain intact", args[0], n)
			if last != "" {
				fmt.Fprintf(a.stdout, " (head %s)", last[:12])
			}
			fmt.Fprintln(a.stdout)
			return nil
		},
	})
	return cmd
}
