// Package cli wires the rentscout commands: the bare binary starts the TUI,
// subcommands cover scripted use and the watch daemon.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rentscout/ui"
)

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rentscout",
		Short:         "Terminal client for the rentals platform",
		Long:          "Browse listings, track viewings and watch saved searches from the terminal.\nRun without arguments to start the interactive UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.close()
			return ui.Run(ui.Deps{
				API:       rt.client,
				Session:   rt.session,
				Locations: rt.locations,
				Config:    rt.cfg,
			})
		},
	}
	cmd.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newLocationsCommand(),
		newGeocodeCommand(),
		newWatchCommand(),
	)
	return cmd
}
