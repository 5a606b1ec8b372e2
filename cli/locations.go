package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage key locations used for travel times",
	}
	cmd.AddCommand(
		newLocationsListCommand(),
		newLocationsAddCommand(),
		newLocationsRemoveCommand(),
	)
	return cmd
}

func newLocationsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved key locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			locs, err := rt.locations.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(locs) == 0 {
				fmt.Println("No key locations saved.")
				return nil
			}
			fmt.Printf("%-36s  %-16s  %-40s  %10s  %10s\n", "ID", "LABEL", "ADDRESS", "LAT", "LON")
			for _, l := range locs {
				fmt.Printf("%-36s  %-16s  %-40s  %10.5f  %10.5f\n", l.ID, l.Label, l.Address, l.Latitude, l.Longitude)
			}
			return nil
		},
	}
}

func newLocationsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add LABEL ADDRESS",
		Short: "Geocode an address and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx := cmd.Context()
			if err := rt.restore(ctx); err != nil {
				return err
			}
			loc, err := rt.locations.Add(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s at %.5f, %.5f (%s)\n", loc.Label, loc.Latitude, loc.Longitude, loc.ID)
			return nil
		},
	}
}

func newLocationsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a key location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("not a location id: %q", args[0])
			}
			if err := rt.locations.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}

func newGeocodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "geocode ADDRESS...",
		Short: "Resolve an address to coordinates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx := cmd.Context()
			if err := rt.restore(ctx); err != nil {
				return err
			}
			coord, err := rt.routing.Geocode(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("%s\n%.6f, %.6f\n", coord.Address, coord.Latitude, coord.Longitude)
			return nil
		},
	}
}
