package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rentscout/watch"
)

func newWatchCommand() *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll saved searches and announce new listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx := cmd.Context()
			if err := rt.client.Health(ctx); err != nil {
				return fmt.Errorf("rentals API unreachable at %s: %w", rt.cfg.APIURL, err)
			}
			if err := rt.restore(ctx); err != nil {
				return err
			}

			notifying := 0
			for _, s := range rt.cfg.Searches {
				if s.Notify {
					notifying++
				}
			}
			if notifying == 0 {
				return fmt.Errorf("no saved searches with notify enabled, add one under config/searches/")
			}

			w := watch.New(rt.cfg, rt.client, rt.blobs, nil)
			if once {
				return w.RunOnce(ctx)
			}

			if err := w.Start(ctx); err != nil {
				return err
			}
			log.Printf("Watching %d saved searches. Ctrl+C to stop.", notifying)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Println("Shutting down...")
			w.Stop()
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "run one poll and exit")
	return cmd
}
