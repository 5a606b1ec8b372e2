package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rentscout/api"
	"rentscout/config"
	"rentscout/httputil"
	"rentscout/locations"
	"rentscout/logging"
	"rentscout/session"
	"rentscout/storage"
)

// runtime is the wired application shared by every command: config, the
// local blob store, the two API clients and the session bound to them.
type runtime struct {
	cfg       *config.Config
	blobs     *storage.SQLiteStore
	client    *api.Client
	routing   *api.Client
	session   *session.Store
	locations *locations.Manager
	logFile   *logging.RotatingWriter
}

// openRuntime wires everything up. The TUI passes stdoutLogs=false because
// it owns the terminal; daemon and one-shot commands tee the log to stdout.
// Logging failures are warnings, a missing log file never blocks startup.
func openRuntime(stdoutLogs bool) (*runtime, error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logFile *logging.RotatingWriter
	if stdoutLogs {
		logFile, err = logging.SetupWithStdout(cfg.LogPath)
	} else {
		logFile, err = logging.Setup(cfg.LogPath)
	}
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
		logFile = nil
	}

	blobs, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("open local store: %w", err)
	}
	log.Printf("SQLite database: %s", cfg.DBPath)

	clients := httputil.NewClients(cfg.HTTPTimeout)

	client := api.New(cfg.APIURL, clients.API, nil)
	sess := session.New(client, blobs)
	client.SetTokenSource(sess)

	// Geocoding and travel-time lookups run on the slower routing client but
	// share the one session.
	routing := api.New(cfg.APIURL, clients.Routing, nil)
	routing.SetTokenSource(sess)

	log.Printf("Rentals API: %s", cfg.APIURL)

	return &runtime{
		cfg:       cfg,
		blobs:     blobs,
		client:    client,
		routing:   routing,
		session:   sess,
		locations: locations.New(routing, blobs),
		logFile:   logFile,
	}, nil
}

func (rt *runtime) close() {
	if err := rt.blobs.Close(); err != nil {
		log.Printf("Error closing local store: %v", err)
	}
	if rt.logFile != nil {
		rt.logFile.Close()
	}
}

// restore loads the persisted session for commands that talk to the API
// outside the TUI. It fails when nobody is signed in.
func (rt *runtime) restore(ctx context.Context) error {
	if err := rt.session.Restore(ctx); err != nil {
		return err
	}
	if !rt.session.IsAuthenticated() {
		return errors.New("not signed in, run `rentscout login` first")
	}
	return nil
}
