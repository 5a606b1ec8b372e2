package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"rentscout/config"
	"rentscout/models"
	"rentscout/storage"
)

// watchPageSize is how many listings each poll inspects. New listings land
// at the head of the default ordering, so one page is enough between polls.
const watchPageSize = 50

type lister interface {
	ListProperties(ctx context.Context, f models.Filter, limit, offset int) (*models.PropertyPage, error)
}

// NotifyFunc receives each listing that appears in a watched search for the
// first time.
type NotifyFunc func(search string, p models.Property)

// Watcher polls the saved searches marked notify and reports listings it has
// not seen before. Seen ids persist per search, so restarts do not re-announce
// old listings.
type Watcher struct {
	cfg    *config.Config
	api    lister
	blobs  storage.Store
	notify NotifyFunc
	cron   *cron.Cron
	ticker *time.Ticker
	stopCh chan struct{}
}

func New(cfg *config.Config, api lister, blobs storage.Store, notify NotifyFunc) *Watcher {
	if notify == nil {
		notify = func(search string, p models.Property) {
			log.Printf("Watch %s: new listing %d: %s (%s)", search, p.ID, p.ListingTitle, p.ListingURL)
		}
	}
	return &Watcher{
		cfg:    cfg,
		api:    api,
		blobs:  blobs,
		notify: notify,
		cron:   cron.New(),
		stopCh: make(chan struct{}),
	}
}

// Start runs one poll immediately, then keeps polling on the configured cron
// expression, or the interval when no cron is set.
func (w *Watcher) Start(ctx context.Context) error {
	go func() {
		if err := w.RunOnce(ctx); err != nil {
			log.Printf("Watch run error: %v", err)
		}
	}()

	if w.cfg.Watch.Cron != "" {
		log.Printf("Starting watcher with cron: %s", w.cfg.Watch.Cron)
		_, err := w.cron.AddFunc(w.cfg.Watch.Cron, func() {
			if err := w.RunOnce(ctx); err != nil {
				log.Printf("Watch run error: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		w.cron.Start()
		return nil
	}

	interval := w.cfg.Watch.Interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	log.Printf("Starting watcher with interval: %s", interval)
	w.ticker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-w.ticker.C:
				if err := w.RunOnce(ctx); err != nil {
					log.Printf("Watch run error: %v", err)
				}
			case <-w.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (w *Watcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
	if w.ticker != nil {
		w.ticker.Stop()
	}
	close(w.stopCh)
}

// RunOnce polls every notify-enabled saved search concurrently.
func (w *Watcher) RunOnce(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range w.cfg.Searches {
		if !s.Notify {
			continue
		}
		s := s
		g.Go(func() error {
			return w.poll(ctx, s)
		})
	}
	return g.Wait()
}

func (w *Watcher) poll(ctx context.Context, s *config.SavedSearch) error {
	page, err := w.api.ListProperties(ctx, s.Filter(), watchPageSize, 0)
	if err != nil {
		return fmt.Errorf("poll %s: %w", s.Label, err)
	}

	key := seenKey(s.Label)
	raw, err := w.blobs.Get(key)
	if err != nil {
		return fmt.Errorf("read seen ids for %s: %w", s.Label, err)
	}

	// The first poll of a search records a baseline and announces nothing;
	// a corrupt blob resets to the same state.
	baseline := raw == nil
	seen := make(map[int]bool)
	if raw != nil {
		var ids []int
		if err := json.Unmarshal(raw, &ids); err != nil {
			log.Printf("Watch %s: discarding corrupt seen blob: %v", s.Label, err)
			baseline = true
		} else {
			for _, id := range ids {
				seen[id] = true
			}
		}
	}

	var fresh []models.Property
	for _, p := range page.Properties {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if !baseline {
			fresh = append(fresh, p)
		}
	}

	for _, p := range fresh {
		w.notify(s.Label, p)
	}
	if baseline {
		log.Printf("Watch %s: baseline recorded with %d listings", s.Label, len(page.Properties))
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode seen ids for %s: %w", s.Label, err)
	}
	if err := w.blobs.Put(key, out); err != nil {
		return fmt.Errorf("save seen ids for %s: %w", s.Label, err)
	}
	return nil
}

func seenKey(label string) string {
	return "watch_seen:" + label
}
