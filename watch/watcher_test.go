package watch

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"rentscout/config"
	"rentscout/models"
	"rentscout/storage"
)

type fakeLister struct {
	mu    sync.Mutex
	pages map[string]*models.PropertyPage
	err   error
	calls []string
}

func (f *fakeLister) ListProperties(ctx context.Context, filter models.Filter, limit, offset int) (*models.PropertyPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, filter.Outcode)
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[filter.Outcode]
	if !ok {
		return &models.PropertyPage{}, nil
	}
	return page, nil
}

type notifyRecorder struct {
	mu  sync.Mutex
	got []int
}

func (r *notifyRecorder) record(search string, p models.Property) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, p.ID)
}

func (r *notifyRecorder) ids() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]int(nil), r.got...)
	sort.Ints(out)
	return out
}

func pageWithIDs(ids ...int) *models.PropertyPage {
	var props []models.Property
	for _, id := range ids {
		props = append(props, models.Property{ID: id})
	}
	return &models.PropertyPage{Properties: props, TotalCount: len(props)}
}

func watchConfig(searches ...*config.SavedSearch) *config.Config {
	cfg := &config.Config{Searches: make(map[string]*config.SavedSearch)}
	for _, s := range searches {
		cfg.Searches[s.Label] = s
	}
	return cfg
}

func seenIDs(t *testing.T, blobs storage.Store, label string) []int {
	t.Helper()
	raw, err := blobs.Get(seenKey(label))
	if err != nil {
		t.Fatalf("get seen blob: %v", err)
	}
	if raw == nil {
		return nil
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		t.Fatalf("decode seen blob: %v", err)
	}
	return ids
}

func TestFirstPollRecordsBaselineSilently(t *testing.T) {
	api := &fakeLister{pages: map[string]*models.PropertyPage{"E8": pageWithIDs(1, 2, 3)}}
	blobs := storage.NewMemStore()
	rec := &notifyRecorder{}
	w := New(watchConfig(&config.SavedSearch{Label: "east", Outcode: "E8", Notify: true}), api, blobs, rec.record)

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(rec.ids()) != 0 {
		t.Fatalf("expected no notifications on baseline, got %v", rec.ids())
	}
	if got := seenIDs(t, blobs, "east"); len(got) != 3 {
		t.Fatalf("expected 3 seen ids recorded, got %v", got)
	}
}

func TestOnlyUnseenListingsNotified(t *testing.T) {
	blobs := storage.NewMemStore()
	seed, _ := json.Marshal([]int{2})
	if err := blobs.Put(seenKey("east"), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	api := &fakeLister{pages: map[string]*models.PropertyPage{"E8": pageWithIDs(1, 2, 3)}}
	rec := &notifyRecorder{}
	w := New(watchConfig(&config.SavedSearch{Label: "east", Outcode: "E8", Notify: true}), api, blobs, rec.record)

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	if got := rec.ids(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected notifications for 1 and 3, got %v", got)
	}
	if got := seenIDs(t, blobs, "east"); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected seen set {1,2,3}, got %v", got)
	}
}

func TestSecondPollAnnouncesNothingNew(t *testing.T) {
	api := &fakeLister{pages: map[string]*models.PropertyPage{"E8": pageWithIDs(7, 8)}}
	blobs := storage.NewMemStore()
	rec := &notifyRecorder{}
	w := New(watchConfig(&config.SavedSearch{Label: "east", Outcode: "E8", Notify: true}), api, blobs, rec.record)

	ctx := context.Background()
	if err := w.RunOnce(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := w.RunOnce(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(rec.ids()) != 0 {
		t.Fatalf("expected no notifications for unchanged results, got %v", rec.ids())
	}
}

func TestSearchesWithoutNotifyAreSkipped(t *testing.T) {
	api := &fakeLister{pages: map[string]*models.PropertyPage{}}
	w := New(watchConfig(
		&config.SavedSearch{Label: "quiet", Outcode: "N1", Notify: false},
		&config.SavedSearch{Label: "loud", Outcode: "E8", Notify: true},
	), api, storage.NewMemStore(), func(string, models.Property) {})

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.calls) != 1 || api.calls[0] != "E8" {
		t.Fatalf("expected only the notify search polled, got %v", api.calls)
	}
}

func TestCorruptSeenBlobResetsBaseline(t *testing.T) {
	blobs := storage.NewMemStore()
	if err := blobs.Put(seenKey("east"), []byte("no ints here")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	api := &fakeLister{pages: map[string]*models.PropertyPage{"E8": pageWithIDs(4, 5)}}
	rec := &notifyRecorder{}
	w := New(watchConfig(&config.SavedSearch{Label: "east", Outcode: "E8", Notify: true}), api, blobs, rec.record)

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(rec.ids()) != 0 {
		t.Fatalf("expected corrupt blob to reset silently, got %v", rec.ids())
	}
	if got := seenIDs(t, blobs, "east"); len(got) != 2 {
		t.Fatalf("expected fresh baseline of 2 ids, got %v", got)
	}
}

func TestPollErrorSurfacesAndKeepsSeenSet(t *testing.T) {
	blobs := storage.NewMemStore()
	seed, _ := json.Marshal([]int{9})
	if err := blobs.Put(seenKey("east"), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	api := &fakeLister{err: errors.New("api unreachable")}
	w := New(watchConfig(&config.SavedSearch{Label: "east", Outcode: "E8", Notify: true}), api, blobs, nil)

	if err := w.RunOnce(context.Background()); err == nil {
		t.Fatal("expected poll error to surface")
	}
	if got := seenIDs(t, blobs, "east"); len(got) != 1 || got[0] != 9 {
		t.Fatalf("expected seen set untouched after failure, got %v", got)
	}
}
