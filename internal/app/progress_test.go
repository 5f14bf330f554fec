package app_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"kickoff-hq/internal/app"
	"kickoff-hq/internal/infra/memory"
)

func TestProgressOverwritesOnReplay(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	store := app.NewProgressStore(storage, []string{"football-iq"}, nil)
	store.Load(ctx)

	store.MarkCompleted(ctx, "football-iq", 3)
	store.MarkCompleted(ctx, "football-iq", 1)

	rec, ok := store.Get("football-iq")
	if !ok || !rec.Completed || rec.Score != 1 {
		t.Fatalf("expected overwrite to score 1, got %+v", rec)
	}

	reloaded := app.NewProgressStore(storage, []string{"football-iq"}, nil)
	reloaded.Load(ctx)
	if rec, _ := reloaded.Get("football-iq"); rec.Score != 1 || !rec.Completed {
		t.Fatalf("expected persisted score 1, got %+v", rec)
	}
}

func TestProgressMarkCompletedIdempotent(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	store := app.NewProgressStore(storage, []string{"football-iq"}, nil)

	store.MarkCompleted(ctx, "football-iq", 4)
	first, _, _ := storage.GetItem(ctx, app.ProgressKey("football-iq"))
	store.MarkCompleted(ctx, "football-iq", 4)
	second, _, _ := storage.GetItem(ctx, app.ProgressKey("football-iq"))
	if first != second {
		t.Fatalf("expected identical stored value, got %q then %q", first, second)
	}
	if !strings.Contains(first, `"completedAt":"`) {
		t.Fatalf("expected completion time in stored value, got %q", first)
	}
}

func TestProgressLoadIdempotent(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	_ = storage.SetItem(ctx, app.ProgressKey("route-runner"), `{"completed":true,"score":4}`)
	store := app.NewProgressStore(storage, []string{"route-runner", "football-iq"}, nil)

	if store.IsLoaded() {
		t.Fatalf("expected not loaded before Load")
	}
	store.Load(ctx)
	once := store.Snapshot()
	store.Load(ctx)
	twice := store.Snapshot()

	if !store.IsLoaded() {
		t.Fatalf("expected loaded")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected identical maps, got %v and %v", once, twice)
	}
	if len(once) != 1 || once["route-runner"].Score != 4 {
		t.Fatalf("unexpected map %v", once)
	}
}

func TestProgressAbsentRecordDefaults(t *testing.T) {
	store := app.NewProgressStore(memory.NewStorage(), []string{"route-runner"}, nil)
	store.Load(context.Background())

	rec, ok := store.Get("route-runner")
	if ok || rec.Completed || rec.Score != 0 {
		t.Fatalf("expected absent default record, got ok=%v %+v", ok, rec)
	}
}

func TestProgressDegradesWhenStorageFails(t *testing.T) {
	ctx := context.Background()
	store := app.NewProgressStore(failingStorage{}, []string{"football-iq"}, nil)

	store.Load(ctx)
	if !store.IsLoaded() {
		t.Fatalf("expected loaded even when storage fails")
	}
	if _, ok := store.Get("football-iq"); ok {
		t.Fatalf("expected no record from failing storage")
	}

	rec := store.MarkCompleted(ctx, "football-iq", 2)
	if !rec.Completed || rec.Score != 2 {
		t.Fatalf("expected in-memory record, got %+v", rec)
	}
	if got, ok := store.Get("football-iq"); !ok || got.Score != 2 {
		t.Fatalf("expected in-memory record kept, got %+v", got)
	}
}

func TestProgressRetainsRecordsThroughOutage(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStorage()
	_ = backing.SetItem(ctx, app.ProgressKey("route-runner"), `{"completed":true,"score":4}`)
	down := false
	store := app.NewProgressStore(flakyStorage{Storage: backing, down: &down}, []string{"football-iq", "route-runner"}, nil)
	store.Load(ctx)

	down = true
	store.MarkCompleted(ctx, "football-iq", 2)
	store.Load(ctx)
	if rec, ok := store.Get("route-runner"); !ok || rec.Score != 4 {
		t.Fatalf("expected loaded record kept while reads fail, got %+v", rec)
	}
	if rec, ok := store.Get("football-iq"); !ok || rec.Score != 2 {
		t.Fatalf("expected refused write kept in memory, got %+v", rec)
	}

	down = false
	store.Load(ctx)
	if rec, ok := store.Get("football-iq"); !ok || rec.Score != 2 {
		t.Fatalf("expected record kept after recovery, got %+v", rec)
	}
	raw, ok, _ := backing.GetItem(ctx, app.ProgressKey("football-iq"))
	if !ok || !strings.Contains(raw, `"score":2`) {
		t.Fatalf("expected deferred write flushed to storage, got %q", raw)
	}
}

func TestProgressIgnoresUndecodableRecord(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	_ = storage.SetItem(ctx, app.ProgressKey("football-iq"), "not json")
	store := app.NewProgressStore(storage, []string{"football-iq"}, nil)
	store.Load(ctx)

	if _, ok := store.Get("football-iq"); ok {
		t.Fatalf("expected undecodable record treated as absent")
	}
}

var errStorageDown = errors.New("storage unavailable")

type failingStorage struct{}

func (failingStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errStorageDown
}

func (failingStorage) SetItem(context.Context, string, string) error {
	return errStorageDown
}

// flakyStorage fails every call while *down is set.
type flakyStorage struct {
	app.Storage
	down *bool
}

func (s flakyStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if *s.down {
		return "", false, errStorageDown
	}
	return s.Storage.GetItem(ctx, key)
}

func (s flakyStorage) SetItem(ctx context.Context, key, value string) error {
	if *s.down {
		return errStorageDown
	}
	return s.Storage.SetItem(ctx, key, value)
}

var _ app.Storage = failingStorage{}
var _ app.ProgressReader = (*app.ProgressStore)(nil)
