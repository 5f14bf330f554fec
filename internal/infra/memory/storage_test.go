package memory

import (
	"context"
	"testing"
)

func TestStoragesIsolatePlayers(t *testing.T) {
	ctx := context.Background()
	storages := NewStorages()

	if err := storages.For("p1").SetItem(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := storages.For("p1").GetItem(ctx, "k"); !ok || v != "v" {
		t.Fatalf("expected v, got %q ok=%v", v, ok)
	}
	if _, ok, _ := storages.For("p2").GetItem(ctx, "k"); ok {
		t.Fatalf("expected p2 isolated")
	}
}
