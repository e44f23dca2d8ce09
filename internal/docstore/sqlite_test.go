package docstore

import (
	"context"
	"os"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "docstore-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := NewSQLite(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})
	return store
}

func TestCreateAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, Payments, Document{"from": "Alice", "to": "Bob", "amount": 30.0})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	docs, err := store.List(ctx, Payments)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].ID() != id {
		t.Errorf("id = %q, want %q", docs[0].ID(), id)
	}
	if docs[0]["from"] != "Alice" {
		t.Errorf("from = %v, want Alice", docs[0]["from"])
	}
}

func TestListOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := store.Create(ctx, Chores, Document{"name": name}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	docs, err := store.List(ctx, Chores)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if docs[i]["name"] != want {
			t.Errorf("docs[%d].name = %v, want %s", i, docs[i]["name"], want)
		}
	}
}

func TestUpdateMergesFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, Chores, Document{"name": "dishes", "isCompleted": false})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, Chores, id, Document{"isCompleted": true}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	docs, err := store.List(ctx, Chores)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if docs[0]["name"] != "dishes" {
		t.Errorf("merge dropped untouched field, name = %v", docs[0]["name"])
	}
	if docs[0]["isCompleted"] != true {
		t.Errorf("isCompleted = %v, want true", docs[0]["isCompleted"])
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(context.Background(), Chores, "nope", Document{"name": "x"})
	if err == nil {
		t.Fatal("expected error updating missing document")
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, ShoppingList, Document{"name": "milk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, ShoppingList, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	docs, err := store.List(ctx, ShoppingList)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty collection, got %d docs", len(docs))
	}

	if err := store.Delete(ctx, ShoppingList, id); err == nil {
		t.Error("expected error deleting missing document")
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, Expenses, Document{"description": "rent"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ch, cancel := store.Subscribe(Expenses)
	defer cancel()

	// Initial snapshot reflects pre-existing documents.
	snap := <-ch
	if len(snap) != 1 {
		t.Fatalf("initial snapshot has %d docs, want 1", len(snap))
	}

	if _, err := store.Create(ctx, Expenses, Document{"description": "groceries"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	select {
	case snap = <-ch:
	case <-time.After(time.Second):
		t.Fatal("no snapshot after mutation")
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot after create has %d docs, want 2", len(snap))
	}

	// A slow subscriber only sees the latest snapshot, never a backlog.
	id := snap[0].ID()
	if err := store.Update(ctx, Expenses, id, Document{"description": "rent (june)"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := store.Delete(ctx, Expenses, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	select {
	case snap = <-ch:
	case <-time.After(time.Second):
		t.Fatal("no snapshot after update+delete")
	}
	if len(snap) != 1 {
		t.Fatalf("latest snapshot has %d docs, want 1", len(snap))
	}

	cancel()
	if _, err := store.Create(ctx, Expenses, Document{"description": "beer"}); err != nil {
		t.Fatalf("Create after cancel failed: %v", err)
	}
}
