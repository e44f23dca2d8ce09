package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, created_at);
`

// SQLiteStore implements Store using a single SQLite documents table with
// JSON bodies. It also owns the in-process subscription hub.
type SQLiteStore struct {
	db *sql.DB

	mu   sync.Mutex
	subs map[string][]chan []Document
}

// NewSQLite opens (creating if necessary) a SQLite-backed store at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		subs: make(map[string][]chan []Document),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all documents in a collection in creation order.
func (s *SQLiteStore) List(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, body FROM documents WHERE collection = ? ORDER BY created_at, id",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		doc := Document{}
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			// A corrupt body degrades to an id-only document rather than
			// failing the whole read.
			slog.Warn("skipping corrupt document body", "collection", collection, "id", id, "error", err)
			doc = Document{}
		}
		doc["id"] = id
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}

	return docs, nil
}

// Create appends a document and returns the store-assigned id.
func (s *SQLiteStore) Create(ctx context.Context, collection string, fields Document) (string, error) {
	id := uuid.New().String()
	body, err := marshalFields(fields)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, body, created_at) VALUES (?, ?, ?, ?)",
		collection, id, body, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	s.notify(collection)
	return id, nil
}

// Update merges fields into an existing document.
func (s *SQLiteStore) Update(ctx context.Context, collection, id string, fields Document) error {
	var body string
	err := s.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return fmt.Errorf("document not found: %s/%s", collection, id)
	}
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	merged := Document{}
	if err := json.Unmarshal([]byte(body), &merged); err != nil {
		merged = Document{}
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		merged[k] = v
	}

	newBody, err := marshalFields(merged)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE documents SET body = ? WHERE collection = ? AND id = ?",
		newBody, collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	s.notify(collection)
	return nil
}

// Delete removes a document by id.
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("document not found: %s/%s", collection, id)
	}

	s.notify(collection)
	return nil
}

// Subscribe registers a snapshot listener for a collection.
func (s *SQLiteStore) Subscribe(collection string) (<-chan []Document, func()) {
	ch := make(chan []Document, 1)

	docs, err := s.List(context.Background(), collection)
	if err != nil {
		slog.Error("failed to read initial snapshot", "collection", collection, "error", err)
		docs = nil
	}
	ch <- docs

	s.mu.Lock()
	s.subs[collection] = append(s.subs[collection], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		chans := s.subs[collection]
		for i, c := range chans {
			if c == ch {
				s.subs[collection] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// notify pushes a fresh full snapshot to every subscriber of the collection.
// A subscriber that has not consumed the previous snapshot only ever sees the
// latest one; stale intermediate snapshots are dropped.
func (s *SQLiteStore) notify(collection string) {
	docs, err := s.List(context.Background(), collection)
	if err != nil {
		slog.Error("failed to build snapshot for subscribers", "collection", collection, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs[collection] {
		select {
		case <-ch:
		default:
		}
		ch <- docs
	}
}

func marshalFields(fields Document) (string, error) {
	clean := make(Document, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		clean[k] = v
	}
	body, err := json.Marshal(clean)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(body), nil
}
