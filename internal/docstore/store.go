// Package docstore provides a document-oriented store with change
// notifications. Collections hold schemaless JSON documents; subscribers
// receive the full collection contents on subscribe and again after every
// mutation, so readers always recompute from a complete snapshot rather
// than applying deltas.
package docstore

import "context"

// Collection names used by the application.
const (
	Roommates       = "roommates"
	Expenses        = "expenses"
	Payments        = "payments"
	Chores          = "chores"
	ShoppingList    = "shoppingList"
	FridgeInventory = "fridgeInventory"
	Users           = "users"
)

// Document is a stored record with its generated id merged into the fields
// under the "id" key.
type Document map[string]any

// ID returns the document's id, or empty string if absent.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Store defines the document store operations. This abstraction mirrors a
// hosted document database: ids are store-assigned, updates merge fields,
// and every mutation fans out a fresh snapshot to subscribers of the
// affected collection.
type Store interface {
	// List returns all documents in a collection in creation order.
	List(ctx context.Context, collection string) ([]Document, error)

	// Create appends a document with the given fields and returns the
	// assigned id.
	Create(ctx context.Context, collection string, fields Document) (string, error)

	// Update merges fields into an existing document by id.
	// Returns an error if the document is not found.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes a document by id.
	// Returns an error if the document is not found.
	Delete(ctx context.Context, collection, id string) error

	// Subscribe registers a listener for a collection. The returned channel
	// immediately yields the current snapshot and then a new full snapshot
	// after each mutation. The cancel func releases the listener.
	Subscribe(collection string) (<-chan []Document, func())

	// Close releases any resources held by the store.
	Close() error
}
