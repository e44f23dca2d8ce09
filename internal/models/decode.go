package models

import (
	"encoding/json"
	"log/slog"

	"github.com/hearthhq/hearth/internal/docstore"
)

// decodeDoc converts a stored document into a typed record via a JSON round
// trip, which applies the lenient money.Amount coercion. Decode problems
// degrade the affected fields to zero values instead of dropping the record;
// the settlement engine is total over whatever is persisted.
func decodeDoc(doc docstore.Document, v any) {
	body, err := json.Marshal(doc)
	if err != nil {
		slog.Warn("failed to encode document for decoding", "id", doc.ID(), "error", err)
		return
	}
	if err := json.Unmarshal(body, v); err != nil {
		slog.Warn("document decoded partially", "id", doc.ID(), "error", err)
	}
}

// ExpensesFromDocs decodes an expenses collection snapshot.
func ExpensesFromDocs(docs []docstore.Document) []Expense {
	out := make([]Expense, 0, len(docs))
	for _, doc := range docs {
		var e Expense
		decodeDoc(doc, &e)
		e.ID = doc.ID()
		out = append(out, e)
	}
	return out
}

// PaymentsFromDocs decodes a payments collection snapshot.
func PaymentsFromDocs(docs []docstore.Document) []Payment {
	out := make([]Payment, 0, len(docs))
	for _, doc := range docs {
		var p Payment
		decodeDoc(doc, &p)
		p.ID = doc.ID()
		out = append(out, p)
	}
	return out
}

// RoommatesFromDocs decodes a roommates collection snapshot.
func RoommatesFromDocs(docs []docstore.Document) []Roommate {
	out := make([]Roommate, 0, len(docs))
	for _, doc := range docs {
		var r Roommate
		decodeDoc(doc, &r)
		r.ID = doc.ID()
		out = append(out, r)
	}
	return out
}

// ChoresFromDocs decodes a chores collection snapshot.
func ChoresFromDocs(docs []docstore.Document) []Chore {
	out := make([]Chore, 0, len(docs))
	for _, doc := range docs {
		var c Chore
		decodeDoc(doc, &c)
		c.ID = doc.ID()
		out = append(out, c)
	}
	return out
}

// ShoppingFromDocs decodes a shopping list collection snapshot.
func ShoppingFromDocs(docs []docstore.Document) []ShoppingItem {
	out := make([]ShoppingItem, 0, len(docs))
	for _, doc := range docs {
		var item ShoppingItem
		decodeDoc(doc, &item)
		item.ID = doc.ID()
		out = append(out, item)
	}
	return out
}

// FridgeFromDocs decodes a fridge inventory collection snapshot.
func FridgeFromDocs(docs []docstore.Document) []FridgeItem {
	out := make([]FridgeItem, 0, len(docs))
	for _, doc := range docs {
		var item FridgeItem
		decodeDoc(doc, &item)
		item.ID = doc.ID()
		out = append(out, item)
	}
	return out
}

// ToDoc converts a typed record into document fields for a store write.
// The id field never travels in the body; the store owns ids.
func ToDoc(v any) (docstore.Document, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := docstore.Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	delete(doc, "id")
	return doc, nil
}
