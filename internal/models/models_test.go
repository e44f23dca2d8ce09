package models

import (
	"math"
	"testing"
	"time"

	"github.com/hearthhq/hearth/internal/docstore"
)

func TestExpensesFromDocsToleratesMalformedAmounts(t *testing.T) {
	docs := []docstore.Document{
		{
			"id":           "e1",
			"description":  "Groceries",
			"paidBy":       "Alice",
			"totalAmount":  "42.50",
			"participants": []any{"Alice", "Bob"},
		},
		{
			"id":          "e2",
			"description": "Junk row",
			"paidBy":      "Bob",
			"totalAmount": "not a number",
		},
		{
			"id":          "e3",
			"description": "Missing amount",
			"paidBy":      "Carol",
		},
	}

	expenses := ExpensesFromDocs(docs)
	if len(expenses) != 3 {
		t.Fatalf("expenses = %d, want 3; malformed rows must not be dropped", len(expenses))
	}
	if got := expenses[0].TotalAmount.Float(); math.Abs(got-42.5) > 0.01 {
		t.Errorf("numeric string amount = %v, want 42.5", got)
	}
	if got := expenses[1].TotalAmount.Float(); got != 0 {
		t.Errorf("garbage amount = %v, want 0", got)
	}
	if expenses[2].ID != "e3" {
		t.Errorf("ID = %q, want e3", expenses[2].ID)
	}
}

func TestExpenseTotalDerivedFromItems(t *testing.T) {
	exp := Expense{
		SplitType: SplitItemized,
		Items: []ExpenseItem{
			{Name: "Milk", Cost: 4.5, Participants: []string{"Alice"}},
			{Name: "Bread", Cost: 3, Participants: []string{"Bob"}},
		},
	}
	if got := exp.Total(); math.Abs(got-7.5) > 0.01 {
		t.Errorf("Total() = %v, want 7.5", got)
	}

	exp.TotalAmount = 10
	if got := exp.Total(); math.Abs(got-10) > 0.01 {
		t.Errorf("Total() with stored amount = %v, want the stored 10", got)
	}
}

func TestToDocStripsID(t *testing.T) {
	doc, err := ToDoc(Payment{ID: "p1", From: "Bob", To: "Alice", Amount: 20})
	if err != nil {
		t.Fatalf("ToDoc failed: %v", err)
	}
	if _, ok := doc["id"]; ok {
		t.Error("id field should not travel in the document body")
	}
	if doc["from"] != "Bob" || doc["to"] != "Alice" {
		t.Errorf("doc = %+v, want from/to preserved", doc)
	}
}

func TestFridgeFilter(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []FridgeItem{
		{Name: "Yogurt", Owner: []string{"Alice"}, Type: "Fridge", Expires: "2025-03-01"},
		{Name: "Cheese", Owner: []string{"Alice", "Bob"}, Type: "Fridge", Expires: "2025-03-13"},
		{Name: "Pasta", Owner: []string{"Bob"}, Type: "Pantry", Expires: "2025-09-01"},
		{Name: "Mystery", Owner: []string{"Shared"}, Type: "Fridge"},
	}

	tests := []struct {
		name   string
		filter FridgeFilter
		want   []string
	}{
		{"no filter", FridgeFilter{}, []string{"Yogurt", "Cheese", "Pasta", "Mystery"}},
		{"all status", FridgeFilter{Status: FridgeStatusAll}, []string{"Yogurt", "Cheese", "Pasta", "Mystery"}},
		{"expired", FridgeFilter{Status: FridgeStatusExpired}, []string{"Yogurt"}},
		{"near expired", FridgeFilter{Status: FridgeStatusNearExpired}, []string{"Cheese"}},
		{"by owner", FridgeFilter{Owners: []string{"Bob"}}, []string{"Cheese", "Pasta"}},
		{"owner All", FridgeFilter{Owners: []string{"All"}}, []string{"Yogurt", "Cheese", "Pasta", "Mystery"}},
		{"by type", FridgeFilter{Types: []string{"Pantry"}}, []string{"Pasta"}},
		{"owner and status", FridgeFilter{Owners: []string{"Alice"}, Status: FridgeStatusExpired}, []string{"Yogurt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(items, now)
			names := make([]string, 0, len(got))
			for _, item := range got {
				names = append(names, item.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("filtered = %v, want %v", names, tt.want)
			}
			for i := range names {
				if names[i] != tt.want[i] {
					t.Fatalf("filtered = %v, want %v", names, tt.want)
				}
			}
		})
	}
}
