// Package models defines the domain records stored in the document store.
//
// Records persist as schemaless JSON documents, so every numeric field uses
// money.Amount and decodes leniently: an expense saved by an older client,
// or edited around today's validation rules, must still decode to something
// the settlement engine can compute over.
package models

import "github.com/hearthhq/hearth/internal/money"

// Split types. The stored strings match the historical document format.
const (
	SplitEqually     = "Equally"
	SplitPercentages = "Percentages"
	SplitItemized    = "Itemized"
)

// Expense is a shared cost paid by one party and split among participants.
type Expense struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Date        string `json:"date"`
	PaidBy      string `json:"paidBy"`
	SplitType   string `json:"splitType"`

	// TotalAmount is authoritative for Equally/Percentages splits. For
	// Itemized it is derived from item costs and recomputed when missing.
	TotalAmount money.Amount `json:"totalAmount"`

	// Participants applies to Equally and Percentages splits. Itemized
	// splits carry participants per item instead.
	Participants []string `json:"participants"`

	// Percentages maps participant name to percent share. Participants
	// absent from the map carry an implicit zero share.
	Percentages map[string]money.Amount `json:"percentages,omitempty"`

	Items []ExpenseItem `json:"items,omitempty"`
	Notes string        `json:"notes,omitempty"`
}

// ExpenseItem is a single line of an itemized expense, split equally among
// its own participants.
type ExpenseItem struct {
	Name         string       `json:"name"`
	Cost         money.Amount `json:"cost"`
	Participants []string     `json:"participants"`
}

// Total returns the expense total, recomputed from item costs when the
// stored totalAmount is missing.
func (e Expense) Total() float64 {
	total := e.TotalAmount.Float()
	if total == 0 && len(e.Items) > 0 {
		for _, item := range e.Items {
			total += item.Cost.Float()
		}
	}
	return total
}
