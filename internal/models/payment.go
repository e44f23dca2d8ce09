package models

import "github.com/hearthhq/hearth/internal/money"

// Payment is money actually transferred between two parties. It reduces what
// From owes To, or flips the direction of debt if it overshoots. Payments are
// never allocated to a specific expense; they settle against the aggregate.
type Payment struct {
	ID     string       `json:"id,omitempty"`
	From   string       `json:"from"`
	To     string       `json:"to"`
	Amount money.Amount `json:"amount"`
	Date   string       `json:"date"`
	Notes  string       `json:"notes,omitempty"`

	// Timestamp is the creation time in Unix milliseconds.
	Timestamp int64 `json:"timestamp,omitempty"`
}
