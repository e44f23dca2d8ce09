package calculator

import "github.com/hearthhq/hearth/internal/models"

// Transaction is one simplified pairwise debt: From owes To Amount.
type Transaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Result is a settlement view over the full ledgers: the sum of all expense
// totals, each party's net balance, and a simplified transaction list.
type Result struct {
	Total        float64            `json:"total"`
	Summary      map[string]float64 `json:"summary"`
	Transactions []Transaction      `json:"transactions"`
}

// Strategy computes a settlement from complete ledger snapshots. Strategies
// are pure: no state carries over between calls, and recomputing on an
// unchanged snapshot yields identical output.
//
// The two implementations, MatrixStrategy and OffsetStrategy, are NOT
// equivalent. They differ on name case-folding and can differ on amounts
// under some event orderings. Different views read from each, so both
// behaviors are preserved deliberately; do not unify them without confirming
// which one is canonical.
type Strategy interface {
	Compute(expenses []models.Expense, payments []models.Payment, roommates []models.Roommate) Result
}

// summarize derives per-person net balances from a simplified transaction
// list: receivers go up, senders go down. Every listed party starts at zero,
// so the balances always sum to zero.
func summarize(parties []string, transactions []Transaction) map[string]float64 {
	summary := make(map[string]float64, len(parties))
	for _, p := range parties {
		summary[p] = 0
	}
	for _, t := range transactions {
		summary[t.To] += t.Amount
		summary[t.From] -= t.Amount
	}
	return summary
}

// expenseTotal sums every expense's total, deriving missing totals from
// item costs.
func expenseTotal(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Total()
	}
	return total
}
