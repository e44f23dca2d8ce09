package calculator

import (
	"strings"

	"github.com/hearthhq/hearth/internal/models"
	"github.com/hearthhq/hearth/internal/money"
)

// MatrixStrategy is the settlement path behind the dashboard summary. It
// nets a dense pairwise debt matrix over a case-folded universe of party
// names.
type MatrixStrategy struct{}

var _ Strategy = MatrixStrategy{}

// Compute builds the debt matrix from scratch:
//
//  1. Seed the universe with registry members and every name mentioned in
//     the ledgers, case-folded.
//  2. Add each expense obligation to debts[participant][payer].
//  3. Subtract each payment from debts[from][to], clamping at zero and
//     pushing any overshoot onto the reverse cell, so a payment can flip
//     the direction of debt.
//  4. Emit the positive pairwise net per pair, then derive net balances
//     from the emitted transactions.
func (MatrixStrategy) Compute(expenses []models.Expense, payments []models.Payment, roommates []models.Roommate) Result {
	var people []string
	seen := make(map[string]bool)
	add := func(name string) {
		n := fold(name)
		if n == "" || seen[n] {
			return
		}
		seen[n] = true
		people = append(people, n)
	}

	for _, r := range roommates {
		add(r.Name)
	}
	for _, e := range expenses {
		add(e.PaidBy)
		for _, p := range e.Participants {
			add(p)
		}
		for _, item := range e.Items {
			for _, p := range item.Participants {
				add(p)
			}
		}
	}
	for _, p := range payments {
		add(p.From)
		add(p.To)
	}

	debts := make(map[string]map[string]float64, len(people))
	for _, p := range people {
		debts[p] = make(map[string]float64, len(people)-1)
	}

	for _, e := range expenses {
		folded := foldExpense(e)
		if folded.PaidBy == "" {
			continue
		}
		for p, share := range ObligationsFor(folded) {
			if share == 0 || !seen[p] {
				continue
			}
			debts[p][folded.PaidBy] += share
		}
	}

	for _, pay := range payments {
		from, to := fold(pay.From), fold(pay.To)
		amount := pay.Amount.Float()
		if from == "" || to == "" || amount == 0 {
			continue
		}
		if !seen[from] || !seen[to] {
			continue
		}
		debts[from][to] -= amount
		if debts[from][to] < 0 {
			debts[to][from] += -debts[from][to]
			debts[from][to] = 0
		}
	}

	// One direction per pair: net > 0 emits, net == 0 emits nothing.
	var transactions []Transaction
	for _, p1 := range people {
		for _, p2 := range people {
			if p1 == p2 {
				continue
			}
			net := debts[p1][p2] - debts[p2][p1]
			if net > 0 {
				transactions = append(transactions, Transaction{From: p1, To: p2, Amount: net})
			}
		}
	}

	return Result{
		Total:        expenseTotal(expenses),
		Summary:      summarize(people, transactions),
		Transactions: transactions,
	}
}

func fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// foldExpense lowercases every party name on a copy of the expense so the
// matrix path treats "Alice" and "alice" as one person.
func foldExpense(e models.Expense) models.Expense {
	folded := e
	folded.PaidBy = fold(e.PaidBy)

	if len(e.Participants) > 0 {
		folded.Participants = make([]string, len(e.Participants))
		for i, p := range e.Participants {
			folded.Participants[i] = fold(p)
		}
	}
	if len(e.Percentages) > 0 {
		folded.Percentages = make(map[string]money.Amount, len(e.Percentages))
		for p, pct := range e.Percentages {
			folded.Percentages[fold(p)] = pct
		}
	}
	if len(e.Items) > 0 {
		folded.Items = make([]models.ExpenseItem, len(e.Items))
		for i, item := range e.Items {
			fi := item
			fi.Participants = make([]string, len(item.Participants))
			for j, p := range item.Participants {
				fi.Participants[j] = fold(p)
			}
			folded.Items[i] = fi
		}
	}
	return folded
}
