// Package calculator contains the ledger math: per-expense obligations and
// the two settlement strategies derived from them.
package calculator

import "github.com/hearthhq/hearth/internal/models"

// Obligations maps a party name to the amount that party owes the payer for
// a single expense. The payer never appears in the map.
type Obligations map[string]float64

// ObligationsFor computes each participant's share of one expense.
//
//   - Equally: total split uniformly across participants. Any floating
//     remainder stays as-is; cents are not redistributed.
//   - Percentages: percent-of-total per name in the percentages map. A
//     participant absent from the map has an implicit zero share.
//   - Itemized: each item's cost split equally among that item's
//     participants, summed per person. People come only from the item lists;
//     the expense-level participants field is ignored.
//
// Malformed numeric fields have already been coerced to 0 at decode time, so
// this function is total over any persisted expense.
func ObligationsFor(exp models.Expense) Obligations {
	shares := Obligations{}

	switch exp.SplitType {
	case models.SplitItemized:
		for _, item := range exp.Items {
			if len(item.Participants) == 0 {
				continue
			}
			perPerson := item.Cost.Float() / float64(len(item.Participants))
			for _, p := range item.Participants {
				shares[p] += perPerson
			}
		}

	case models.SplitPercentages:
		total := exp.Total()
		for p, pct := range exp.Percentages {
			shares[p] += pct.Float() / 100 * total
		}

	default: // Equally
		if len(exp.Participants) == 0 {
			return shares
		}
		perPerson := exp.Total() / float64(len(exp.Participants))
		for _, p := range exp.Participants {
			shares[p] += perPerson
		}
	}

	// The payer never owes themself.
	delete(shares, exp.PaidBy)
	return shares
}
