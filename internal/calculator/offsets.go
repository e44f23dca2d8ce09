package calculator

import (
	"strings"

	"github.com/hearthhq/hearth/internal/models"
)

// OffsetStrategy is the settlement path behind the "who owes whom" list. It
// keeps a sparse "from->to" balance map and offsets each new entry against
// the reverse direction as it arrives, instead of netting a full matrix at
// the end.
//
// Unlike MatrixStrategy it does not case-fold names, and its split share
// logic is intentionally its own copy rather than ObligationsFor: the two
// paths shipped independently and are kept behaviorally separate.
type OffsetStrategy struct{}

var _ Strategy = OffsetStrategy{}

// Compute feeds every expense share and every payment through the offsetting
// balance map, then emits the surviving entries in insertion order.
func (OffsetStrategy) Compute(expenses []models.Expense, payments []models.Payment, roommates []models.Roommate) Result {
	balances := newBalanceMap()

	for _, exp := range expenses {
		if exp.PaidBy == "" {
			continue
		}

		switch {
		case exp.SplitType == models.SplitItemized && len(exp.Items) > 0:
			for _, item := range exp.Items {
				if len(item.Participants) == 0 {
					continue
				}
				share := item.Cost.Float() / float64(len(item.Participants))
				for _, p := range item.Participants {
					if p != exp.PaidBy {
						balances.add(p, exp.PaidBy, share)
					}
				}
			}

		case exp.SplitType == models.SplitPercentages:
			total := exp.Total()
			for p, pct := range exp.Percentages {
				if p != exp.PaidBy {
					balances.add(p, exp.PaidBy, pct.Float()/100*total)
				}
			}

		default: // Equally
			if len(exp.Participants) == 0 {
				continue
			}
			share := exp.Total() / float64(len(exp.Participants))
			for _, p := range exp.Participants {
				if p != exp.PaidBy {
					balances.add(p, exp.PaidBy, share)
				}
			}
		}
	}

	for _, pay := range payments {
		if pay.From == "" || pay.To == "" || pay.Amount.Float() == 0 {
			continue
		}
		// Reversed on purpose: a payment from A to B reduces what A owes B,
		// which this map models as credit in the opposite direction.
		balances.add(pay.To, pay.From, pay.Amount.Float())
	}

	transactions := balances.transactions()
	var parties []string
	seenParty := make(map[string]bool)
	for _, t := range transactions {
		for _, name := range []string{t.From, t.To} {
			if !seenParty[name] {
				seenParty[name] = true
				parties = append(parties, name)
			}
		}
	}

	return Result{
		Total:        expenseTotal(expenses),
		Summary:      summarize(parties, transactions),
		Transactions: transactions,
	}
}

const pairSep = "->"

// balanceMap accumulates positive directed balances keyed "from->to",
// cancelling against the reverse key on every add. Insertion order of keys
// is preserved so output is stable across recomputations.
type balanceMap struct {
	amounts map[string]float64
	order   []string
}

func newBalanceMap() *balanceMap {
	return &balanceMap{amounts: make(map[string]float64)}
}

// add records that from owes to an additional amount, offsetting whatever
// to already owed from first. Equal opposing amounts cancel entirely.
func (b *balanceMap) add(from, to string, amount float64) {
	if amount == 0 {
		return
	}
	key := from + pairSep + to
	reverseKey := to + pairSep + from

	if reverse, ok := b.amounts[reverseKey]; ok {
		switch {
		case reverse > amount:
			b.amounts[reverseKey] = reverse - amount
		case reverse < amount:
			b.set(key, amount-reverse)
			b.delete(reverseKey)
		default:
			b.delete(reverseKey)
		}
		return
	}

	b.set(key, b.amounts[key]+amount)
}

func (b *balanceMap) set(key string, amount float64) {
	if _, ok := b.amounts[key]; !ok {
		b.order = append(b.order, key)
	}
	b.amounts[key] = amount
}

func (b *balanceMap) delete(key string) {
	delete(b.amounts, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			return
		}
	}
}

func (b *balanceMap) transactions() []Transaction {
	var out []Transaction
	for _, key := range b.order {
		from, to, _ := splitPair(key)
		out = append(out, Transaction{From: from, To: to, Amount: b.amounts[key]})
	}
	return out
}

func splitPair(key string) (from, to string, ok bool) {
	i := strings.Index(key, pairSep)
	if i < 0 {
		return key, "", false
	}
	return key[:i], key[i+len(pairSep):], true
}
