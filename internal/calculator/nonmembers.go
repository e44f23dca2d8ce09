package calculator

import (
	"github.com/hearthhq/hearth/internal/models"
)

// NonMemberBalances sums payments where at least one side is not a
// registered roommate, keyed "from->to" with the stored display casing.
// This is a plain filtered sum: no offsetting against the reverse
// direction, no netting, distinct from both settlement strategies.
func NonMemberBalances(payments []models.Payment, roommates []models.Roommate) map[string]float64 {
	members := make(map[string]bool, len(roommates))
	for _, r := range roommates {
		members[fold(r.Name)] = true
	}

	balances := make(map[string]float64)
	for _, p := range payments {
		if p.From == "" || p.To == "" {
			continue
		}
		if !members[fold(p.From)] || !members[fold(p.To)] {
			balances[p.From+pairSep+p.To] += p.Amount.Float()
		}
	}
	return balances
}
