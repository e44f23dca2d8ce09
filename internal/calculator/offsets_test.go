package calculator

import (
	"math"
	"reflect"
	"testing"

	"github.com/hearthhq/hearth/internal/models"
	"github.com/hearthhq/hearth/internal/money"
)

func TestBalanceMapOffsets(t *testing.T) {
	tests := []struct {
		name string
		adds [][3]any // from, to, amount
		want map[string]float64
	}{
		{
			name: "accumulates same direction",
			adds: [][3]any{{"Alice", "Bob", 10.0}, {"Alice", "Bob", 5.0}},
			want: map[string]float64{"Alice->Bob": 15},
		},
		{
			name: "partial offset decrements reverse",
			adds: [][3]any{{"Alice", "Bob", 50.0}, {"Bob", "Alice", 30.0}},
			want: map[string]float64{"Alice->Bob": 20},
		},
		{
			name: "larger offset flips direction",
			adds: [][3]any{{"Alice", "Bob", 50.0}, {"Bob", "Alice", 70.0}},
			want: map[string]float64{"Bob->Alice": 20},
		},
		{
			name: "equal amounts cancel entirely",
			adds: [][3]any{{"Alice", "Bob", 40.0}, {"Bob", "Alice", 40.0}},
			want: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBalanceMap()
			for _, add := range tt.adds {
				b.add(add[0].(string), add[1].(string), add[2].(float64))
			}
			if len(b.amounts) != len(tt.want) {
				t.Errorf("balances = %v, want %v", b.amounts, tt.want)
			}
			for key, want := range tt.want {
				if math.Abs(b.amounts[key]-want) > 0.01 {
					t.Errorf("%s = %v, want %v", key, b.amounts[key], want)
				}
			}
		})
	}
}

func TestOffsetPaymentReducesDebt(t *testing.T) {
	expenses := []models.Expense{{
		PaidBy:       "Bob",
		SplitType:    models.SplitEqually,
		TotalAmount:  100,
		Participants: []string{"Alice", "Bob"},
	}}
	payments := []models.Payment{{From: "Alice", To: "Bob", Amount: 30}}

	result := OffsetStrategy{}.Compute(expenses, payments, nil)

	if len(result.Transactions) != 1 {
		t.Fatalf("transactions = %v, want one entry", result.Transactions)
	}
	tx := result.Transactions[0]
	if tx.From != "Alice" || tx.To != "Bob" || math.Abs(tx.Amount-20) > 0.01 {
		t.Errorf("got %+v, want Alice owes Bob 20", tx)
	}
}

func TestOffsetPaymentFlipsDirection(t *testing.T) {
	expenses := []models.Expense{{
		PaidBy:       "Bob",
		SplitType:    models.SplitEqually,
		TotalAmount:  100,
		Participants: []string{"Alice", "Bob"},
	}}
	payments := []models.Payment{{From: "Alice", To: "Bob", Amount: 70}}

	result := OffsetStrategy{}.Compute(expenses, payments, nil)

	if len(result.Transactions) != 1 {
		t.Fatalf("transactions = %v, want one entry", result.Transactions)
	}
	tx := result.Transactions[0]
	if tx.From != "Bob" || tx.To != "Alice" || math.Abs(tx.Amount-20) > 0.01 {
		t.Errorf("got %+v, want Bob owes Alice 20", tx)
	}
}

func TestOffsetExactPaymentSettlesEverything(t *testing.T) {
	expenses := []models.Expense{{
		PaidBy:       "Bob",
		SplitType:    models.SplitEqually,
		TotalAmount:  80,
		Participants: []string{"Alice", "Bob"},
	}}
	payments := []models.Payment{{From: "Alice", To: "Bob", Amount: 40}}

	result := OffsetStrategy{}.Compute(expenses, payments, nil)
	if len(result.Transactions) != 0 {
		t.Errorf("expected full cancellation, got %v", result.Transactions)
	}
}

func TestOffsetPreservesNameCase(t *testing.T) {
	// This path deliberately does not case-fold; "alice" and "Alice" are
	// distinct parties here even though the matrix path merges them.
	expenses := []models.Expense{{
		PaidBy:       "Alice",
		SplitType:    models.SplitEqually,
		TotalAmount:  30,
		Participants: []string{"Alice", "bob"},
	}}

	result := OffsetStrategy{}.Compute(expenses, nil, nil)
	if len(result.Transactions) != 1 {
		t.Fatalf("transactions = %v", result.Transactions)
	}
	if result.Transactions[0].From != "bob" || result.Transactions[0].To != "Alice" {
		t.Errorf("got %+v, want bob -> Alice with original casing", result.Transactions[0])
	}
}

func TestOffsetItemizedAndPercentages(t *testing.T) {
	expenses := []models.Expense{
		{
			PaidBy:    "Alice",
			SplitType: models.SplitItemized,
			Items: []models.ExpenseItem{
				{Name: "Pizza", Cost: 20, Participants: []string{"Alice", "Bob"}},
				{Name: "Wine", Cost: 30, Participants: []string{"Bob", "Carol"}},
			},
		},
		{
			PaidBy:      "Carol",
			SplitType:   models.SplitPercentages,
			TotalAmount: 100,
			Percentages: map[string]money.Amount{"Alice": 50, "Bob": 30, "Carol": 20},
		},
	}

	result := OffsetStrategy{}.Compute(expenses, nil, nil)

	// Bob: 10+15 itemized to Alice, 30 percent to Carol.
	// Alice owes Carol 50; Carol owes Alice 15 from wine -> nets to 35.
	tx, ok := findTransaction(result.Transactions, "Bob", "Alice")
	if !ok || math.Abs(tx.Amount-25) > 0.01 {
		t.Errorf("Bob -> Alice = %v, want 25", tx.Amount)
	}
	tx, ok = findTransaction(result.Transactions, "Bob", "Carol")
	if !ok || math.Abs(tx.Amount-30) > 0.01 {
		t.Errorf("Bob -> Carol = %v, want 30", tx.Amount)
	}
	tx, ok = findTransaction(result.Transactions, "Alice", "Carol")
	if !ok || math.Abs(tx.Amount-35) > 0.01 {
		t.Errorf("Alice -> Carol = %v, want 35", tx.Amount)
	}
}

func TestOffsetIdempotent(t *testing.T) {
	expenses := []models.Expense{
		{PaidBy: "Alice", SplitType: models.SplitEqually, TotalAmount: 75, Participants: []string{"Alice", "Bob", "Carol"}},
	}
	payments := []models.Payment{
		{From: "Bob", To: "Alice", Amount: 10},
		{From: "Carol", To: "Alice", Amount: 25},
	}

	first := OffsetStrategy{}.Compute(expenses, payments, nil)
	second := OffsetStrategy{}.Compute(expenses, payments, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation diverged:\n first: %+v\nsecond: %+v", first, second)
	}
}
