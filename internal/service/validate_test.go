package service

import (
	"math"
	"testing"

	"github.com/hearthhq/hearth/internal/models"
	"github.com/hearthhq/hearth/internal/money"
)

func validExpense() models.Expense {
	return models.Expense{
		Description:  "Groceries",
		Date:         "2025-03-01",
		PaidBy:       "Alice",
		SplitType:    models.SplitEqually,
		TotalAmount:  60,
		Participants: []string{"Alice", "Bob"},
	}
}

func TestValidateExpense(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Expense)
		wantErr bool
	}{
		{
			name:   "valid equal split",
			mutate: func(e *models.Expense) {},
		},
		{
			name:    "missing description",
			mutate:  func(e *models.Expense) { e.Description = "  " },
			wantErr: true,
		},
		{
			name:    "missing payer",
			mutate:  func(e *models.Expense) { e.PaidBy = "" },
			wantErr: true,
		},
		{
			name:    "missing date",
			mutate:  func(e *models.Expense) { e.Date = "" },
			wantErr: true,
		},
		{
			name:   "empty split type defaults to equal",
			mutate: func(e *models.Expense) { e.SplitType = "" },
		},
		{
			name:    "zero amount",
			mutate:  func(e *models.Expense) { e.TotalAmount = 0 },
			wantErr: true,
		},
		{
			name:    "negative amount",
			mutate:  func(e *models.Expense) { e.TotalAmount = -5 },
			wantErr: true,
		},
		{
			name:    "no participants",
			mutate:  func(e *models.Expense) { e.Participants = nil },
			wantErr: true,
		},
		{
			name: "percentages summing to 100",
			mutate: func(e *models.Expense) {
				e.SplitType = models.SplitPercentages
				e.Percentages = map[string]money.Amount{"Alice": 50, "Bob": 30, "Carol": 20}
			},
		},
		{
			name: "percentages not summing to 100",
			mutate: func(e *models.Expense) {
				e.SplitType = models.SplitPercentages
				e.Percentages = map[string]money.Amount{"Alice": 50, "Bob": 40}
			},
			wantErr: true,
		},
		{
			name: "valid itemized",
			mutate: func(e *models.Expense) {
				e.SplitType = models.SplitItemized
				e.Items = []models.ExpenseItem{
					{Name: "Milk", Cost: 4, Participants: []string{"Alice"}},
				}
			},
		},
		{
			name: "itemized without items",
			mutate: func(e *models.Expense) {
				e.SplitType = models.SplitItemized
				e.Items = nil
			},
			wantErr: true,
		},
		{
			name: "itemized item without participants",
			mutate: func(e *models.Expense) {
				e.SplitType = models.SplitItemized
				e.Items = []models.ExpenseItem{{Name: "Milk", Cost: 4}}
			},
			wantErr: true,
		},
		{
			name: "itemized item with zero cost",
			mutate: func(e *models.Expense) {
				e.SplitType = models.SplitItemized
				e.Items = []models.ExpenseItem{
					{Name: "Milk", Cost: 0, Participants: []string{"Alice"}},
				}
			},
			wantErr: true,
		},
		{
			name:    "unknown split type",
			mutate:  func(e *models.Expense) { e.SplitType = "Randomly" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := validExpense()
			tt.mutate(&exp)
			err := ValidateExpense(exp)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestNormalizeExpenseDerivesItemizedTotal(t *testing.T) {
	exp := models.Expense{
		Description: "Costco run",
		Date:        "2025-03-01",
		PaidBy:      "Alice",
		SplitType:   models.SplitItemized,
		Items: []models.ExpenseItem{
			{Name: "Chicken", Cost: 12.5, Participants: []string{"Alice", "Bob"}},
			{Name: "Rice", Cost: 7.5, Participants: []string{"Bob"}},
		},
		Participants: []string{"Alice", "Bob"},
		Percentages:  map[string]money.Amount{"Alice": 100},
	}

	got := NormalizeExpense(exp)
	if math.Abs(got.TotalAmount.Float()-20) > 0.01 {
		t.Errorf("TotalAmount = %v, want 20", got.TotalAmount)
	}
	if got.Participants != nil || got.Percentages != nil {
		t.Error("itemized expense should not keep participants or percentages")
	}
}

func TestNormalizeExpenseClearsUnusedFields(t *testing.T) {
	exp := validExpense()
	exp.SplitType = ""
	exp.Percentages = map[string]money.Amount{"Alice": 100}
	exp.Items = []models.ExpenseItem{{Name: "Milk", Cost: 4}}

	got := NormalizeExpense(exp)
	if got.SplitType != models.SplitEqually {
		t.Errorf("SplitType = %q, want %q", got.SplitType, models.SplitEqually)
	}
	if got.Percentages != nil || got.Items != nil {
		t.Error("equal split should not keep percentages or items")
	}
}

func TestValidatePayment(t *testing.T) {
	tests := []struct {
		name    string
		payment models.Payment
		wantErr bool
	}{
		{"valid", models.Payment{From: "Bob", To: "Alice", Amount: 20}, false},
		{"missing from", models.Payment{To: "Alice", Amount: 20}, true},
		{"missing to", models.Payment{From: "Bob", Amount: 20}, true},
		{"zero amount", models.Payment{From: "Bob", To: "Alice"}, true},
		{"negative amount", models.Payment{From: "Bob", To: "Alice", Amount: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(tt.payment)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
