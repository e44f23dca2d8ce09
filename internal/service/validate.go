package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hearthhq/hearth/internal/models"
	"github.com/hearthhq/hearth/internal/money"
)

// ValidateExpense enforces the save-time rules. Anything already persisted
// bypasses these checks forever, which is why the computation side stays
// lenient about the same fields.
func ValidateExpense(exp models.Expense) error {
	if strings.TrimSpace(exp.Description) == "" {
		return errors.New("expense description is required")
	}
	if exp.PaidBy == "" {
		return errors.New("payer is required")
	}
	if exp.Date == "" {
		return errors.New("date is required")
	}
	if exp.SplitType == "" {
		exp.SplitType = models.SplitEqually
	}

	switch exp.SplitType {
	case models.SplitEqually, models.SplitPercentages:
		if exp.TotalAmount.Float() <= 0 {
			return errors.New("a valid amount is required")
		}
		if len(exp.Participants) == 0 {
			return errors.New("at least one participant is required")
		}
		if exp.SplitType == models.SplitPercentages {
			var sum float64
			for _, pct := range exp.Percentages {
				sum += pct.Float()
			}
			if sum != 100 {
				return fmt.Errorf("percentages must sum to 100, got %g", sum)
			}
		}

	case models.SplitItemized:
		if len(exp.Items) == 0 {
			return errors.New("at least one item is required")
		}
		for _, item := range exp.Items {
			if strings.TrimSpace(item.Name) == "" {
				return errors.New("every item needs a name")
			}
			if item.Cost.Float() <= 0 {
				return fmt.Errorf("item %q needs a valid cost", item.Name)
			}
			if len(item.Participants) == 0 {
				return fmt.Errorf("item %q needs at least one participant", item.Name)
			}
		}

	default:
		return fmt.Errorf("unknown split type %q", exp.SplitType)
	}

	return nil
}

// NormalizeExpense clears the fields that do not apply to the chosen split
// type and derives the itemized total from item costs.
func NormalizeExpense(exp models.Expense) models.Expense {
	if exp.SplitType == "" {
		exp.SplitType = models.SplitEqually
	}
	switch exp.SplitType {
	case models.SplitItemized:
		var total float64
		for _, item := range exp.Items {
			total += item.Cost.Float()
		}
		exp.TotalAmount = money.Amount(total)
		exp.Participants = nil
		exp.Percentages = nil
	case models.SplitPercentages:
		exp.Items = nil
	default:
		exp.Percentages = nil
		exp.Items = nil
	}
	return exp
}

// ValidatePayment enforces the save-time rules for a payment.
func ValidatePayment(p models.Payment) error {
	if p.From == "" {
		return errors.New("payment source is required")
	}
	if p.To == "" {
		return errors.New("payment recipient is required")
	}
	if p.Amount.Float() <= 0 {
		return errors.New("a valid amount is required")
	}
	return nil
}
