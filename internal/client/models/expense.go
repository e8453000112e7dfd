package models

import "time"

// ExpenseKind distinguishes money coming in from money going out.
type ExpenseKind string

const (
	KindIncome  ExpenseKind = "income"
	KindExpense ExpenseKind = "expense"
)

// Expense is a single ledger entry, either income or expense.
type Expense struct {
	Meta
	Title       string      `json:"title"`
	Amount      float64     `json:"amount"`
	Category    string      `json:"category"`
	Kind        ExpenseKind `json:"type"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description,omitempty"`
}

// ExpensePatch is a partial Expense update.
type ExpensePatch struct {
	Title       *string
	Amount      *float64
	Category    *string
	Kind        *ExpenseKind
	Date        *time.Time
	Description *string
}

func (p ExpensePatch) Apply(rec Syncable) bool {
	e, ok := rec.(*Expense)
	if !ok {
		return false
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Kind != nil {
		e.Kind = *p.Kind
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	return true
}
