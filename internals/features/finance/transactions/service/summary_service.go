package service

import (
	"sort"

	"github.com/google/uuid"

	categoryModel "ecclesia_backend/internals/features/finance/categories/model"
)

// CategoryTotal is one GROUP BY row of the month's transactions.
// CategoryID is nil for uncategorized transactions.
type CategoryTotal struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Type         string
	TotalCents   int64
}

type BudgetLine struct {
	CategoryID   uuid.UUID
	CategoryName string
	Type         string
	AmountCents  int64
}

type CategoryUsage struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	CategoryName string     `json:"category_name"`
	Type         string     `json:"category_type"`
	TotalCents   int64      `json:"total_cents"`
	BudgetCents  *int64     `json:"budget_cents,omitempty"`
	UsagePercent *int       `json:"usage_percent,omitempty"`
}

type Summary struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	IncomeCents  int64           `json:"income_cents"`
	ExpenseCents int64           `json:"expense_cents"`
	BalanceCents int64           `json:"balance_cents"`
	Categories   []CategoryUsage `json:"categories"`
}

// Summarize merges the month totals with the month budgets. Budgeted
// categories without movement are listed with a zero total.
func Summarize(year, month int, totals []CategoryTotal, budgets []BudgetLine) Summary {
	s := Summary{Year: year, Month: month, Categories: []CategoryUsage{}}
	byCategory := map[uuid.UUID]int{}

	for _, t := range totals {
		switch t.Type {
		case categoryModel.TypeIncome:
			s.IncomeCents += t.TotalCents
		case categoryModel.TypeExpense:
			s.ExpenseCents += t.TotalCents
		}
		name := t.CategoryName
		if t.CategoryID == nil {
			name = "Uncategorized"
		}
		s.Categories = append(s.Categories, CategoryUsage{
			CategoryID: t.CategoryID, CategoryName: name, Type: t.Type, TotalCents: t.TotalCents,
		})
		if t.CategoryID != nil {
			byCategory[*t.CategoryID] = len(s.Categories) - 1
		}
	}
	s.BalanceCents = s.IncomeCents - s.ExpenseCents

	for _, b := range budgets {
		amount := b.AmountCents
		i, ok := byCategory[b.CategoryID]
		if !ok {
			id := b.CategoryID
			s.Categories = append(s.Categories, CategoryUsage{CategoryID: &id, CategoryName: b.CategoryName, Type: b.Type})
			i = len(s.Categories) - 1
		}
		u := &s.Categories[i]
		u.BudgetCents = &amount
		if amount > 0 {
			pct := int(u.TotalCents * 100 / amount)
			u.UsagePercent = &pct
		}
	}

	sort.SliceStable(s.Categories, func(i, j int) bool {
		if s.Categories[i].Type != s.Categories[j].Type {
			return s.Categories[i].Type < s.Categories[j].Type
		}
		return s.Categories[i].TotalCents > s.Categories[j].TotalCents
	})
	return s
}
