package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tithes, rent, food := uuid.New(), uuid.New(), uuid.New()
	totals := []CategoryTotal{
		{CategoryID: &tithes, CategoryName: "Tithes", Type: "income", TotalCents: 100000},
		{CategoryID: &rent, CategoryName: "Rent", Type: "expense", TotalCents: 30000},
		{CategoryID: nil, Type: "expense", TotalCents: 5000},
	}
	budgets := []BudgetLine{
		{CategoryID: rent, CategoryName: "Rent", Type: "expense", AmountCents: 40000},
		{CategoryID: food, CategoryName: "Food", Type: "expense", AmountCents: 10000},
	}

	s := Summarize(2026, 3, totals, budgets)

	assert.Equal(t, int64(100000), s.IncomeCents)
	assert.Equal(t, int64(35000), s.ExpenseCents)
	assert.Equal(t, int64(65000), s.BalanceCents)
	require.Len(t, s.Categories, 4)

	byName := map[string]CategoryUsage{}
	for _, u := range s.Categories {
		byName[u.CategoryName] = u
	}
	require.NotNil(t, byName["Rent"].UsagePercent)
	assert.Equal(t, 75, *byName["Rent"].UsagePercent)
	assert.Equal(t, int64(0), byName["Food"].TotalCents)
	assert.Equal(t, 0, *byName["Food"].UsagePercent)
	assert.Nil(t, byName["Uncategorized"].BudgetCents)
	assert.Nil(t, byName["Tithes"].BudgetCents)

	// expenses sort before income, biggest first
	assert.Equal(t, "Rent", s.Categories[0].CategoryName)
	assert.Equal(t, "income", s.Categories[3].Type)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(2026, 1, nil, nil)
	assert.Equal(t, int64(0), s.BalanceCents)
	assert.NotNil(t, s.Categories)
	assert.Empty(t, s.Categories)
}
