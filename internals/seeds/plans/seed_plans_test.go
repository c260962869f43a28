package plans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/billing/plans/model"
)

func TestLoadPlansDefaults(t *testing.T) {
	rows, err := LoadPlans("")
	require.NoError(t, err)
	assert.Len(t, rows, len(model.DefaultPlans))

	rows[0].PlanName = "changed"
	assert.NotEqual(t, "changed", model.DefaultPlans[0].PlanName)
}

func TestLoadPlansFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")
	body := `[
		{"code": " Starter ", "name": "Starter", "price_cents": 1990, "max_members": 50},
		{"code": "", "name": "no code"},
		{"code": "legacy", "name": "Legacy", "is_active": false}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	rows, err := LoadPlans(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "starter", rows[0].PlanCode)
	assert.Equal(t, int64(1990), rows[0].PlanPriceCents)
	assert.True(t, rows[0].PlanIsActive)
	assert.False(t, rows[1].PlanIsActive)
}

func TestLoadPlansMissingFile(t *testing.T) {
	_, err := LoadPlans(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
