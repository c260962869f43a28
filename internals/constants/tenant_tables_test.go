package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(tables []TenantTable) map[string]int {
	pos := make(map[string]int, len(tables))
	for i, t := range tables {
		pos[t.Name] = i
	}
	return pos
}

func TestTenantDeletionOrderRespectsDependencies(t *testing.T) {
	order := TenantDeletionOrder()
	require.Len(t, order, len(TenantTables))

	pos := positions(order)
	for _, tbl := range TenantTables {
		for _, dep := range tbl.DependsOn {
			assert.Less(t, pos[tbl.Name], pos[dep], "%s must be deleted before %s", tbl.Name, dep)
		}
	}
}

func TestTenantDeletionOrderKnownPairs(t *testing.T) {
	pos := positions(TenantDeletionOrder())

	assert.Less(t, pos["quiz_questions"], pos["passos"])
	assert.Less(t, pos["passos"], pos["etapas"])
	assert.Less(t, pos["etapas"], pos["trilhas"])
	assert.Less(t, pos["schedule_assignments"], pos["schedules"])
	assert.Less(t, pos["schedules"], pos["ministries"])
	assert.Less(t, pos["ministries"], pos["members"])
	assert.Less(t, pos["kid_checkins"], pos["kids"])
	assert.Less(t, pos["payment_gateway_events"], pos["subscription_payments"])
}

func TestEveryTenantTableHasChurchColumn(t *testing.T) {
	for _, tbl := range TenantTables {
		assert.NotEmpty(t, tbl.ChurchColumn, tbl.Name)
	}
}

func TestDeletionOrderStableForIndependentTables(t *testing.T) {
	order, err := DeletionOrder([]TenantTable{
		{Name: "a"},
		{Name: "b"},
		{Name: "c", DependsOn: []string{"a"}},
	})
	require.NoError(t, err)

	names := make([]string, 0, len(order))
	for _, t := range order {
		names = append(names, t.Name)
	}
	assert.Equal(t, []string{"b", "c", "a"}, names)
}

func TestDeletionOrderErrors(t *testing.T) {
	_, err := DeletionOrder([]TenantTable{{Name: "a", DependsOn: []string{"missing"}}})
	assert.Error(t, err)

	_, err = DeletionOrder([]TenantTable{
		{Name: "a", DependsOn: []string{"b"}},
		{Name: "b", DependsOn: []string{"a"}},
	})
	assert.Error(t, err)

	_, err = DeletionOrder([]TenantTable{{Name: "a"}, {Name: "a"}})
	assert.Error(t, err)
}
