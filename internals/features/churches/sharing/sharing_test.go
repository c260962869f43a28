package sharing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"ecclesia_backend/internals/helpers/dbtest"
)

func TestCanView(t *testing.T) {
	mother := uuid.New()
	child := uuid.New()
	sibling := uuid.New()

	childView := Visibility{ViewerID: child, ParentID: &mother}
	motherView := Visibility{ViewerID: mother}

	tests := []struct {
		name   string
		vis    Visibility
		owner  uuid.UUID
		shared bool
		want   bool
	}{
		{"own row", childView, child, false, true},
		{"mother shared", childView, mother, true, true},
		{"mother not shared", childView, mother, false, false},
		{"sibling shared", childView, sibling, true, false},
		{"mother own", motherView, mother, false, true},
		{"mother does not see child by default", motherView, child, false, false},
		{"mother with children listing", Visibility{ViewerID: mother, ChildIDs: []uuid.UUID{child}}, child, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.vis, tt.owner, tt.shared))
		})
	}
}

func TestCanEdit(t *testing.T) {
	mother := uuid.New()
	child := uuid.New()
	childView := Visibility{ViewerID: child, ParentID: &mother}

	assert.True(t, CanEdit(childView, child))
	assert.False(t, CanEdit(childView, mother))
	assert.False(t, CanEdit(Visibility{ViewerID: mother, ChildIDs: []uuid.UUID{child}}, child))
}

type eventRow struct {
	EventID uuid.UUID
}

func scopedSelect(t *testing.T, v Visibility) *gorm.Statement {
	var rows []eventRow
	return dbtest.DryRun(t).Table("events").
		Scopes(Scope(v, "event_church_id", "event_share_with_children")).
		Find(&rows).Statement
}

func TestScopeSQL(t *testing.T) {
	mother, child, c1, c2 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	t.Run("root church sees only its rows", func(t *testing.T) {
		stmt := scopedSelect(t, Visibility{ViewerID: mother})
		sql := stmt.SQL.String()
		assert.Contains(t, sql, "event_church_id = $1")
		assert.NotContains(t, sql, " OR ")
		assert.Equal(t, []interface{}{mother}, stmt.Vars)
	})

	t.Run("child adds shared mother rows", func(t *testing.T) {
		stmt := scopedSelect(t, Visibility{ViewerID: child, ParentID: &mother})
		sql := stmt.SQL.String()
		assert.Contains(t, sql, "event_church_id = $1 OR")
		assert.Contains(t, sql, "(event_church_id = $2 AND event_share_with_children = TRUE)")
		assert.Equal(t, []interface{}{child, mother}, stmt.Vars)
	})

	t.Run("mother listing her children", func(t *testing.T) {
		stmt := scopedSelect(t, Visibility{ViewerID: mother, ChildIDs: []uuid.UUID{c1, c2}})
		sql := stmt.SQL.String()
		assert.Contains(t, sql, "event_church_id IN ($2,$3)")
		assert.NotContains(t, sql, "event_share_with_children")
		assert.Equal(t, []interface{}{mother, c1, c2}, stmt.Vars)
	})
}
