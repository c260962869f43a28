package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(status string, ids ...uuid.UUID) []Card {
	out := make([]Card, 0, len(ids))
	for i, id := range ids {
		out = append(out, Card{ID: id, Status: status, Position: i})
	}
	return out
}

func apply(b []Card, changed []Card) map[string][]uuid.UUID {
	idx := map[uuid.UUID]Card{}
	for _, c := range b {
		idx[c.ID] = c
	}
	for _, c := range changed {
		idx[c.ID] = c
	}
	cols := map[string][]uuid.UUID{}
	for _, st := range []string{"todo", "doing", "done"} {
		n := 0
		for _, c := range idx {
			if c.Status == st {
				n++
			}
		}
		cols[st] = make([]uuid.UUID, n)
	}
	for _, c := range idx {
		cols[c.Status][c.Position] = c.ID
	}
	return cols
}

func TestMoveAcrossColumns(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	all := append(board("todo", a, b, c), board("doing", d)...)

	changed, ok := Move(all, b, "doing", 0)
	require.True(t, ok)

	cols := apply(all, changed)
	assert.Equal(t, []uuid.UUID{a, c}, cols["todo"])
	assert.Equal(t, []uuid.UUID{b, d}, cols["doing"])
	// a keeps its slot, so it is not rewritten
	for _, ch := range changed {
		assert.NotEqual(t, a, ch.ID)
	}
}

func TestMoveWithinColumn(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	all := board("todo", a, b, c)

	changed, ok := Move(all, a, "todo", 2)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{b, c, a}, apply(all, changed)["todo"])
	assert.Len(t, changed, 3)
}

func TestMoveClampsPosition(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	all := append(board("todo", a), board("done", b)...)

	changed, ok := Move(all, a, "done", 99)
	require.True(t, ok)
	cols := apply(all, changed)
	assert.Equal(t, []uuid.UUID{b, a}, cols["done"])
	assert.Empty(t, cols["todo"])
}

func TestMoveUnknownCard(t *testing.T) {
	_, ok := Move(board("todo", uuid.New()), uuid.New(), "done", 0)
	assert.False(t, ok)
}

func TestMoveInLane(t *testing.T) {
	choir, youth := uuid.New(), uuid.New()
	a0, b1, a2 := uuid.New(), uuid.New(), uuid.New()
	all := []Card{
		{ID: a0, Status: "todo", Position: 0, MinistryID: &choir},
		{ID: b1, Status: "todo", Position: 1, MinistryID: &youth},
		{ID: a2, Status: "todo", Position: 2, MinistryID: &choir},
	}

	// choir board shows [a0 a2]; dropping a0 at slot 1 puts it after a2
	changed, ok := MoveInLane(all, a0, "todo", 1, &choir)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{b1, a2, a0}, apply(all, changed)["todo"])

	// the same index on the whole-church board lands before a2
	changed, ok = Move(all, a0, "todo", 1)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{b1, a0, a2}, apply(all, changed)["todo"])
}

func TestMoveInLaneBeforeLaneCard(t *testing.T) {
	choir, youth := uuid.New(), uuid.New()
	b, a, m := uuid.New(), uuid.New(), uuid.New()
	all := []Card{
		{ID: b, Status: "todo", Position: 0, MinistryID: &youth},
		{ID: a, Status: "todo", Position: 1, MinistryID: &choir},
		{ID: m, Status: "doing", Position: 0, MinistryID: &choir},
	}

	changed, ok := MoveInLane(all, m, "todo", 0, &choir)
	require.True(t, ok)
	cols := apply(all, changed)
	assert.Equal(t, []uuid.UUID{b, m, a}, cols["todo"])
	assert.Empty(t, cols["doing"])
	for _, ch := range changed {
		assert.NotEqual(t, b, ch.ID)
		if ch.ID == m {
			assert.Equal(t, &choir, ch.MinistryID)
		}
	}
}

func TestMoveInLaneWithoutLaneCards(t *testing.T) {
	choir, youth := uuid.New(), uuid.New()
	b, m := uuid.New(), uuid.New()
	all := []Card{
		{ID: b, Status: "done", Position: 0, MinistryID: &youth},
		{ID: m, Status: "todo", Position: 0, MinistryID: &choir},
	}

	changed, ok := MoveInLane(all, m, "done", 0, &choir)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{b, m}, apply(all, changed)["done"])
}
