package service

import (
	"sort"

	"github.com/google/uuid"
)

type Card struct {
	ID         uuid.UUID
	Status     string
	Position   int
	MinistryID *uuid.UUID
}

// Move takes card id to column toStatus at toPos (clamped) and renumbers the
// source and destination columns 0..n-1. It returns only cards whose status or
// position changed. ok is false when id is not on the board.
func Move(board []Card, id uuid.UUID, toStatus string, toPos int) (changed []Card, ok bool) {
	return MoveInLane(board, id, toStatus, toPos, nil)
}

// MoveInLane is Move for a board filtered to one ministry: toPos counts only the
// lane's cards, and the card is placed right before the lane card that now holds
// that slot (or right after the lane's last card). Columns keep one order per
// church, so the unfiltered board stays consistent.
func MoveInLane(board []Card, id uuid.UUID, toStatus string, toPos int, lane *uuid.UUID) (changed []Card, ok bool) {
	var moving *Card
	columns := map[string][]Card{}
	for _, c := range board {
		if c.ID == id {
			cc := c
			moving = &cc
			continue
		}
		columns[c.Status] = append(columns[c.Status], c)
	}
	if moving == nil {
		return nil, false
	}
	for k := range columns {
		col := columns[k]
		sort.SliceStable(col, func(i, j int) bool { return col[i].Position < col[j].Position })
	}

	dest := columns[toStatus]
	if toPos < 0 {
		toPos = 0
	}
	if lane != nil {
		toPos = columnIndex(dest, *lane, toPos)
	}
	if toPos > len(dest) {
		toPos = len(dest)
	}
	moved := Card{ID: moving.ID, Status: toStatus, MinistryID: moving.MinistryID}
	dest = append(dest[:toPos:toPos], append([]Card{moved}, dest[toPos:]...)...)
	columns[toStatus] = dest

	before := map[uuid.UUID]Card{}
	for _, c := range board {
		before[c.ID] = c
	}
	touched := []string{toStatus}
	if moving.Status != toStatus {
		touched = append(touched, moving.Status)
	}
	for _, st := range touched {
		for i, c := range columns[st] {
			c.Position = i
			if old := before[c.ID]; old.Status != c.Status || old.Position != c.Position {
				changed = append(changed, c)
			}
		}
	}
	return changed, true
}

// columnIndex maps slot lanePos of the lane's cards to an index in col.
func columnIndex(col []Card, lane uuid.UUID, lanePos int) int {
	seen, afterLast := 0, len(col)
	for i, c := range col {
		if c.MinistryID == nil || *c.MinistryID != lane {
			continue
		}
		if seen == lanePos {
			return i
		}
		seen++
		afterLast = i + 1
	}
	return afterLast
}
