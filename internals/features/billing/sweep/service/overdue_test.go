package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ecclesia_backend/internals/constants"
)

func TestNextStatus(t *testing.T) {
	now := time.Date(2026, 5, 20, 3, 0, 0, 0, time.UTC)
	day := func(d int) *time.Time {
		v := now.AddDate(0, 0, d)
		return &v
	}

	cases := []struct {
		name   string
		status string
		next   *time.Time
		grace  int
		want   string
		change bool
	}{
		{"no due date", constants.ChurchStatusActive, nil, 7, "", false},
		{"not yet due", constants.ChurchStatusActive, day(1), 7, "", false},
		{"active past due", constants.ChurchStatusActive, day(-1), 7, constants.ChurchStatusOverdue, true},
		{"trial ended", constants.ChurchStatusTrial, day(-1), 7, constants.ChurchStatusOverdue, true},
		{"overdue within grace", constants.ChurchStatusOverdue, day(-3), 7, "", false},
		{"overdue beyond grace", constants.ChurchStatusOverdue, day(-8), 7, constants.ChurchStatusSuspended, true},
		{"zero grace", constants.ChurchStatusOverdue, day(-1), 0, constants.ChurchStatusSuspended, true},
		{"suspended stays", constants.ChurchStatusSuspended, day(-30), 7, "", false},
		{"canceled stays", constants.ChurchStatusCanceled, day(-30), 7, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextStatus(tc.status, tc.next, now, tc.grace)
			assert.Equal(t, tc.change, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
