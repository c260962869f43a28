package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	churchModel "ecclesia_backend/internals/features/churches/churches/model"
	churchService "ecclesia_backend/internals/features/churches/churches/service"
)

// NextStatus is the status a root church should move to, if any.
// A trial or active church past its due date becomes overdue; an overdue
// church past due + graceDays becomes suspended.
func NextStatus(status string, next *time.Time, now time.Time, graceDays int) (string, bool) {
	if next == nil || !now.After(*next) {
		return "", false
	}
	switch status {
	case constants.ChurchStatusTrial, constants.ChurchStatusActive:
		return constants.ChurchStatusOverdue, true
	case constants.ChurchStatusOverdue:
		if graceDays < 0 {
			graceDays = 0
		}
		if now.After(next.AddDate(0, 0, graceDays)) {
			return constants.ChurchStatusSuspended, true
		}
	}
	return "", false
}

type SweepResult struct {
	Overdue   int
	Suspended int
}

// RunOverdueSweep checks root churches only; SetStatus mirrors onto children.
func RunOverdueSweep(ctx context.Context, db *gorm.DB, now time.Time, graceDays int) (SweepResult, error) {
	var res SweepResult
	var rows []churchModel.ChurchModel
	if err := db.WithContext(ctx).
		Select("church_id", "church_status", "church_next_payment_date").
		Where("church_parent_id IS NULL").
		Where("church_status IN ?", []string{constants.ChurchStatusTrial, constants.ChurchStatusActive, constants.ChurchStatusOverdue}).
		Where("church_next_payment_date IS NOT NULL AND church_next_payment_date < ?", now).
		Find(&rows).Error; err != nil {
		return res, err
	}
	for _, ch := range rows {
		st, ok := NextStatus(ch.ChurchStatus, ch.ChurchNextPaymentDate, now, graceDays)
		if !ok {
			continue
		}
		if err := churchService.SetStatus(ctx, db, ch.ChurchID, st, nil); err != nil {
			log.Printf("[CRON] overdue sweep: church %s -> %s: %v", ch.ChurchID, st, err)
			continue
		}
		if st == constants.ChurchStatusSuspended {
			res.Suspended++
		} else {
			res.Overdue++
		}
	}
	return res, nil
}
