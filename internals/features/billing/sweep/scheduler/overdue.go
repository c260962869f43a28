package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/billing/sweep/service"
)

// RegisterOverdueSweep runs once a day at 02:10.
func RegisterOverdueSweep(c *cron.Cron, db *gorm.DB, graceDays int) error {
	_, err := c.AddFunc("10 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		res, err := service.RunOverdueSweep(ctx, db, time.Now().UTC(), graceDays)
		if err != nil {
			log.Printf("[CRON] overdue sweep failed: %v", err)
			return
		}
		log.Printf("[CRON] overdue sweep: %d overdue, %d suspended", res.Overdue, res.Suspended)
	})
	return err
}
