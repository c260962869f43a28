package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ecclesia_backend/internals/features/whatsapp/service"
)

// RegisterDispatcher polls the outbound queue on spec (e.g. "@every 15s").
func RegisterDispatcher(c *cron.Cron, d *service.Dispatcher, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		sent, failed, err := d.RunOnce(ctx)
		if err != nil {
			log.Printf("[CRON] whatsapp dispatch failed: %v", err)
			return
		}
		if sent+failed > 0 {
			log.Printf("[CRON] whatsapp dispatch: %d sent, %d failed", sent, failed)
		}
	})
	return err
}
