package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "ecclesia_backend/internals/features/users/auth/repository"
)

// RegisterTokenCleanup purges revoked access tokens past expiry and dead refresh tokens every hour.
func RegisterTokenCleanup(c *cron.Cron, db *gorm.DB) error {
	_, err := c.AddFunc("@hourly", func() {
		if n, err := authRepo.CleanupRevokedAccessTokens(db); err != nil {
			log.Printf("[CRON] revoked_access_tokens cleanup failed: %v", err)
		} else if n > 0 {
			log.Printf("[CRON] %d revoked access tokens removed", n)
		}
		if n, err := authRepo.CleanupExpiredRefreshTokens(db); err != nil {
			log.Printf("[CRON] refresh_tokens cleanup failed: %v", err)
		} else if n > 0 {
			log.Printf("[CRON] %d dead refresh tokens removed", n)
		}
	})
	return err
}
