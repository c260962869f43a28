package helper

import "github.com/robfig/cron/v3"

// NewCron returns a scheduler whose jobs never overlap with themselves.
func NewCron() *cron.Cron {
	return cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
}
