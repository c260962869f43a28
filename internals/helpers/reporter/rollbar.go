package reporter

import (
	"log"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"
	rollbarErrors "github.com/rollbar/rollbar-go/errors"
)

var enabled atomic.Bool

// Init configures rollbar. With an empty token reporting is a no-op and
// errors only go to the standard log.
func Init(token, env, codeVersion string) {
	if token == "" {
		rollbar.SetEnabled(false)
		log.Println("[INFO] Rollbar disabled (ROLLBAR_TOKEN not set)")
		return
	}
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetCodeVersion(codeVersion)
	rollbar.SetServerRoot("ecclesia_backend")
	rollbar.SetStackTracer(rollbarErrors.StackTracer)
	rollbar.SetEnabled(true)
	enabled.Store(true)
	log.Printf("[INFO] Rollbar enabled (env=%s)", env)
}

func Enabled() bool { return enabled.Load() }

// Error logs err with its stack and reports it.
func Error(err error, extras map[string]interface{}) {
	if err == nil {
		return
	}
	log.Printf("[ERROR] %+v", err)
	if enabled.Load() {
		rollbar.Error(err, extras)
	}
}

// Errorf wraps err with a message (keeping the stack) before reporting.
func Errorf(err error, format string, args ...interface{}) {
	if err == nil {
		return
	}
	Error(errors.Wrapf(err, format, args...), nil)
}

func Critical(err error, extras map[string]interface{}) {
	if err == nil {
		return
	}
	log.Printf("[CRITICAL] %+v", err)
	if enabled.Load() {
		rollbar.Critical(err, extras)
	}
}

func Warn(msg string, extras map[string]interface{}) {
	log.Printf("[WARN] %s %v", msg, extras)
	if enabled.Load() {
		rollbar.Warning(msg, extras)
	}
}

// Close flushes queued items.
func Close() {
	if enabled.Load() {
		rollbar.Close()
	}
}
