package realtime

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const Channel = "ecclesia_changes"

// PGPublisher sends events through pg_notify so every API instance listening
// on Channel receives them.
type PGPublisher struct {
	DB *gorm.DB
}

func (p PGPublisher) Publish(ctx context.Context, ev Event) {
	payload, err := sonic.MarshalString(ev)
	if err != nil {
		log.Printf("[ERROR] realtime marshal: %v", err)
		return
	}
	if err := p.DB.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", Channel, payload).Error; err != nil {
		log.Printf("[ERROR] pg_notify %s: %v", ev.Table, err)
	}
}

// DecodeNotification parses a pg_notify payload.
func DecodeNotification(payload string) (Event, error) {
	var ev Event
	err := sonic.UnmarshalString(payload, &ev)
	return ev, err
}

// StartListener opens a LISTEN connection and dispatches notifications into
// broker until ctx is done. It returns once the first LISTEN succeeded.
func StartListener(ctx context.Context, dsn string, broker *Broker) error {
	report := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("[WARN] realtime listener event=%d: %v", ev, err)
		}
	}
	l := pq.NewListener(dsn, 2*time.Second, time.Minute, report)
	if err := l.Listen(Channel); err != nil {
		_ = l.Close()
		return err
	}
	log.Printf("[INFO] realtime listening on %s", Channel)

	go func() {
		defer l.Close()
		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-l.Notify:
				// nil after a reconnect; events in the gap are lost and
				// clients recover on their next refetch
				if n == nil {
					continue
				}
				ev, err := DecodeNotification(n.Extra)
				if err != nil {
					log.Printf("[WARN] realtime bad payload: %v", err)
					continue
				}
				broker.Dispatch(ev)
			case <-ping.C:
				if err := l.Ping(); err != nil {
					log.Printf("[WARN] realtime listener ping: %v", err)
				}
			}
		}
	}()
	return nil
}
