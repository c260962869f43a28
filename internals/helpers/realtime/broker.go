package realtime

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event tells subscribers of a church that a row changed; clients refetch.
type Event struct {
	ChurchID uuid.UUID  `json:"church_id"`
	Table    string     `json:"table"`
	Action   string     `json:"action"`
	RecordID *uuid.UUID `json:"record_id,omitempty"`
	At       time.Time  `json:"at"`
}

func NewEvent(churchID uuid.UUID, table, action string, recordID uuid.UUID) Event {
	ev := Event{ChurchID: churchID, Table: table, Action: action, At: time.Now().UTC()}
	if recordID != uuid.Nil {
		ev.RecordID = &recordID
	}
	return ev
}

// Publisher announces a change. Implementations must not block the caller
// for long; failures are logged, never returned to the request.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

/* ===== In-process broker ===== */

type Broker struct {
	mu      sync.RWMutex
	subs    map[uuid.UUID]map[*Subscription]struct{}
	buffer  int
	dropped atomic.Int64
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{subs: make(map[uuid.UUID]map[*Subscription]struct{}), buffer: buffer}
}

type Subscription struct {
	C <-chan Event

	ch       chan Event
	churchID uuid.UUID
	tables   map[string]bool
	broker   *Broker
	once     sync.Once
}

// Subscribe registers a listener for churchID. An empty tables list means all.
func (b *Broker) Subscribe(churchID uuid.UUID, tables []string) *Subscription {
	ch := make(chan Event, b.buffer)
	sub := &Subscription{C: ch, ch: ch, churchID: churchID, broker: b}
	for _, t := range tables {
		if t = strings.TrimSpace(t); t != "" {
			if sub.tables == nil {
				sub.tables = make(map[string]bool)
			}
			sub.tables[t] = true
		}
	}

	b.mu.Lock()
	if b.subs[churchID] == nil {
		b.subs[churchID] = make(map[*Subscription]struct{})
	}
	b.subs[churchID][sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Close unregisters the subscription and closes C. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		b := s.broker
		b.mu.Lock()
		if set := b.subs[s.churchID]; set != nil {
			delete(set, s)
			if len(set) == 0 {
				delete(b.subs, s.churchID)
			}
		}
		b.mu.Unlock()
		close(s.ch)
	})
}

func (s *Subscription) wants(table string) bool {
	return len(s.tables) == 0 || s.tables[table]
}

// Dispatch fans ev out to local subscribers. A full subscriber buffer drops
// the event for that subscriber only.
func (b *Broker) Dispatch(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[ev.ChurchID] {
		if !sub.wants(ev.Table) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// Publish satisfies Publisher for single-instance setups.
func (b *Broker) Publish(_ context.Context, ev Event) {
	b.Dispatch(ev)
}

func (b *Broker) Dropped() int64 { return b.dropped.Load() }

func (b *Broker) SubscriberCount(churchID uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[churchID])
}

/* ===== Process-wide wiring ===== */

var (
	pubMu     sync.RWMutex
	publisher Publisher
)

// SetPublisher replaces the publisher used by Emit (the postgres bridge in production).
// Until it is called Emit does nothing.
func SetPublisher(p Publisher) {
	pubMu.Lock()
	publisher = p
	pubMu.Unlock()
}

// Emit publishes a change through the configured publisher.
func Emit(ctx context.Context, churchID uuid.UUID, table, action string, recordID uuid.UUID) {
	pubMu.RLock()
	p := publisher
	pubMu.RUnlock()
	if p == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] realtime publish panic: %v", r)
		}
	}()
	p.Publish(ctx, NewEvent(churchID, table, action, recordID))
}
