package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) (Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		return ev, ok
	case <-time.After(100 * time.Millisecond):
		return Event{}, false
	}
}

func TestBrokerDeliversOnlyToSameChurch(t *testing.T) {
	b := NewBroker(4)
	churchA, churchB := uuid.New(), uuid.New()

	subA := b.Subscribe(churchA, nil)
	subB := b.Subscribe(churchB, nil)
	defer subA.Close()
	defer subB.Close()

	rec := uuid.New()
	b.Publish(context.Background(), NewEvent(churchA, "ministry_demands", "update", rec))

	ev, ok := receive(t, subA)
	require.True(t, ok)
	assert.Equal(t, "ministry_demands", ev.Table)
	require.NotNil(t, ev.RecordID)
	assert.Equal(t, rec, *ev.RecordID)

	_, ok = receive(t, subB)
	assert.False(t, ok)
}

func TestBrokerTableFilter(t *testing.T) {
	b := NewBroker(4)
	church := uuid.New()
	sub := b.Subscribe(church, []string{"kid_checkins", " "})
	defer sub.Close()

	b.Dispatch(NewEvent(church, "ministries", "insert", uuid.Nil))
	b.Dispatch(NewEvent(church, "kid_checkins", "insert", uuid.Nil))

	ev, ok := receive(t, sub)
	require.True(t, ok)
	assert.Equal(t, "kid_checkins", ev.Table)
	assert.Nil(t, ev.RecordID)
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker(2)
	church := uuid.New()
	slow := b.Subscribe(church, nil)
	defer slow.Close()

	for i := 0; i < 5; i++ {
		b.Dispatch(NewEvent(church, "schedules", "insert", uuid.Nil))
	}
	assert.Equal(t, int64(3), b.Dropped())
	assert.Len(t, slow.ch, 2)
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	b := NewBroker(1)
	church := uuid.New()
	sub := b.Subscribe(church, nil)
	assert.Equal(t, 1, b.SubscriberCount(church))

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, b.SubscriberCount(church))

	_, ok := <-sub.C
	assert.False(t, ok)

	// publishing after close must not panic
	assert.NotPanics(t, func() { b.Dispatch(NewEvent(church, "x", "insert", uuid.Nil)) })
}

func TestEmitUsesConfiguredPublisher(t *testing.T) {
	b := NewBroker(2)
	SetPublisher(b)
	defer SetPublisher(nil)

	church := uuid.New()
	sub := b.Subscribe(church, nil)
	defer sub.Close()

	Emit(context.Background(), church, "notifications", "insert", uuid.New())
	_, ok := receive(t, sub)
	assert.True(t, ok)
}

func TestEmitWithoutPublisher(t *testing.T) {
	SetPublisher(nil)
	assert.NotPanics(t, func() {
		Emit(context.Background(), uuid.New(), "events", "insert", uuid.New())
	})
}

func TestDecodeNotification(t *testing.T) {
	ev := NewEvent(uuid.New(), "kid_checkins", "delete", uuid.New())
	raw, err := sonic.MarshalString(ev)
	require.NoError(t, err)

	got, err := DecodeNotification(raw)
	require.NoError(t, err)
	assert.Equal(t, ev.ChurchID, got.ChurchID)
	assert.Equal(t, ev.Action, got.Action)

	_, err = DecodeNotification("{not json")
	assert.Error(t, err)
}
