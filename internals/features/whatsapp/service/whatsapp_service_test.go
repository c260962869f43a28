package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/whatsapp/model"
	"ecclesia_backend/internals/helpers/dbtest"
)

type fakeSender struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeSender) SendText(_ context.Context, session, to, text string) (string, error) {
	f.calls = append(f.calls, session+"|"+to)
	if f.fail[to] {
		return "", errors.New("not on whatsapp")
	}
	return "id-" + to, nil
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511999990000", NormalizePhone("+55 (11) 99999-0000"))
	assert.Equal(t, "", NormalizePhone("1234"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestNewMessage(t *testing.T) {
	church := uuid.New()
	m, err := NewMessage(church, "+55 11 99999 0000", "hi", map[string]any{"notification_id": "n1"})
	require.NoError(t, err)
	assert.Equal(t, model.MessagePending, m.WaMessageStatus)
	assert.Equal(t, "5511999990000", m.WaMessageTo)
	assert.JSONEq(t, `{"notification_id":"n1"}`, string(m.WaMessageMetadata))

	_, err = NewMessage(church, "12", "hi", nil)
	assert.Error(t, err)
	_, err = NewMessage(church, "5511999990000", "  ", nil)
	assert.Error(t, err)
}

type mark struct {
	ID     uuid.UUID
	Status string
	Detail string
}

// fakeQueue records every status write in order.
type fakeQueue struct {
	pending   []Outgoing
	marks     []mark
	failSent  map[uuid.UUID]bool
	staleCuts []time.Time
}

func (q *fakeQueue) Claim(_ context.Context, limit int, _ time.Time) ([]Outgoing, error) {
	n := min(limit, len(q.pending))
	out := q.pending[:n]
	q.pending = q.pending[n:]
	return out, nil
}

func (q *fakeQueue) MarkSent(_ context.Context, id uuid.UUID, gatewayID string, _ time.Time) error {
	if q.failSent[id] {
		return errors.New("connection reset")
	}
	q.marks = append(q.marks, mark{id, model.MessageSent, gatewayID})
	return nil
}

func (q *fakeQueue) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	q.marks = append(q.marks, mark{id, model.MessageFailed, reason})
	return nil
}

func (q *fakeQueue) FailStale(_ context.Context, cutoff time.Time) (int64, error) {
	q.staleCuts = append(q.staleCuts, cutoff)
	return 0, nil
}

func fixedNow() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

func TestRunOnceMarksEachOutcome(t *testing.T) {
	batch := []Outgoing{
		{ID: uuid.New(), Session: "a", To: "111", Body: "x"},
		{ID: uuid.New(), Session: "a", To: "222", Body: "x"},
		{ID: uuid.New(), Session: "b", To: "333", Body: "x"},
	}
	q := &fakeQueue{pending: batch}
	s := &fakeSender{fail: map[string]bool{"222": true}}
	d := &Dispatcher{Queue: q, Sender: s, BatchSize: 10, Now: fixedNow}

	sent, failed, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"a|111", "a|222", "b|333"}, s.calls)
	assert.Equal(t, []mark{
		{batch[0].ID, model.MessageSent, "id-111"},
		{batch[1].ID, model.MessageFailed, "not on whatsapp"},
		{batch[2].ID, model.MessageSent, "id-333"},
	}, q.marks)
	assert.Equal(t, []time.Time{fixedNow().Add(-StaleClaimAfter)}, q.staleCuts)
}

func TestRunOnceMarkErrorDoesNotResend(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	q := &fakeQueue{
		pending:  []Outgoing{{ID: first, To: "111"}, {ID: second, To: "222"}},
		failSent: map[uuid.UUID]bool{first: true},
	}
	s := &fakeSender{}
	d := &Dispatcher{Queue: q, Sender: s, Now: fixedNow}

	sent, _, err := d.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []mark{{second, model.MessageSent, "id-222"}}, q.marks)

	// first stays claimed, so the next run has nothing to send
	sent, failed, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent+failed)
	assert.Len(t, s.calls, 2)
}

func TestRunOnceCanceledReleasesClaim(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a, b := uuid.New(), uuid.New()
	q := &fakeQueue{pending: []Outgoing{{ID: a, To: "1"}, {ID: b, To: "2"}}}
	s := &fakeSender{}
	d := &Dispatcher{Queue: q, Sender: s, Now: fixedNow}

	sent, failed, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Equal(t, 2, failed)
	assert.Empty(t, s.calls)
	assert.Equal(t, []mark{
		{a, model.MessageFailed, "dispatch deadline exceeded"},
		{b, model.MessageFailed, "dispatch deadline exceeded"},
	}, q.marks)
}

func TestGormQueueMarks(t *testing.T) {
	id := uuid.New()
	at := fixedNow()

	t.Run("sent", func(t *testing.T) {
		db, mock := dbtest.New(t)
		mock.ExpectExec(`UPDATE "whatsapp_messages" SET "wa_message_gateway_id"=\$1,"wa_message_sent_at"=\$2,"wa_message_status"=\$3 WHERE wa_message_id = \$4 AND wa_message_status = \$5`).
			WithArgs("gw-1", at, model.MessageSent, id, model.MessageSending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, GormQueue{DB: db}.MarkSent(context.Background(), id, "gw-1", at))
	})

	t.Run("failed", func(t *testing.T) {
		db, mock := dbtest.New(t)
		mock.ExpectExec(`UPDATE "whatsapp_messages" SET "wa_message_error"=\$1,"wa_message_status"=\$2 WHERE wa_message_id = \$3 AND wa_message_status = \$4`).
			WithArgs("not on whatsapp", model.MessageFailed, id, model.MessageSending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, GormQueue{DB: db}.MarkFailed(context.Background(), id, "not on whatsapp"))
	})

	t.Run("claim is one statement", func(t *testing.T) {
		db, mock := dbtest.New(t)
		mock.ExpectQuery(`WITH picked AS \((?s).*FOR UPDATE OF m SKIP LOCKED(?s).*RETURNING`).
			WithArgs(model.SessionConnected, model.MessagePending, 5, model.MessageSending, at).
			WillReturnRows(sqlmock.NewRows([]string{"wa_message_id", "wa_message_to", "wa_message_body", "wa_session_name"}).
				AddRow(id.String(), "5511999990000", "hi", "church-x"))
		out, err := GormQueue{DB: db}.Claim(context.Background(), 5, at)
		require.NoError(t, err)
		assert.Equal(t, []Outgoing{{ID: id, Session: "church-x", To: "5511999990000", Body: "hi"}}, out)
	})
}

func TestSessionName(t *testing.T) {
	id := uuid.MustParse("6f1c2f7e-9d53-4f39-9a7c-5b2f0e0f1a11")
	assert.Equal(t, "church-6f1c2f7e-9d53-4f39-9a7c-5b2f0e0f1a11", SessionName(id))
}
