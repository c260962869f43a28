package service

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/whatsapp/gateway"
	"ecclesia_backend/internals/features/whatsapp/model"
)

const DefaultBatchSize = 50

// NormalizePhone keeps digits only; numbers shorter than 8 digits are rejected ("").
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() < 8 || b.Len() > 20 {
		return ""
	}
	return b.String()
}

// SessionName is the gateway session id of a church.
func SessionName(churchID uuid.UUID) string {
	return "church-" + churchID.String()
}

// NewMessage builds a pending row; metadata is optional.
func NewMessage(churchID uuid.UUID, to, body string, meta map[string]any) (*model.WhatsappMessageModel, error) {
	phone := NormalizePhone(to)
	if phone == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid phone number")
	}
	if strings.TrimSpace(body) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Message body is empty")
	}
	row := &model.WhatsappMessageModel{
		WaMessageChurchID: churchID,
		WaMessageTo:       phone,
		WaMessageBody:     body,
		WaMessageStatus:   model.MessagePending,
	}
	if len(meta) > 0 {
		raw, err := sonic.Marshal(meta)
		if err != nil {
			return nil, err
		}
		row.WaMessageMetadata = datatypes.JSON(raw)
	}
	return row, nil
}

// EnqueueMany inserts rows for every phone that normalizes; returns how many were queued.
func EnqueueMany(ctx context.Context, db *gorm.DB, churchID uuid.UUID, phones []string, body string, meta map[string]any) (int, error) {
	rows := make([]*model.WhatsappMessageModel, 0, len(phones))
	seen := map[string]bool{}
	for _, p := range phones {
		row, err := NewMessage(churchID, p, body, meta)
		if err != nil || seen[row.WaMessageTo] {
			continue
		}
		seen[row.WaMessageTo] = true
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := db.WithContext(ctx).CreateInBatches(rows, 200).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

/* ===================== Delivery ===================== */

// StaleClaimAfter is how long a claimed row may stay in "sending" before it is
// given up as failed. Such rows are never re-sent.
const StaleClaimAfter = 10 * time.Minute

type Outgoing struct {
	ID      uuid.UUID
	Session string
	To      string
	Body    string
}

// Queue is the outbound message store the dispatcher drains.
type Queue interface {
	// Claim moves up to limit pending rows of connected churches to "sending" and
	// returns them. The claim is committed before anything is sent.
	Claim(ctx context.Context, limit int, now time.Time) ([]Outgoing, error)
	MarkSent(ctx context.Context, id uuid.UUID, gatewayID string, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	// FailStale marks rows claimed before cutoff as failed.
	FailStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type GormQueue struct {
	DB *gorm.DB
}

type claimedRow struct {
	WaMessageID   uuid.UUID
	WaMessageTo   string
	WaMessageBody string
	WaSessionName string
}

func (q GormQueue) Claim(ctx context.Context, limit int, now time.Time) ([]Outgoing, error) {
	var rows []claimedRow
	if err := q.DB.WithContext(ctx).Raw(`
		WITH picked AS (
			SELECT m.wa_message_id
			FROM whatsapp_messages m
			JOIN whatsapp_sessions s
			  ON s.wa_session_church_id = m.wa_message_church_id
			 AND s.wa_session_status = ?
			WHERE m.wa_message_status = ?
			ORDER BY m.wa_message_created_at ASC
			LIMIT ?
			FOR UPDATE OF m SKIP LOCKED
		)
		UPDATE whatsapp_messages m
		   SET wa_message_status = ?, wa_message_claimed_at = ?
		  FROM picked p, whatsapp_sessions s
		 WHERE m.wa_message_id = p.wa_message_id
		   AND s.wa_session_church_id = m.wa_message_church_id
		RETURNING m.wa_message_id, m.wa_message_to, m.wa_message_body, s.wa_session_name`,
		model.SessionConnected, model.MessagePending, limit, model.MessageSending, now,
	).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Outgoing, len(rows))
	for i, r := range rows {
		out[i] = Outgoing{ID: r.WaMessageID, Session: r.WaSessionName, To: r.WaMessageTo, Body: r.WaMessageBody}
	}
	return out, nil
}

func (q GormQueue) MarkSent(ctx context.Context, id uuid.UUID, gatewayID string, at time.Time) error {
	updates := map[string]any{
		"wa_message_status":  model.MessageSent,
		"wa_message_sent_at": at,
	}
	if gatewayID != "" {
		updates["wa_message_gateway_id"] = gatewayID
	}
	return q.DB.WithContext(ctx).Model(&model.WhatsappMessageModel{}).
		Where("wa_message_id = ? AND wa_message_status = ?", id, model.MessageSending).
		Updates(updates).Error
}

func (q GormQueue) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return q.DB.WithContext(ctx).Model(&model.WhatsappMessageModel{}).
		Where("wa_message_id = ? AND wa_message_status = ?", id, model.MessageSending).
		Updates(map[string]any{"wa_message_status": model.MessageFailed, "wa_message_error": reason}).Error
}

func (q GormQueue) FailStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := q.DB.WithContext(ctx).Model(&model.WhatsappMessageModel{}).
		Where("wa_message_status = ? AND wa_message_claimed_at < ?", model.MessageSending, cutoff).
		Updates(map[string]any{"wa_message_status": model.MessageFailed, "wa_message_error": "delivery interrupted"})
	return res.RowsAffected, res.Error
}

type Dispatcher struct {
	Queue     Queue
	Sender    gateway.Sender
	BatchSize int
	Now       func() time.Time
}

func NewDispatcher(db *gorm.DB, sender gateway.Sender) *Dispatcher {
	return &Dispatcher{Queue: GormQueue{DB: db}, Sender: sender, BatchSize: DefaultBatchSize}
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

// RunOnce claims a batch, sends each message once and records the outcome row by
// row. A failed status write never puts a delivered message back in the queue.
func (d *Dispatcher) RunOnce(ctx context.Context) (sent, failed int, err error) {
	size := d.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	if n, err := d.Queue.FailStale(ctx, d.now().Add(-StaleClaimAfter)); err != nil {
		log.Printf("[WARN] whatsapp stale claim cleanup failed: %v", err)
	} else if n > 0 {
		log.Printf("[WARN] whatsapp: %d interrupted messages marked failed", n)
	}

	batch, err := d.Queue.Claim(ctx, size, d.now())
	if err != nil {
		return 0, 0, err
	}

	// outcomes are written even when the run deadline has passed
	markCtx := context.WithoutCancel(ctx)
	var markErr error
	for i, m := range batch {
		if ctx.Err() != nil {
			// release what was claimed but never attempted
			for _, rest := range batch[i:] {
				if err := d.Queue.MarkFailed(markCtx, rest.ID, "dispatch deadline exceeded"); err != nil && markErr == nil {
					markErr = err
				}
				failed++
			}
			break
		}
		gid, sendErr := d.Sender.SendText(ctx, m.Session, m.To, m.Body)
		var err error
		if sendErr != nil {
			err = d.Queue.MarkFailed(markCtx, m.ID, sendErr.Error())
			failed++
		} else {
			err = d.Queue.MarkSent(markCtx, m.ID, gid, d.now())
			sent++
		}
		if err != nil {
			log.Printf("[ERROR] whatsapp message %s: status write failed: %v", m.ID, err)
			if markErr == nil {
				markErr = err
			}
		}
	}
	return sent, failed, markErr
}
