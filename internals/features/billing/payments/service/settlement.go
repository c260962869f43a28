package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/billing/payments/model"
	churchService "ecclesia_backend/internals/features/churches/churches/service"
	"ecclesia_backend/internals/helpers/realtime"
)

// Delivery is one webhook call after authentication and parsing.
type Delivery struct {
	Provider  string
	EventKey  string
	EventType string
	OrderID   string
	Status    string // mapped payment status; "" = ignore
	Headers   []byte
	Payload   []byte
}

// Outcome values returned by Processor.Process.
const (
	OutcomeProcessed    = model.EventProcessed
	OutcomeIgnored      = model.EventIgnored
	OutcomeUnknownOrder = model.EventUnknownOrder
	OutcomeDuplicate    = "duplicate"
)

type Processor interface {
	Process(ctx context.Context, d Delivery) (string, error)
}

type GormProcessor struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewProcessor(db *gorm.DB) *GormProcessor {
	return &GormProcessor{DB: db, Now: time.Now}
}

func (p *GormProcessor) Process(ctx context.Context, d Delivery) (string, error) {
	now := p.Now().UTC()
	var (
		outcome string
		pay     *model.SubscriptionPaymentModel
	)
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.SubscriptionPaymentModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "subscription_payment_order_id = ?", d.OrderID).Error
		switch {
		case err == nil:
			pay = &row
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		ev := model.GatewayEventModel{
			GatewayEventProvider: d.Provider,
			GatewayEventKey:      d.EventKey,
			GatewayEventType:     d.EventType,
			GatewayEventOrderID:  d.OrderID,
			GatewayEventHeaders:  jsonOrNil(d.Headers),
			GatewayEventPayload:  jsonOrNil(d.Payload),
		}
		switch {
		case pay == nil:
			ev.GatewayEventStatus = model.EventUnknownOrder
		case d.Status == "":
			ev.GatewayEventStatus = model.EventIgnored
		default:
			ev.GatewayEventStatus = model.EventProcessed
		}
		if pay != nil {
			ev.GatewayEventChurchID = &pay.SubscriptionPaymentChurchID
			ev.GatewayEventPaymentID = &pay.SubscriptionPaymentID
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "gateway_event_provider"}, {Name: "gateway_event_key"}},
			DoNothing: true,
		}).Create(&ev)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			outcome = OutcomeDuplicate
			return nil
		}
		outcome = ev.GatewayEventStatus
		if outcome != model.EventProcessed {
			return nil
		}
		return Settle(ctx, tx, pay, d.Status, now)
	})
	if err != nil {
		return "", err
	}
	if outcome == OutcomeProcessed && pay != nil {
		realtime.Emit(ctx, pay.SubscriptionPaymentChurchID, "subscription_payments", constants.ActionUpdate, pay.SubscriptionPaymentID)
	}
	return outcome, nil
}

// Settle moves a payment to status and applies its effect on the church.
func Settle(ctx context.Context, tx *gorm.DB, pay *model.SubscriptionPaymentModel, status string, now time.Time) error {
	if !CanTransition(pay.SubscriptionPaymentStatus, status) {
		return nil
	}
	updates := map[string]any{"subscription_payment_status": status}
	if status == model.StatusPaid {
		updates["subscription_payment_paid_at"] = now
	}
	if err := tx.Model(&model.SubscriptionPaymentModel{}).
		Where("subscription_payment_id = ?", pay.SubscriptionPaymentID).
		Updates(updates).Error; err != nil {
		return err
	}
	pay.SubscriptionPaymentStatus = status

	churchStatus, ok := ChurchStatusFor(status)
	if !ok {
		return nil
	}
	church, err := churchService.FindByID(ctx, tx, pay.SubscriptionPaymentChurchID)
	if err != nil {
		return err
	}
	var next *time.Time
	if status == model.StatusPaid {
		n := NextPaymentDate(now, church.ChurchNextPaymentDate)
		next = &n
	}
	if err := churchService.SetStatus(ctx, tx, church.ChurchID, churchStatus, next); err != nil {
		return err
	}
	log.Printf("[INFO] billing: church %s -> %s (order=%s)", church.ChurchID, churchStatus, pay.SubscriptionPaymentOrderID)
	return nil
}

func jsonOrNil(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
