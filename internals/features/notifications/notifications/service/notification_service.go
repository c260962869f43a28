package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	memberModel "ecclesia_backend/internals/features/members/members/model"
	"ecclesia_backend/internals/features/notifications/notifications/model"
	waService "ecclesia_backend/internals/features/whatsapp/service"
	"ecclesia_backend/internals/helpers/email"
	"ecclesia_backend/internals/helpers/realtime"
)

// ParseChannels dedupes and validates; an empty list means in-app only.
func ParseChannels(in []string) ([]string, error) {
	if len(in) == 0 {
		return []string{model.ChannelInApp}, nil
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, raw := range in {
		ch := strings.ToLower(strings.TrimSpace(raw))
		valid := false
		for _, known := range model.Channels {
			if ch == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Unknown channel %q", raw))
		}
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	return out, nil
}

func HasChannel(channels []string, ch string) bool {
	for _, c := range channels {
		if c == ch {
			return true
		}
	}
	return false
}

// Recipient is one member reached by a broadcast.
type Recipient struct {
	MemberName   string
	MemberUserID *uuid.UUID
	MemberEmail  *string
	MemberPhone  *string
}

// Fanout splits recipients per channel, skipping members without the needed contact.
type Fanout struct {
	UserIDs []uuid.UUID
	Emails  []*email.EmailMessage
	Phones  []string
}

func BuildFanout(n model.NotificationModel, recipients []Recipient, churchName string) Fanout {
	var f Fanout
	seenUser := map[uuid.UUID]bool{}
	subject := fmt.Sprintf("[%s] %s", churchName, n.NotificationTitle)
	for _, r := range recipients {
		if HasChannel(n.NotificationChannels, model.ChannelInApp) && r.MemberUserID != nil && !seenUser[*r.MemberUserID] {
			seenUser[*r.MemberUserID] = true
			f.UserIDs = append(f.UserIDs, *r.MemberUserID)
		}
		if HasChannel(n.NotificationChannels, model.ChannelEmail) && r.MemberEmail != nil && strings.TrimSpace(*r.MemberEmail) != "" {
			f.Emails = append(f.Emails, email.NewMessage(r.MemberName, *r.MemberEmail, subject, n.NotificationBody))
		}
		if HasChannel(n.NotificationChannels, model.ChannelWhatsapp) && r.MemberPhone != nil && *r.MemberPhone != "" {
			f.Phones = append(f.Phones, *r.MemberPhone)
		}
	}
	return f
}

func loadRecipients(ctx context.Context, db *gorm.DB, n model.NotificationModel) ([]Recipient, error) {
	var out []Recipient
	tx := db.WithContext(ctx).Table("members").
		Select("member_name, member_user_id, member_email, member_phone").
		Where("member_church_id = ? AND member_deleted_at IS NULL", n.NotificationChurchID).
		Where("member_status IN ?", []string{memberModel.MemberStatusActive, memberModel.MemberStatusVisitor})
	if n.NotificationTargetUserID != nil {
		tx = tx.Where("member_user_id = ?", *n.NotificationTargetUserID)
	}
	return out, tx.Scan(&out).Error
}

type BroadcastResult struct {
	Notification model.NotificationModel `json:"notification"`
	InApp        int                     `json:"in_app"`
	Emails       int                     `json:"emails"`
	Whatsapp     int                     `json:"whatsapp"`
}

// Broadcast stores the notification with its inbox rows and queued WhatsApp
// messages in one transaction; e-mails go out after commit.
func Broadcast(ctx context.Context, db *gorm.DB, mailer email.EmailService, n model.NotificationModel, churchName string) (*BroadcastResult, error) {
	recipients, err := loadRecipients(ctx, db, n)
	if err != nil {
		return nil, err
	}
	fan := BuildFanout(n, recipients, churchName)
	res := &BroadcastResult{}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
		if len(fan.UserIDs) > 0 {
			rows := make([]model.UserNotificationModel, len(fan.UserIDs))
			for i, uid := range fan.UserIDs {
				rows[i] = model.UserNotificationModel{
					UserNotificationChurchID:       n.NotificationChurchID,
					UserNotificationNotificationID: n.NotificationID,
					UserNotificationUserID:         uid,
				}
			}
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return err
			}
			res.InApp = len(rows)
		}
		if len(fan.Phones) > 0 {
			queued, err := waService.EnqueueMany(ctx, tx, n.NotificationChurchID, fan.Phones,
				n.NotificationTitle+"\n\n"+n.NotificationBody,
				map[string]any{"notification_id": n.NotificationID.String()})
			if err != nil {
				return err
			}
			res.Whatsapp = queued
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mailer != nil && len(fan.Emails) > 0 {
		mailer.SendMessages(fan.Emails...)
		res.Emails = len(fan.Emails)
	}
	res.Notification = n
	realtime.Emit(ctx, n.NotificationChurchID, "notifications", constants.ActionInsert, n.NotificationID)
	log.Printf("[INFO] notification %s: in_app=%d email=%d whatsapp=%d", n.NotificationID, res.InApp, res.Emails, res.Whatsapp)
	return res, nil
}
