package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	memberModel "ecclesia_backend/internals/features/members/members/model"
	"ecclesia_backend/internals/helpers/email"
)

// CheckCapacity refuses a new member once the plan limit is reached. max <= 0 is unlimited.
func CheckCapacity(current int64, max int) error {
	if max > 0 && current >= int64(max) {
		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("Member limit of your plan reached (%d). Upgrade the plan to add more members.", max))
	}
	return nil
}

// EnsureCapacity loads the church plan limit and the live member count.
func EnsureCapacity(ctx context.Context, db *gorm.DB, churchID uuid.UUID) error {
	var limit struct{ PlanMaxMembers int }
	if err := db.WithContext(ctx).
		Table("churches AS c").
		Select("COALESCE(p.plan_max_members, 0) AS plan_max_members").
		Joins("LEFT JOIN plans p ON p.plan_id = c.church_plan_id").
		Where("c.church_id = ?", churchID).
		Scan(&limit).Error; err != nil {
		return err
	}
	if limit.PlanMaxMembers <= 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).
		Model(&memberModel.MemberModel{}).
		Where("member_church_id = ?", churchID).
		Count(&count).Error; err != nil {
		return err
	}
	return CheckCapacity(count, limit.PlanMaxMembers)
}

func WelcomeMessage(m memberModel.MemberModel, churchName string) *email.EmailMessage {
	if m.MemberEmail == nil || *m.MemberEmail == "" {
		return nil
	}
	body := fmt.Sprintf(
		"Hello %s,\n\nWelcome to %s! Your member record has been created.\n\nGod bless you.",
		m.MemberName, churchName,
	)
	return email.NewMessage(m.MemberName, *m.MemberEmail, "Welcome to "+churchName, body)
}

// SendWelcome is best-effort; the mailer sends in the background.
func SendWelcome(mailer email.EmailService, m memberModel.MemberModel, churchName string) {
	if mailer == nil {
		return
	}
	if msg := WelcomeMessage(m, churchName); msg != nil {
		mailer.SendMessages(msg)
		log.Printf("[INFO] welcome e-mail queued for member %s", m.MemberID)
	}
}

// EnsureMembers checks every id is a live member of churchID.
func EnsureMembers(ctx context.Context, db *gorm.DB, churchID uuid.UUID, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	uniq := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	var n int64
	if err := db.WithContext(ctx).Model(&memberModel.MemberModel{}).
		Where("member_church_id = ? AND member_id IN ?", churchID, ids).
		Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(uniq)) {
		return fiber.NewError(fiber.StatusBadRequest, "Member not found in this church")
	}
	return nil
}

// MemberIDOfUser returns the member row linked to userID inside churchID.
func MemberIDOfUser(ctx context.Context, db *gorm.DB, churchID, userID uuid.UUID) (uuid.UUID, error) {
	var m memberModel.MemberModel
	if err := db.WithContext(ctx).Select("member_id").
		Where("member_church_id = ? AND member_user_id = ?", churchID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "No member record linked to this account")
		}
		return uuid.Nil, err
	}
	return m.MemberID, nil
}
