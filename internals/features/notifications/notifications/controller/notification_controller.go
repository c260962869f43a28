package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/notifications/notifications/model"
	"ecclesia_backend/internals/features/notifications/notifications/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/email"
)

type NotificationController struct {
	DB     *gorm.DB
	Mailer email.EmailService
}

func NewNotificationController(db *gorm.DB, mailer email.EmailService) *NotificationController {
	return &NotificationController{DB: db, Mailer: mailer}
}

/* ===================== Inbox ===================== */

// 🟢 GET /api/u/notifications?unread=true
func (ctl *NotificationController) Mine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.UserNotificationModel{}).
		Where("user_notification_user_id = ?", userID)
	if helper.QueryBool(c, "unread") {
		tx = tx.Where("user_notification_read_at IS NULL")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var unread int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.UserNotificationModel{}).
		Where("user_notification_user_id = ? AND user_notification_read_at IS NULL", userID).
		Count(&unread).Error; err != nil {
		return err
	}
	var rows []model.UserNotificationModel
	if err := tx.Preload("Notification").
		Order("user_notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	c.Set("X-Unread-Count", strconv.FormatInt(unread, 10))
	return helper.JsonList(c, "Notifications loaded", rows, paging.Pagination(total))
}

// 🟢 PATCH /api/u/notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var row model.UserNotificationModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "user_notification_id = ? AND user_notification_user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		return err
	}
	if row.UserNotificationReadAt == nil {
		now := time.Now().UTC()
		row.UserNotificationReadAt = &now
		if err := ctl.DB.WithContext(c.UserContext()).Model(&row).
			Update("user_notification_read_at", now).Error; err != nil {
			return err
		}
	}
	return helper.JsonUpdated(c, "Notification marked as read", row)
}

// 🟢 POST /api/u/notifications/read-all
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).Model(&model.UserNotificationModel{}).
		Where("user_notification_user_id = ? AND user_notification_read_at IS NULL", userID).
		Update("user_notification_read_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	return helper.JsonUpdated(c, "All notifications marked as read", fiber.Map{"updated": res.RowsAffected})
}

/* ===================== Broadcast ===================== */

type broadcastRequest struct {
	Title        string     `json:"notification_title" validate:"required,max=200"`
	Body         string     `json:"notification_body" validate:"required"`
	Channels     []string   `json:"notification_channels"`
	TargetUserID *uuid.UUID `json:"notification_target_user_id"`
}

// 🟢 POST /api/a/notifications
func (ctl *NotificationController) Broadcast(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req broadcastRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	channels, err := service.ParseChannels(req.Channels)
	if err != nil {
		return err
	}
	n := model.NotificationModel{
		NotificationChurchID:     churchID,
		NotificationTitle:        strings.TrimSpace(req.Title),
		NotificationBody:         req.Body,
		NotificationChannels:     channels,
		NotificationTargetUserID: req.TargetUserID,
	}
	if uid, err := helperAuth.GetUserID(c); err == nil {
		n.NotificationCreatedBy = &uid
	}

	var church struct{ ChurchName string }
	if err := ctl.DB.WithContext(c.UserContext()).Table("churches").
		Select("church_name").Where("church_id = ?", churchID).Scan(&church).Error; err != nil {
		return err
	}

	res, err := service.Broadcast(c.UserContext(), ctl.DB, ctl.Mailer, n, church.ChurchName)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Notification sent", res)
}

// 🟢 GET /api/a/notifications
func (ctl *NotificationController) ListSent(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.NotificationModel{}).
		Where("notification_church_id = ?", churchID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.NotificationModel
	if err := tx.Order("notification_created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Notifications loaded", rows, paging.Pagination(total))
}
