package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecclesia_backend/internals/features/whatsapp/gateway"
	"ecclesia_backend/internals/features/whatsapp/model"
	"ecclesia_backend/internals/features/whatsapp/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type WhatsappController struct {
	DB      *gorm.DB
	Gateway gateway.Gateway
}

func NewWhatsappController(db *gorm.DB, gw gateway.Gateway) *WhatsappController {
	return &WhatsappController{DB: db, Gateway: gw}
}

func gatewayError(err error) error {
	if errors.Is(err, gateway.ErrNotConfigured) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "WhatsApp gateway is not configured")
	}
	log.Printf("[ERROR] whatsapp gateway: %v", err)
	return fiber.NewError(fiber.StatusBadGateway, "WhatsApp gateway request failed")
}

func applyState(row *model.WhatsappSessionModel, st gateway.SessionState) {
	now := time.Now().UTC()
	row.WaSessionStatus = st.Status
	row.WaSessionLastSeenAt = &now
	row.WaSessionQR = nil
	if st.Status == model.SessionQR && st.QR != "" {
		qr := st.QR
		row.WaSessionQR = &qr
	}
	if st.Phone != "" {
		phone := st.Phone
		row.WaSessionPhone = &phone
	}
}

func (ctl *WhatsappController) session(c *fiber.Ctx, churchID uuid.UUID) (*model.WhatsappSessionModel, error) {
	var row model.WhatsappSessionModel
	err := ctl.DB.WithContext(c.UserContext()).First(&row, "wa_session_church_id = ?", churchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// 🟢 POST /api/a/whatsapp/session/init
func (ctl *WhatsappController) InitSession(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	name := service.SessionName(churchID)
	st, err := ctl.Gateway.StartSession(c.UserContext(), name)
	if err != nil {
		return gatewayError(err)
	}
	row := model.WhatsappSessionModel{WaSessionChurchID: churchID, WaSessionName: name}
	applyState(&row, st)
	if err := ctl.DB.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "wa_session_church_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"wa_session_name", "wa_session_status", "wa_session_qr", "wa_session_phone",
			"wa_session_last_seen_at", "wa_session_updated_at",
		}),
	}).Create(&row).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "WhatsApp session started", row)
}

// 🟢 GET /api/a/whatsapp/session
// refreshes the stored status from the gateway
func (ctl *WhatsappController) GetSession(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	row, err := ctl.session(c, churchID)
	if err != nil {
		return err
	}
	if row == nil {
		return helper.JsonOK(c, "No WhatsApp session", fiber.Map{"wa_session_status": model.SessionDisconnected})
	}
	st, err := ctl.Gateway.SessionStatus(c.UserContext(), row.WaSessionName)
	if err != nil {
		log.Printf("[WARN] whatsapp status refresh church=%s: %v", churchID, err)
		return helper.JsonOK(c, "WhatsApp session (stored status)", row)
	}
	applyState(row, st)
	if err := ctl.DB.WithContext(c.UserContext()).Save(row).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "WhatsApp session", row)
}

// 🟢 DELETE /api/a/whatsapp/session
func (ctl *WhatsappController) Logout(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	row, err := ctl.session(c, churchID)
	if err != nil {
		return err
	}
	if row == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "No WhatsApp session")
	}
	if err := ctl.Gateway.Logout(c.UserContext(), row.WaSessionName); err != nil {
		return gatewayError(err)
	}
	applyState(row, gateway.SessionState{Status: model.SessionDisconnected})
	if err := ctl.DB.WithContext(c.UserContext()).Save(row).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "WhatsApp session logged out", row)
}

type enqueueRequest struct {
	To   string `json:"to" validate:"required"`
	Body string `json:"body" validate:"required,max=4096"`
}

// 🟢 POST /api/a/whatsapp/messages
func (ctl *WhatsappController) Enqueue(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req enqueueRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	row, err := service.NewMessage(churchID, req.To, req.Body, nil)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Message queued", row)
}

// 🟢 GET /api/a/whatsapp/messages?status=
func (ctl *WhatsappController) ListMessages(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.WhatsappMessageModel{}).
		Where("wa_message_church_id = ?", churchID)
	switch s := strings.TrimSpace(c.Query("status")); s {
	case "":
	case model.MessagePending, model.MessageSending, model.MessageSent, model.MessageFailed:
		tx = tx.Where("wa_message_status = ?", s)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be pending, sending, sent or failed")
	}
	paging := helper.ResolvePaging(c, 50, 200)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.WhatsappMessageModel
	if err := tx.Order("wa_message_created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Messages loaded", rows, paging.Pagination(total))
}
