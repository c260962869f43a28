package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/billing/payments/dto"
	"ecclesia_backend/internals/features/billing/payments/model"
	"ecclesia_backend/internals/features/billing/payments/service"
	planModel "ecclesia_backend/internals/features/billing/plans/model"
	churchService "ecclesia_backend/internals/features/churches/churches/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type BillingController struct {
	DB      *gorm.DB
	Charger service.Charger
}

func NewBillingController(db *gorm.DB, charger service.Charger) *BillingController {
	return &BillingController{DB: db, Charger: charger}
}

// 🟢 GET /api/a/billing
func (ctl *BillingController) Overview(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	church, err := churchService.FindByID(c.UserContext(), ctl.DB, churchID)
	if err != nil {
		return err
	}
	out := dto.Overview{
		ChurchStatus:    church.ChurchStatus,
		NextPaymentDate: church.ChurchNextPaymentDate,
		IsChild:         !church.IsRoot(),
		PlanID:          church.ChurchPlanID,
	}
	if church.ChurchPlanID != nil {
		var p planModel.PlanModel
		if err := ctl.DB.WithContext(c.UserContext()).First(&p, "plan_id = ?", *church.ChurchPlanID).Error; err == nil {
			out.PlanCode, out.PlanName, out.PlanPriceCents = p.PlanCode, p.PlanName, p.PlanPriceCents
		}
	}
	return helper.JsonOK(c, "Billing overview", out)
}

// 🟢 GET /api/a/billing/payments
func (ctl *BillingController) ListPayments(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.SubscriptionPaymentModel{}).
		Where("subscription_payment_church_id = ?", churchID)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		tx = tx.Where("subscription_payment_status = ?", st)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.SubscriptionPaymentModel
	if err := tx.Order("subscription_payment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Payments loaded", rows, paging.Pagination(total))
}

// 🟢 POST /api/a/billing/checkout {method: snap|qris}
func (ctl *BillingController) Checkout(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	if helperAuth.GetParentChurchID(c) != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Child churches are billed through their mother church")
	}
	if ctl.Charger == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Payment provider is not configured")
	}
	var req dto.CheckoutRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}

	church, err := churchService.FindByID(c.UserContext(), ctl.DB, churchID)
	if err != nil {
		return err
	}
	if church.ChurchPlanID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Church has no plan")
	}
	var plan planModel.PlanModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&plan, "plan_id = ?", *church.ChurchPlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Church plan not found")
		}
		return err
	}
	if plan.PlanPriceCents <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Current plan is free")
	}

	pay := model.SubscriptionPaymentModel{
		SubscriptionPaymentChurchID:    churchID,
		SubscriptionPaymentPlanID:      &plan.PlanID,
		SubscriptionPaymentOrderID:     service.NewOrderID(churchID, time.Now()),
		SubscriptionPaymentProvider:    model.ProviderMidtrans,
		SubscriptionPaymentMethod:      req.Method,
		SubscriptionPaymentAmountCents: plan.PlanPriceCents,
		SubscriptionPaymentStatus:      model.StatusPending,
	}
	if uid, err := helperAuth.GetUserID(c); err == nil {
		pay.SubscriptionPaymentRequestedBy = &uid
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&pay).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Checkout already in progress, try again")
		}
		return err
	}

	updates := map[string]any{}
	switch req.Method {
	case model.MethodSnap:
		cust := service.Customer{Name: church.ChurchName}
		if church.ChurchEmail != nil {
			cust.Email = *church.ChurchEmail
		}
		if church.ChurchPhone != nil {
			cust.Phone = *church.ChurchPhone
		}
		res, err := ctl.Charger.Snap(c.UserContext(), pay, plan.PlanName, cust)
		if err != nil {
			return ctl.chargeFailed(c, &pay, err)
		}
		pay.SubscriptionPaymentSnapToken = &res.Token
		pay.SubscriptionPaymentRedirectURL = &res.RedirectURL
		updates["subscription_payment_snap_token"] = res.Token
		updates["subscription_payment_redirect_url"] = res.RedirectURL
	case model.MethodQRIS:
		res, err := ctl.Charger.QRIS(c.UserContext(), pay)
		if err != nil {
			return ctl.chargeFailed(c, &pay, err)
		}
		pay.SubscriptionPaymentQRString = &res.QRString
		updates["subscription_payment_qr_string"] = res.QRString
		if res.TransactionID != "" {
			pay.SubscriptionPaymentTransactionID = &res.TransactionID
			updates["subscription_payment_transaction_id"] = res.TransactionID
		}
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.SubscriptionPaymentModel{}).
		Where("subscription_payment_id = ?", pay.SubscriptionPaymentID).
		Updates(updates).Error; err != nil {
		return err
	}
	log.Printf("[INFO] checkout %s started (church=%s, method=%s)", pay.SubscriptionPaymentOrderID, churchID, req.Method)
	return helper.JsonCreated(c, "Checkout created", dto.NewCheckoutResponse(pay))
}

func (ctl *BillingController) chargeFailed(c *fiber.Ctx, pay *model.SubscriptionPaymentModel, cause error) error {
	msg := cause.Error()
	log.Printf("[ERROR] checkout %s: %v", pay.SubscriptionPaymentOrderID, cause)
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.SubscriptionPaymentModel{}).
		Where("subscription_payment_id = ?", pay.SubscriptionPaymentID).
		Updates(map[string]any{
			"subscription_payment_status": model.StatusFailed,
			"subscription_payment_error":  msg,
		}).Error; err != nil {
		log.Printf("[WARN] checkout %s: mark failed: %v", pay.SubscriptionPaymentOrderID, err)
	}
	return helper.JsonError(c, fiber.StatusBadGateway, "Payment provider rejected the checkout")
}

/* ===================== OWNER ===================== */

// 🟢 GET /api/o/payments?church_id=&status=
func (ctl *BillingController) OwnerList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.SubscriptionPaymentModel{})
	churchID, err := helper.ParseUUIDQuery(c, "church_id")
	if err != nil {
		return err
	}
	if churchID != nil {
		tx = tx.Where("subscription_payment_church_id = ?", *churchID)
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		tx = tx.Where("subscription_payment_status = ?", st)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.SubscriptionPaymentModel
	if err := tx.Order("subscription_payment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Payments loaded", rows, paging.Pagination(total))
}
