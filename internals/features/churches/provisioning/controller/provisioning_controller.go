package controller

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/configs"
	churchDTO "ecclesia_backend/internals/features/churches/churches/dto"
	churchService "ecclesia_backend/internals/features/churches/churches/service"
	"ecclesia_backend/internals/features/churches/provisioning/service"
	authService "ecclesia_backend/internals/features/users/auth/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	helperOSS "ecclesia_backend/internals/helpers/oss"
)

type ProvisioningController struct {
	DB    *gorm.DB
	Store helperOSS.BlobStore
}

func NewProvisioningController(db *gorm.DB, store helperOSS.BlobStore) *ProvisioningController {
	return &ProvisioningController{DB: db, Store: store}
}

// dropObjects runs after commit; failures are only logged.
func (ctl *ProvisioningController) dropObjects(keys []string) {
	if len(keys) == 0 || ctl.Store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		for _, k := range keys {
			if k == "" {
				continue
			}
			if err := ctl.Store.DeleteObject(ctx, k); err != nil {
				log.Printf("[WARN] OSS cleanup %s: %v", k, err)
			}
		}
	}()
}

// 🟢 POST /api/public/churches/register
func (ctl *ProvisioningController) Register(c *fiber.Ctx) error {
	var req service.RegisterChurchRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	out, err := service.RegisterChurch(c.UserContext(), ctl.DB, req, configs.App.TrialDays)
	if err != nil {
		return err
	}
	tokens, err := authService.TokenResponse(c, ctl.DB, out.User)
	if err != nil {
		return err
	}
	tokens["church"] = churchDTO.FromModel(out.Church)
	return helper.JsonCreated(c, "Church registered", tokens)
}

// 🟢 POST /api/a/church/children
func (ctl *ProvisioningController) CreateChild(c *fiber.Ctx) error {
	var req service.CreateChildRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	parentID, err := helperAuth.GetChurchID(c)
	if helperAuth.IsSuperadmin(c) && req.ParentID != nil {
		parentID, err = *req.ParentID, nil
	}
	if err != nil {
		return err
	}
	parent, err := churchService.FindByID(c.UserContext(), ctl.DB, parentID)
	if err != nil {
		return err
	}
	out, err := service.CreateChild(c.UserContext(), ctl.DB, *parent, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Child church created", fiber.Map{
		"church":    churchDTO.FromModel(out.Church),
		"user_id":   out.User.ID,
		"user_name": out.User.UserName,
		"member_id": out.Member.MemberID,
	})
}

// ownChild loads :id and checks it is a child of the caller's church (superadmin: any child).
func (ctl *ProvisioningController) ownChild(c *fiber.Ctx) (*churchDTO.ChurchResponse, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	child, err := churchService.FindByID(c.UserContext(), ctl.DB, id)
	if err != nil {
		return nil, err
	}
	if child.ChurchParentID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Church is not a child church")
	}
	if !helperAuth.IsSuperadmin(c) {
		callerID, err := helperAuth.GetChurchID(c)
		if err != nil {
			return nil, err
		}
		if *child.ChurchParentID != callerID {
			return nil, fiber.NewError(fiber.StatusNotFound, "Church not found")
		}
	}
	resp := churchDTO.FromModel(*child)
	return &resp, nil
}

// 🟢 POST /api/a/church/children/:id/reset
func (ctl *ProvisioningController) ResetChild(c *fiber.Ctx) error {
	child, err := ctl.ownChild(c)
	if err != nil {
		return err
	}
	var req service.ResetChildRequest
	if len(c.Body()) > 0 {
		if ok, err := helper.ParseAndValidate(c, &req); !ok {
			return err
		}
	}
	row, err := churchService.FindByID(c.UserContext(), ctl.DB, child.ChurchID)
	if err != nil {
		return err
	}
	keys, err := service.ResetChild(c.UserContext(), ctl.DB, *row, req)
	if err != nil {
		return err
	}
	ctl.dropObjects(keys)
	return helper.JsonOK(c, "Child church reset", child)
}

// 🟢 DELETE /api/a/church/children/:id
func (ctl *ProvisioningController) DeleteChild(c *fiber.Ctx) error {
	child, err := ctl.ownChild(c)
	if err != nil {
		return err
	}
	keys, err := service.DeleteChurchCascade(c.UserContext(), ctl.DB, child.ChurchID)
	if err != nil {
		return err
	}
	ctl.dropObjects(keys)
	return helper.JsonDeleted(c, "Child church deleted", fiber.Map{"church_id": child.ChurchID})
}

// 🟢 DELETE /api/o/churches/:id
func (ctl *ProvisioningController) OwnerDelete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := churchService.FindByID(c.UserContext(), ctl.DB, id); err != nil {
		return err
	}
	keys, err := service.DeleteChurchCascade(c.UserContext(), ctl.DB, id)
	if err != nil {
		return err
	}
	ctl.dropObjects(keys)
	return helper.JsonDeleted(c, "Church deleted", fiber.Map{"church_id": id})
}

// 🟢 DELETE /api/a/users/:id
func (ctl *ProvisioningController) DeleteUser(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	targetID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeleteChurchUser(c.UserContext(), ctl.DB, churchID, actorID, targetID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"user_id": targetID})
}

type systemResetRequest struct {
	Confirm string `json:"confirm" validate:"required"`
}

// 🟢 POST /api/o/system/reset
func (ctl *ProvisioningController) SystemReset(c *fiber.Ctx) error {
	var req systemResetRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if !ConfirmPhraseMatches(req.Confirm, configs.App.SystemResetPhrase) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Confirmation phrase does not match")
	}
	keys, err := service.SystemReset(c.UserContext(), ctl.DB)
	if err != nil {
		return err
	}
	ctl.dropObjects(keys)
	return helper.JsonOK(c, "System reset completed", fiber.Map{"documents_removed": len(keys)})
}

func ConfirmPhraseMatches(got, want string) bool {
	want = strings.TrimSpace(want)
	return want != "" && strings.TrimSpace(got) == want
}
