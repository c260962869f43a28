package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/churches/churches/dto"
	"ecclesia_backend/internals/features/churches/churches/model"
	"ecclesia_backend/internals/features/churches/churches/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	helperOSS "ecclesia_backend/internals/helpers/oss"
)

type ChurchController struct {
	DB    *gorm.DB
	Store helperOSS.BlobStore
}

func NewChurchController(db *gorm.DB, store helperOSS.BlobStore) *ChurchController {
	return &ChurchController{DB: db, Store: store}
}

// 🟢 GET /api/u/church
func (ctl *ChurchController) GetCurrent(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	church, err := service.FindByID(c.UserContext(), ctl.DB, churchID)
	if err != nil {
		return err
	}
	resp := dto.FromModel(*church)
	if church.ChurchParentID != nil {
		if parent, err := service.FindByID(c.UserContext(), ctl.DB, *church.ChurchParentID); err == nil {
			s := dto.Summary(*parent)
			resp.Parent = &s
		}
	}
	return helper.JsonOK(c, "Church loaded", resp)
}

// 🟢 PATCH /api/a/church
func (ctl *ChurchController) Update(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	church, err := service.FindByID(c.UserContext(), ctl.DB, churchID)
	if err != nil {
		return err
	}

	var req dto.UpdateChurchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if base := req.Apply(church); base != "" && !strings.EqualFold(base, church.ChurchSlug) {
		slug, err := helper.SlugSpace{
			Table: "churches", Column: "church_slug", MaxLen: 120,
			Scope: func(q *gorm.DB) *gorm.DB { return q.Where("church_id <> ?", church.ChurchID) },
		}.Claim(c.UserContext(), ctl.DB, base)
		if err != nil {
			return err
		}
		church.ChurchSlug = slug
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(church).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Slug already in use")
		}
		return err
	}
	return helper.JsonUpdated(c, "Church updated", dto.FromModel(*church))
}

// 🟢 POST /api/a/church/logo (multipart: logo|file)
func (ctl *ChurchController) UploadLogo(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	church, err := service.FindByID(c.UserContext(), ctl.DB, churchID)
	if err != nil {
		return err
	}
	fh, err := helperOSS.GetFormFile(c, "logo", "file")
	if err != nil {
		return err
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "logo file is required")
	}

	url, err := ctl.Store.UploadImage(c.UserContext(), helperOSS.ChurchDir(church.ChurchID, "logo"), fh, helperOSS.LogoOptions)
	if err != nil {
		return err
	}
	old := church.ChurchLogoURL
	if err := ctl.DB.WithContext(c.UserContext()).Model(church).Update("church_logo_url", url).Error; err != nil {
		if delErr := ctl.Store.DeleteByPublicURL(c.UserContext(), url); delErr != nil {
			log.Printf("[WARN] orphan logo %s: %v", url, delErr)
		}
		return err
	}
	if old != nil && *old != "" {
		if err := ctl.Store.DeleteByPublicURL(c.UserContext(), *old); err != nil {
			log.Printf("[WARN] old logo not removed %s: %v", *old, err)
		}
	}
	church.ChurchLogoURL = &url
	return helper.JsonUpdated(c, "Logo updated", dto.FromModel(*church))
}

// 🟢 GET /api/a/church/children
func (ctl *ChurchController) ListChildren(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	if helperAuth.GetParentChurchID(c) != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Only a mother church has children")
	}
	rows, err := service.ListChildren(c.UserContext(), ctl.DB, churchID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Children loaded", dto.FromModels(rows))
}

/* =========================================================
   OWNER (superadmin)
   ========================================================= */

// 🟢 GET /api/o/churches?q=&status=&parent_id=&only_roots=
func (ctl *ChurchController) OwnerList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.ChurchModel{})

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("(church_name ILIKE ? OR church_slug ILIKE ? OR church_email ILIKE ?)", like, like, like)
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		tx = tx.Where("church_status = ?", st)
	}
	parentID, err := helper.ParseUUIDQuery(c, "parent_id")
	if err != nil {
		return err
	}
	if parentID != nil {
		tx = tx.Where("church_parent_id = ?", *parentID)
	}
	if helper.QueryBool(c, "only_roots") {
		tx = tx.Where("church_parent_id IS NULL")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.ChurchModel
	if err := tx.Order("church_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Churches loaded", dto.FromModels(rows), paging.Pagination(total))
}

// 🟢 GET /api/o/churches/:id
func (ctl *ChurchController) OwnerDetail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	church, err := service.FindByID(c.UserContext(), ctl.DB, id)
	if err != nil {
		return err
	}
	children, err := service.ListChildren(c.UserContext(), ctl.DB, id)
	if err != nil {
		return err
	}
	resp := dto.FromModel(*church)
	for _, ch := range children {
		resp.Children = append(resp.Children, dto.Summary(ch))
	}
	return helper.JsonOK(c, "Church loaded", resp)
}

// 🟢 PATCH /api/o/churches/:id/status
func (ctl *ChurchController) OwnerSetStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	church, err := service.FindByID(c.UserContext(), ctl.DB, id)
	if err != nil {
		return err
	}
	if !church.IsRoot() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Child churches follow their mother church status")
	}
	if err := service.SetStatus(c.UserContext(), ctl.DB, id, req.Status, req.NextPaymentDate); err != nil {
		return err
	}
	church.ChurchStatus = req.Status
	if req.NextPaymentDate != nil {
		church.ChurchNextPaymentDate = req.NextPaymentDate
	}
	return helper.JsonUpdated(c, "Church status updated", dto.FromModel(*church))
}
