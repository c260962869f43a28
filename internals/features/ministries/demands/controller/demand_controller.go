package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	memberService "ecclesia_backend/internals/features/members/members/service"
	"ecclesia_backend/internals/features/ministries/demands/dto"
	"ecclesia_backend/internals/features/ministries/demands/model"
	"ecclesia_backend/internals/features/ministries/demands/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/realtime"
)

type DemandController struct {
	DB *gorm.DB
}

func NewDemandController(db *gorm.DB) *DemandController {
	return &DemandController{DB: db}
}

func (ctl *DemandController) find(c *fiber.Ctx, churchID uuid.UUID) (*model.DemandModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var d model.DemandModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("demand_id = ? AND demand_church_id = ?", id, churchID).
		First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Demand not found")
		}
		return nil, err
	}
	return &d, nil
}

// 🟢 GET /api/a/demands?ministry_id=
// board grouped by column
func (ctl *DemandController) Board(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	ministryID, err := helper.ParseUUIDQuery(c, "ministry_id")
	if err != nil {
		return err
	}
	tx := ctl.DB.WithContext(c.UserContext()).Where("demand_church_id = ?", churchID)
	if ministryID != nil {
		tx = tx.Where("demand_ministry_id = ?", *ministryID)
	}
	var rows []model.DemandModel
	if err := tx.Order("demand_status, demand_position ASC").Find(&rows).Error; err != nil {
		return err
	}
	board := map[string][]model.DemandModel{}
	for _, col := range model.DemandColumns {
		board[col] = []model.DemandModel{}
	}
	for _, r := range rows {
		board[r.DemandStatus] = append(board[r.DemandStatus], r)
	}
	return helper.JsonOK(c, "Board loaded", board)
}

// 🟢 POST /api/a/demands
func (ctl *DemandController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateDemandRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if req.Status == "" {
		req.Status = model.DemandTodo
	}
	if err := service.EnsureMinistry(c.UserContext(), ctl.DB, churchID, req.MinistryID); err != nil {
		return err
	}
	if req.AssigneeMemberID != nil {
		if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, *req.AssigneeMemberID); err != nil {
			return err
		}
	}
	pos, err := service.AppendPosition(c.UserContext(), ctl.DB, churchID, req.Status)
	if err != nil {
		return err
	}
	d := model.DemandModel{
		DemandChurchID:         churchID,
		DemandMinistryID:       req.MinistryID,
		DemandTitle:            req.Title,
		DemandDescription:      req.Description,
		DemandStatus:           req.Status,
		DemandPosition:         pos,
		DemandDueDate:          req.DueDate,
		DemandAssigneeMemberID: req.AssigneeMemberID,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&d).Error; err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministry_demands", constants.ActionInsert, d.DemandID)
	return helper.JsonCreated(c, "Demand created", d)
}

// 🟢 PATCH /api/a/demands/:id
func (ctl *DemandController) Update(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	d, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	var req dto.UpdateDemandRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Title.ApplyRequired(&d.DemandTitle)
	req.Description.ApplyTo(&d.DemandDescription)
	req.MinistryID.ApplyTo(&d.DemandMinistryID)
	req.DueDate.ApplyTo(&d.DemandDueDate)
	req.AssigneeMemberID.ApplyTo(&d.DemandAssigneeMemberID)
	if req.MinistryID.Present {
		if err := service.EnsureMinistry(c.UserContext(), ctl.DB, churchID, d.DemandMinistryID); err != nil {
			return err
		}
	}
	if d.DemandAssigneeMemberID != nil {
		if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, *d.DemandAssigneeMemberID); err != nil {
			return err
		}
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(d).Error; err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministry_demands", constants.ActionUpdate, d.DemandID)
	return helper.JsonUpdated(c, "Demand updated", d)
}

// 🟢 PATCH /api/a/demands/:id/move {status, position, ministry_id?}
// position is read from the board filtered by ministry_id when it is sent
func (ctl *DemandController) Move(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.MoveDemandRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	d, err := service.ApplyMove(c.UserContext(), ctl.DB, churchID, id, req.Status, req.Position, req.MinistryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Demand not found")
		}
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministry_demands", constants.ActionUpdate, d.DemandID)
	return helper.JsonUpdated(c, "Demand moved", d)
}

// 🟢 DELETE /api/a/demands/:id
func (ctl *DemandController) Delete(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	d, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(d).Error; err != nil {
		return err
	}
	if err := service.CloseGap(c.UserContext(), ctl.DB, churchID, d.DemandStatus); err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministry_demands", constants.ActionDelete, d.DemandID)
	return helper.JsonDeleted(c, "Demand deleted", fiber.Map{"demand_id": d.DemandID})
}
