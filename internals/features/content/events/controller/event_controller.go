package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/churches/sharing"
	"ecclesia_backend/internals/features/content/events/dto"
	"ecclesia_backend/internals/features/content/events/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

func (ctl *EventController) visibility(c *fiber.Ctx) (sharing.Visibility, error) {
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return vis, err
	}
	if helper.QueryBool(c, "include_children") && helperAuth.IsStaff(c) {
		return vis.WithChildren(ctl.DB.WithContext(c.UserContext()))
	}
	return vis, nil
}

func (ctl *EventController) load(c *fiber.Ctx) (*model.EventModel, sharing.Visibility, error) {
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return nil, vis, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, vis, err
	}
	var ev model.EventModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&ev, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vis, fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		return nil, vis, err
	}
	if !sharing.CanView(vis, ev.EventChurchID, ev.EventShareWithChildren) {
		return nil, vis, fiber.NewError(fiber.StatusNotFound, "Event not found")
	}
	return &ev, vis, nil
}

// 🟢 GET /api/u/events?upcoming=true&q=&include_children=
func (ctl *EventController) List(c *fiber.Ctx) error {
	vis, err := ctl.visibility(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.EventModel{}).
		Scopes(sharing.Scope(vis, "event_church_id", "event_share_with_children"))

	if helper.QueryBool(c, "upcoming") {
		tx = tx.Where("COALESCE(event_ends_at, event_starts_at) >= ?", time.Now().UTC())
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("event_title ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.EventModel
	if err := tx.Order("event_starts_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Events loaded", rows, paging.Pagination(total))
}

// 🟢 GET /api/u/events/:id
func (ctl *EventController) GetByID(c *fiber.Ctx) error {
	ev, _, err := ctl.load(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Event loaded", ev)
}

// 🟢 POST /api/a/events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateEventRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	base := helper.Slugify(req.EventTitle, 160)
	if base == "" {
		base = "event"
	}
	slug, err := helper.SlugSpace{
		Table: "events", Column: "event_slug", MaxLen: 160,
		Scope: func(q *gorm.DB) *gorm.DB { return q.Where("event_church_id = ?", churchID) },
	}.Claim(c.UserContext(), ctl.DB, base)
	if err != nil {
		return err
	}
	ev, err := req.ToModel(churchID, slug)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(ev).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "An event with this slug already exists")
		}
		return err
	}
	return helper.JsonCreated(c, "Event created", ev)
}

// 🟢 PATCH /api/a/events/:id
func (ctl *EventController) Update(c *fiber.Ctx) error {
	ev, vis, err := ctl.load(c)
	if err != nil {
		return err
	}
	if !sharing.CanEdit(vis, ev.EventChurchID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owning church can change this event")
	}
	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Apply(ev); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(ev).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Event updated", ev)
}

// 🟢 DELETE /api/a/events/:id
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	ev, vis, err := ctl.load(c)
	if err != nil {
		return err
	}
	if !sharing.CanEdit(vis, ev.EventChurchID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owning church can delete this event")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(ev).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": ev.EventID})
}
