package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecclesia_backend/internals/features/content/events/model"
	helper "ecclesia_backend/internals/helpers"
)

type CreateEventRequest struct {
	EventTitle             string     `json:"event_title" validate:"required,min=3,max=200"`
	EventDescription       *string    `json:"event_description"`
	EventLocation          *string    `json:"event_location" validate:"omitempty,max=255"`
	EventStartsAt          time.Time  `json:"event_starts_at" validate:"required"`
	EventEndsAt            *time.Time `json:"event_ends_at"`
	EventShareWithChildren bool       `json:"event_share_with_children"`
}

func (r CreateEventRequest) ToModel(churchID uuid.UUID, slug string) (*model.EventModel, error) {
	if r.EventEndsAt != nil && r.EventEndsAt.Before(r.EventStartsAt) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "event_ends_at must not be before event_starts_at")
	}
	return &model.EventModel{
		EventChurchID:          churchID,
		EventTitle:             strings.TrimSpace(r.EventTitle),
		EventSlug:              slug,
		EventDescription:       r.EventDescription,
		EventLocation:          r.EventLocation,
		EventStartsAt:          r.EventStartsAt.UTC(),
		EventEndsAt:            r.EventEndsAt,
		EventShareWithChildren: r.EventShareWithChildren,
	}, nil
}

type UpdateEventRequest struct {
	EventTitle             helper.PatchField[string]    `json:"event_title"`
	EventDescription       helper.PatchField[string]    `json:"event_description"`
	EventLocation          helper.PatchField[string]    `json:"event_location"`
	EventStartsAt          helper.PatchField[time.Time] `json:"event_starts_at"`
	EventEndsAt            helper.PatchField[time.Time] `json:"event_ends_at"`
	EventShareWithChildren helper.PatchField[bool]      `json:"event_share_with_children"`
}

func (r UpdateEventRequest) Apply(m *model.EventModel) error {
	r.EventTitle.ApplyRequired(&m.EventTitle)
	r.EventDescription.ApplyTo(&m.EventDescription)
	r.EventLocation.ApplyTo(&m.EventLocation)
	r.EventStartsAt.ApplyRequired(&m.EventStartsAt)
	r.EventEndsAt.ApplyTo(&m.EventEndsAt)
	r.EventShareWithChildren.ApplyRequired(&m.EventShareWithChildren)
	if m.EventEndsAt != nil && m.EventEndsAt.Before(m.EventStartsAt) {
		return fiber.NewError(fiber.StatusBadRequest, "event_ends_at must not be before event_starts_at")
	}
	return nil
}
