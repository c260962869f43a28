package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecclesia_backend/internals/features/content/devotionals/model"
	helper "ecclesia_backend/internals/helpers"
)

const dateLayout = "2006-01-02"

type CreateDevotionalRequest struct {
	Title             string  `json:"devotional_title" validate:"required,min=3,max=200"`
	VerseReference    *string `json:"devotional_verse_reference" validate:"omitempty,max=120"`
	Content           string  `json:"devotional_content" validate:"required"`
	Author            *string `json:"devotional_author" validate:"omitempty,max=150"`
	PublishDate       string  `json:"devotional_publish_date" validate:"required"`
	ShareWithChildren bool    `json:"devotional_share_with_children"`
}

func (r CreateDevotionalRequest) ToModel(churchID uuid.UUID) (*model.DevotionalModel, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(r.PublishDate))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "devotional_publish_date must be YYYY-MM-DD")
	}
	return &model.DevotionalModel{
		DevotionalChurchID:          churchID,
		DevotionalTitle:             strings.TrimSpace(r.Title),
		DevotionalVerseReference:    r.VerseReference,
		DevotionalContent:           r.Content,
		DevotionalAuthor:            r.Author,
		DevotionalPublishDate:       d,
		DevotionalShareWithChildren: r.ShareWithChildren,
	}, nil
}

type UpdateDevotionalRequest struct {
	Title             helper.PatchField[string] `json:"devotional_title"`
	VerseReference    helper.PatchField[string] `json:"devotional_verse_reference"`
	Content           helper.PatchField[string] `json:"devotional_content"`
	Author            helper.PatchField[string] `json:"devotional_author"`
	PublishDate       helper.PatchField[string] `json:"devotional_publish_date"`
	ShareWithChildren helper.PatchField[bool]   `json:"devotional_share_with_children"`
}

func (r UpdateDevotionalRequest) Apply(m *model.DevotionalModel) error {
	r.Title.ApplyRequired(&m.DevotionalTitle)
	r.VerseReference.ApplyTo(&m.DevotionalVerseReference)
	r.Content.ApplyRequired(&m.DevotionalContent)
	r.Author.ApplyTo(&m.DevotionalAuthor)
	r.ShareWithChildren.ApplyRequired(&m.DevotionalShareWithChildren)
	if v, ok := r.PublishDate.Get(); ok && v != nil {
		d, err := time.Parse(dateLayout, strings.TrimSpace(*v))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "devotional_publish_date must be YYYY-MM-DD")
		}
		m.DevotionalPublishDate = d
	}
	return nil
}
