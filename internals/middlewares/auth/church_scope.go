package auth

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type ChurchState struct {
	Status   string
	ParentID *uuid.UUID
}

type ChurchLoader interface {
	LoadChurch(ctx context.Context, churchID uuid.UUID) (ChurchState, error)
}

type ChurchScopeOpts struct {
	Loader ChurchLoader
	// Required rejects tokens without a church with 403.
	Required bool
}

// UseChurchScope loads the token church and stores its status and parent in Locals.
func UseChurchScope(o ChurchScopeOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		churchID, err := helperAuth.GetChurchID(c)
		if err != nil {
			if o.Required && !helperAuth.IsSuperadmin(c) {
				return err
			}
			return c.Next()
		}

		st, err := o.Loader.LoadChurch(c.UserContext(), churchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusForbidden, "Church not found")
			}
			log.Printf("[ERROR] load church %s: %v", churchID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load church")
		}

		c.Locals(helperAuth.LocChurchStatus, st.Status)
		if st.ParentID != nil {
			c.Locals(helperAuth.LocChurchParentID, st.ParentID.String())
		}
		return c.Next()
	}
}

type DBChurchLoader struct {
	DB *gorm.DB
}

func (l DBChurchLoader) LoadChurch(ctx context.Context, churchID uuid.UUID) (ChurchState, error) {
	var row struct {
		ChurchStatus   string
		ChurchParentID *uuid.UUID
	}
	err := l.DB.WithContext(ctx).
		Table("churches").
		Select("church_status, church_parent_id").
		Where("church_id = ? AND church_deleted_at IS NULL", churchID).
		Take(&row).Error
	if err != nil {
		return ChurchState{}, err
	}
	return ChurchState{Status: row.ChurchStatus, ParentID: row.ChurchParentID}, nil
}
