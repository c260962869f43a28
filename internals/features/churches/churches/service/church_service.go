package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/churches/churches/model"
)

func FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ChurchModel, error) {
	var m model.ChurchModel
	if err := db.WithContext(ctx).First(&m, "church_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Church not found")
		}
		return nil, err
	}
	return &m, nil
}

func ListChildren(ctx context.Context, db *gorm.DB, parentID uuid.UUID) ([]model.ChurchModel, error) {
	var rows []model.ChurchModel
	err := db.WithContext(ctx).
		Where("church_parent_id = ?", parentID).
		Order("church_name ASC").
		Find(&rows).Error
	return rows, err
}

func CountChildren(ctx context.Context, db *gorm.DB, parentID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.ChurchModel{}).
		Where("church_parent_id = ?", parentID).
		Count(&n).Error
	return n, err
}

// SetStatus updates a church and mirrors the values onto its children.
// next == nil leaves church_next_payment_date untouched.
func SetStatus(ctx context.Context, db *gorm.DB, churchID uuid.UUID, status string, next *time.Time) error {
	if !constants.IsValidChurchStatus(status) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid church status")
	}
	updates := map[string]any{"church_status": status}
	if next != nil {
		updates["church_next_payment_date"] = *next
	}
	return db.WithContext(ctx).
		Model(&model.ChurchModel{}).
		Where("church_id = ? OR church_parent_id = ?", churchID, churchID).
		Updates(updates).Error
}

// ParentForNewChild validates that parent can hold another child church.
func ParentForNewChild(parent model.ChurchModel, currentChildren int64, maxChildren int) error {
	if !parent.IsRoot() {
		return fiber.NewError(fiber.StatusBadRequest, "A child church cannot have children")
	}
	if maxChildren > 0 && currentChildren >= int64(maxChildren) {
		return fiber.NewError(fiber.StatusForbidden, "Child church limit of your plan reached")
	}
	return nil
}
