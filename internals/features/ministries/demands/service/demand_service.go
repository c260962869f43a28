package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecclesia_backend/internals/features/ministries/demands/model"
	ministryModel "ecclesia_backend/internals/features/ministries/ministries/model"
)

// EnsureMinistry checks that id (when set) is a ministry of churchID.
func EnsureMinistry(ctx context.Context, db *gorm.DB, churchID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := db.WithContext(ctx).Model(&ministryModel.MinistryModel{}).
		Where("ministry_id = ? AND ministry_church_id = ?", *id, churchID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Ministry not found in this church")
	}
	return nil
}

func loadBoard(tx *gorm.DB, churchID uuid.UUID, statuses []string) ([]Card, error) {
	var rows []model.DemandModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("demand_id, demand_status, demand_position, demand_ministry_id").
		Where("demand_church_id = ? AND demand_status IN ?", churchID, statuses).
		Order("demand_position ASC, demand_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Card, 0, len(rows))
	for _, r := range rows {
		out = append(out, Card{ID: r.DemandID, Status: r.DemandStatus, Position: r.DemandPosition, MinistryID: r.DemandMinistryID})
	}
	return out, nil
}

// ApplyMove locks both columns, computes the new order and writes it in one transaction.
// lane is the ministry filter of the board toPos was read from (nil: whole church).
func ApplyMove(ctx context.Context, db *gorm.DB, churchID, demandID uuid.UUID, toStatus string, toPos int, lane *uuid.UUID) (*model.DemandModel, error) {
	if !model.IsDemandColumn(toStatus) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "status must be todo, doing or done")
	}
	var out model.DemandModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("demand_id = ? AND demand_church_id = ?", demandID, churchID).First(&out).Error; err != nil {
			return err
		}
		statuses := []string{toStatus}
		if out.DemandStatus != toStatus {
			statuses = append(statuses, out.DemandStatus)
		}
		board, err := loadBoard(tx, churchID, statuses)
		if err != nil {
			return err
		}
		changed, ok := MoveInLane(board, demandID, toStatus, toPos, lane)
		if !ok {
			return gorm.ErrRecordNotFound
		}
		for _, c := range changed {
			if err := tx.Model(&model.DemandModel{}).
				Where("demand_id = ?", c.ID).
				Updates(map[string]any{"demand_status": c.Status, "demand_position": c.Position}).Error; err != nil {
				return err
			}
			if c.ID == demandID {
				out.DemandStatus, out.DemandPosition = c.Status, c.Position
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseGap renumbers a column after a card left it.
func CloseGap(ctx context.Context, db *gorm.DB, churchID uuid.UUID, status string) error {
	return db.WithContext(ctx).Exec(`
		UPDATE ministry_demands d SET demand_position = r.rn - 1
		FROM (
			SELECT demand_id, ROW_NUMBER() OVER (ORDER BY demand_position, demand_created_at) AS rn
			FROM ministry_demands WHERE demand_church_id = ? AND demand_status = ?
		) r
		WHERE d.demand_id = r.demand_id AND d.demand_position <> r.rn - 1`, churchID, status).Error
}

func AppendPosition(ctx context.Context, db *gorm.DB, churchID uuid.UUID, status string) (int, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.DemandModel{}).
		Where("demand_church_id = ? AND demand_status = ?", churchID, status).
		Count(&n).Error
	return int(n), err
}
