// Package sharing decides which church rows a viewer church can see when
// mother churches share records with their children.
package sharing

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type Visibility struct {
	ViewerID uuid.UUID
	ParentID *uuid.UUID
	// ChildIDs is only filled when a mother explicitly asks to include her children.
	ChildIDs []uuid.UUID
}

func FromCtx(c *fiber.Ctx) (Visibility, error) {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return Visibility{}, err
	}
	return Visibility{ViewerID: churchID, ParentID: helperAuth.GetParentChurchID(c)}, nil
}

// WithChildren adds the viewer's children (read-only listing for mother staff).
func (v Visibility) WithChildren(db *gorm.DB) (Visibility, error) {
	if v.ParentID != nil {
		return v, nil
	}
	var ids []uuid.UUID
	if err := db.Table("churches").
		Where("church_parent_id = ? AND church_deleted_at IS NULL", v.ViewerID).
		Pluck("church_id", &ids).Error; err != nil {
		return v, err
	}
	v.ChildIDs = ids
	return v, nil
}

// CanView: own rows, shared rows of the parent, and rows of listed children.
func CanView(v Visibility, owner uuid.UUID, shared bool) bool {
	if owner == v.ViewerID {
		return true
	}
	if v.ParentID != nil && owner == *v.ParentID && shared {
		return true
	}
	for _, id := range v.ChildIDs {
		if id == owner {
			return true
		}
	}
	return false
}

// CanEdit: only the owning church writes.
func CanEdit(v Visibility, owner uuid.UUID) bool {
	return owner == v.ViewerID
}

// Scope filters a query on churchCol/shareCol with the CanView rule.
func Scope(v Visibility, churchCol, shareCol string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		cond := db.Session(&gorm.Session{NewDB: true}).Where(fmt.Sprintf("%s = ?", churchCol), v.ViewerID)
		if v.ParentID != nil {
			cond = cond.Or(fmt.Sprintf("(%s = ? AND %s = TRUE)", churchCol, shareCol), *v.ParentID)
		}
		if len(v.ChildIDs) > 0 {
			cond = cond.Or(fmt.Sprintf("%s IN ?", churchCol), v.ChildIDs)
		}
		return db.Where(cond)
	}
}
