package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	planModel "ecclesia_backend/internals/features/billing/plans/model"
	churchModel "ecclesia_backend/internals/features/churches/churches/model"
	churchService "ecclesia_backend/internals/features/churches/churches/service"
	memberModel "ecclesia_backend/internals/features/members/members/model"
	authService "ecclesia_backend/internals/features/users/auth/service"
	userModel "ecclesia_backend/internals/features/users/users/model"

	"ecclesia_backend/internals/constants"
	helper "ecclesia_backend/internals/helpers"
)

/* ===================== Inputs ===================== */

type ChurchInput struct {
	ChurchName  string  `json:"church_name" validate:"required,min=3,max=150"`
	ChurchEmail *string `json:"church_email" validate:"omitempty,email"`
	ChurchPhone *string `json:"church_phone" validate:"omitempty,max=32"`
	ChurchCity  *string `json:"church_city" validate:"omitempty,max=100"`
	ChurchState *string `json:"church_state" validate:"omitempty,max=100"`
}

type RegisterChurchRequest struct {
	ChurchInput
	PlanCode       string `json:"plan_code" validate:"omitempty,max=40"`
	PastorName     string `json:"pastor_name" validate:"required,min=2,max=150"`
	PastorEmail    string `json:"pastor_email" validate:"required,email"`
	PastorPassword string `json:"pastor_password" validate:"required,min=8"`
}

type CreateChildRequest struct {
	ChurchInput
	ParentID      *uuid.UUID `json:"parent_id"`
	AdminName     string     `json:"admin_name" validate:"required,min=2,max=150"`
	AdminEmail    string     `json:"admin_email" validate:"required,email"`
	AdminPassword string     `json:"admin_password" validate:"required,min=8"`
}

type ResetChildRequest struct {
	AdminPassword *string `json:"admin_password" validate:"omitempty,min=8"`
}

type Provisioned struct {
	Church churchModel.ChurchModel `json:"church"`
	User   userModel.UserModel     `json:"user"`
	Member memberModel.MemberModel `json:"member"`
}

/* ===================== Plans ===================== */

// ResolvePlan finds an active plan by code, or the cheapest active plan when code is empty.
func ResolvePlan(ctx context.Context, db *gorm.DB, code string) (*planModel.PlanModel, error) {
	var p planModel.PlanModel
	q := db.WithContext(ctx).Where("plan_is_active = TRUE")
	code = strings.ToLower(strings.TrimSpace(code))
	if code != "" {
		q = q.Where("plan_code = ?", code)
	} else {
		q = q.Order("plan_price_cents ASC, plan_created_at ASC")
	}
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if code != "" {
				return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown plan "+code)
			}
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func TrialEnd(now time.Time, trialDays int) time.Time {
	if trialDays <= 0 {
		trialDays = 14
	}
	return now.AddDate(0, 0, trialDays)
}

var churchSlugs = helper.SlugSpace{Table: "churches", Column: "church_slug", MaxLen: 120}

func newChurchRow(ctx context.Context, tx *gorm.DB, in ChurchInput) (*churchModel.ChurchModel, error) {
	base := helper.Slugify(in.ChurchName, 120)
	if base == "" {
		base = "church"
	}
	slug, err := churchSlugs.Claim(ctx, tx, base)
	if err != nil {
		return nil, err
	}
	return &churchModel.ChurchModel{
		ChurchName:  strings.TrimSpace(in.ChurchName),
		ChurchSlug:  slug,
		ChurchEmail: in.ChurchEmail,
		ChurchPhone: in.ChurchPhone,
		ChurchCity:  in.ChurchCity,
		ChurchState: in.ChurchState,
	}, nil
}

func leaderRows(ctx context.Context, tx *gorm.DB, church churchModel.ChurchModel, name, email, password, role string) (*Provisioned, error) {
	u, err := authService.NewChurchUser(ctx, tx, authService.NewUserInput{
		Email:    email,
		Password: password,
		ChurchID: church.ChurchID,
	})
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	m := memberModel.MemberModel{
		MemberChurchID: church.ChurchID,
		MemberUserID:   &u.ID,
		MemberName:     strings.TrimSpace(name),
		MemberEmail:    &u.Email,
		MemberRole:     role,
		MemberStatus:   memberModel.MemberStatusActive,
		MemberJoinedAt: &now,
	}
	if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &Provisioned{Church: church, User: *u, Member: m}, nil
}

/* ===================== Register ===================== */

// RegisterChurch creates a root church on trial with its pastor account.
func RegisterChurch(ctx context.Context, db *gorm.DB, req RegisterChurchRequest, trialDays int) (*Provisioned, error) {
	var out *Provisioned
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := ResolvePlan(ctx, tx, req.PlanCode)
		if err != nil {
			return err
		}
		church, err := newChurchRow(ctx, tx, req.ChurchInput)
		if err != nil {
			return err
		}
		next := TrialEnd(time.Now().UTC(), trialDays)
		church.ChurchStatus = constants.ChurchStatusTrial
		church.ChurchNextPaymentDate = &next
		if plan != nil {
			church.ChurchPlanID = &plan.PlanID
		}
		if err := tx.Create(church).Error; err != nil {
			return err
		}
		out, err = leaderRows(ctx, tx, *church, req.PastorName, req.PastorEmail, req.PastorPassword, constants.ChurchRolePastor)
		return err
	})
	if err != nil {
		return nil, conflictOr(err)
	}
	log.Printf("[INFO] church registered: %s (%s)", out.Church.ChurchSlug, out.Church.ChurchID)
	return out, nil
}

/* ===================== Children ===================== */

// CreateChild adds a child church under parent. The child inherits plan, status and due date.
func CreateChild(ctx context.Context, db *gorm.DB, parent churchModel.ChurchModel, req CreateChildRequest) (*Provisioned, error) {
	var out *Provisioned
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := churchService.CountChildren(ctx, tx, parent.ChurchID)
		if err != nil {
			return err
		}
		maxChildren := 0
		if parent.ChurchPlanID != nil {
			var p planModel.PlanModel
			if err := tx.First(&p, "plan_id = ?", *parent.ChurchPlanID).Error; err == nil {
				maxChildren = p.PlanMaxChildChurches
			}
		}
		if err := churchService.ParentForNewChild(parent, n, maxChildren); err != nil {
			return err
		}

		church, err := newChurchRow(ctx, tx, req.ChurchInput)
		if err != nil {
			return err
		}
		pid := parent.ChurchID
		church.ChurchParentID = &pid
		church.ChurchPlanID = parent.ChurchPlanID
		church.ChurchStatus = parent.ChurchStatus
		church.ChurchNextPaymentDate = parent.ChurchNextPaymentDate
		if err := tx.Create(church).Error; err != nil {
			return err
		}
		out, err = leaderRows(ctx, tx, *church, req.AdminName, req.AdminEmail, req.AdminPassword, constants.ChurchRoleAdmin)
		return err
	})
	if err != nil {
		return nil, conflictOr(err)
	}
	return out, nil
}

/* ===================== Wipe / Reset ===================== */

// WipePlan lists the tenant tables a wipe touches, in FK-safe order.
func WipePlan(keepBilling bool) []constants.TenantTable {
	order := constants.TenantDeletionOrder()
	if !keepBilling {
		return order
	}
	out := make([]constants.TenantTable, 0, len(order))
	for _, t := range order {
		if !constants.BillingTables[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// documentKeys collects OSS keys before their rows disappear.
func documentKeys(tx *gorm.DB, churchIDs []uuid.UUID) ([]string, error) {
	var keys []string
	err := tx.Table("pastor_documents").
		Where("document_church_id IN ?", churchIDs).
		Pluck("document_object_key", &keys).Error
	return keys, err
}

func wipeTenant(tx *gorm.DB, churchID uuid.UUID, keepBilling bool) error {
	for _, t := range WipePlan(keepBilling) {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.Name, t.ChurchColumn), churchID).Error; err != nil {
			return fmt.Errorf("wipe %s: %w", t.Name, err)
		}
	}
	return nil
}

type seatedUser struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
}

// ResetChild deletes every tenant-scoped row of the child, keeps its users and
// re-seeds one member row per user with the role it had. Returns OSS keys to drop.
func ResetChild(ctx context.Context, db *gorm.DB, child churchModel.ChurchModel, req ResetChildRequest) ([]string, error) {
	if child.IsRoot() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Only child churches can be reset")
	}
	var keys []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seated []seatedUser
		if err := tx.Table("users AS u").
			Select("u.id AS user_id, u.email, COALESCE(m.member_name, u.user_name) AS name, COALESCE(m.member_role, ?) AS role", constants.ChurchRoleMember).
			Joins("LEFT JOIN members m ON m.member_user_id = u.id AND m.member_church_id = u.church_id AND m.member_deleted_at IS NULL").
			Where("u.church_id = ? AND u.deleted_at IS NULL", child.ChurchID).
			Scan(&seated).Error; err != nil {
			return err
		}

		var err error
		if keys, err = documentKeys(tx, []uuid.UUID{child.ChurchID}); err != nil {
			return err
		}
		if err := wipeTenant(tx, child.ChurchID, true); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, s := range seated {
			uid, email := s.UserID, s.Email
			m := memberModel.MemberModel{
				MemberChurchID: child.ChurchID,
				MemberUserID:   &uid,
				MemberName:     s.Name,
				MemberEmail:    &email,
				MemberRole:     s.Role,
				MemberStatus:   memberModel.MemberStatusActive,
				MemberJoinedAt: &now,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			if req.AdminPassword != nil && constants.HasRole(s.Role, constants.AdminRoles) {
				hash, err := authService.HashPassword(*req.AdminPassword)
				if err != nil {
					return err
				}
				if err := tx.Model(&userModel.UserModel{}).Where("id = ?", uid).Update("password", hash).Error; err != nil {
					return err
				}
				if err := tx.Exec("DELETE FROM refresh_tokens WHERE refresh_token_user_id = ?", uid).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

/* ===================== Delete ===================== */

// DeleteChurchCascade removes children first, then every tenant table in
// dependency order, then users and finally the church row.
func DeleteChurchCascade(ctx context.Context, db *gorm.DB, churchID uuid.UUID) ([]string, error) {
	var keys []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var childIDs []uuid.UUID
		if err := tx.Unscoped().Model(&churchModel.ChurchModel{}).
			Where("church_parent_id = ?", churchID).
			Pluck("church_id", &childIDs).Error; err != nil {
			return err
		}
		all := append(childIDs, churchID)

		var err error
		if keys, err = documentKeys(tx, all); err != nil {
			return err
		}
		for _, id := range all {
			if err := wipeTenant(tx, id, false); err != nil {
				return err
			}
			if err := deleteUsersOf(tx, id); err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&churchModel.ChurchModel{}, "church_id = ?", id).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] church %s deleted with cascade (%d documents)", churchID, len(keys))
	return keys, nil
}

func deleteUsersOf(tx *gorm.DB, churchID uuid.UUID) error {
	if err := tx.Exec("DELETE FROM refresh_tokens WHERE refresh_token_user_id IN (SELECT id FROM users WHERE church_id = ?)", churchID).Error; err != nil {
		return err
	}
	return tx.Unscoped().
		Where("church_id = ? AND role <> ?", churchID, constants.RoleSuperadmin).
		Delete(&userModel.UserModel{}).Error
}

// SystemReset empties every tenant table for all churches. Plans and superadmins stay.
func SystemReset(ctx context.Context, db *gorm.DB) ([]string, error) {
	var keys []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("pastor_documents").Pluck("document_object_key", &keys).Error; err != nil {
			return err
		}
		for _, t := range constants.TenantDeletionOrder() {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s", t.Name)).Error; err != nil {
				return fmt.Errorf("reset %s: %w", t.Name, err)
			}
		}
		if err := tx.Exec("DELETE FROM refresh_tokens WHERE refresh_token_user_id IN (SELECT id FROM users WHERE role <> ?)", constants.RoleSuperadmin).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("role <> ?", constants.RoleSuperadmin).Delete(&userModel.UserModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&userModel.UserModel{}).Where("church_id IS NOT NULL").Update("church_id", nil).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM churches").Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[WARN] system reset executed")
	return keys, nil
}

// DeleteChurchUser removes a user account of churchID. The member row stays, detached.
func DeleteChurchUser(ctx context.Context, db *gorm.DB, churchID, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u userModel.UserModel
		if err := tx.Where("id = ? AND church_id = ?", targetID, churchID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found in this church")
			}
			return err
		}

		var role string
		if err := tx.Model(&memberModel.MemberModel{}).
			Where("member_user_id = ? AND member_church_id = ?", targetID, churchID).
			Select("member_role").Scan(&role).Error; err != nil {
			return err
		}
		if role == constants.ChurchRolePastor {
			var pastors int64
			if err := tx.Model(&memberModel.MemberModel{}).
				Where("member_church_id = ? AND member_role = ? AND member_user_id IS NOT NULL", churchID, constants.ChurchRolePastor).
				Count(&pastors).Error; err != nil {
				return err
			}
			if err := LastPastorGuard(pastors); err != nil {
				return err
			}
		}

		if err := tx.Model(&memberModel.MemberModel{}).
			Where("member_user_id = ?", targetID).
			Update("member_user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM refresh_tokens WHERE refresh_token_user_id = ?", targetID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&u).Error
	})
}

func LastPastorGuard(pastorsWithAccount int64) error {
	if pastorsWithAccount <= 1 {
		return fiber.NewError(fiber.StatusConflict, "The last pastor account of a church cannot be deleted")
	}
	return nil
}

func conflictOr(err error) error {
	if helper.IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusConflict, "E-mail already registered")
	}
	return err
}
