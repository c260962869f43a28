package model

import (
	"time"

	"github.com/google/uuid"

	planModel "ecclesia_backend/internals/features/billing/plans/model"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type PlanChangeModel struct {
	PlanChangeID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:plan_change_id" json:"plan_change_id"`
	PlanChangeChurchID    uuid.UUID  `gorm:"type:uuid;not null;column:plan_change_church_id;index;uniqueIndex:uq_plan_change_pending,where:plan_change_status = 'pending'" json:"plan_change_church_id"`
	PlanChangePlanID      uuid.UUID  `gorm:"type:uuid;not null;column:plan_change_plan_id" json:"plan_change_plan_id"`
	PlanChangeFromPlanID  *uuid.UUID `gorm:"type:uuid;column:plan_change_from_plan_id" json:"plan_change_from_plan_id,omitempty"`
	PlanChangeStatus      string     `gorm:"type:varchar(20);not null;default:'pending';column:plan_change_status;index" json:"plan_change_status"`
	PlanChangeReason      *string    `gorm:"type:text;column:plan_change_reason" json:"plan_change_reason,omitempty"`
	PlanChangeNote        *string    `gorm:"type:text;column:plan_change_note" json:"plan_change_note,omitempty"`
	PlanChangeRequestedBy *uuid.UUID `gorm:"type:uuid;column:plan_change_requested_by" json:"plan_change_requested_by,omitempty"`
	PlanChangeDecidedBy   *uuid.UUID `gorm:"type:uuid;column:plan_change_decided_by" json:"plan_change_decided_by,omitempty"`
	PlanChangeDecidedAt   *time.Time `gorm:"column:plan_change_decided_at" json:"plan_change_decided_at,omitempty"`
	PlanChangeCreatedAt   time.Time  `gorm:"column:plan_change_created_at;autoCreateTime" json:"plan_change_created_at"`

	Plan *planModel.PlanModel `gorm:"foreignKey:PlanChangePlanID;references:PlanID;constraint:OnDelete:RESTRICT" json:"plan,omitempty"`
}

func (PlanChangeModel) TableName() string { return "plan_change_requests" }
