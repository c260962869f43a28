package model

import (
	"time"

	"github.com/google/uuid"
)

type PlanModel struct {
	PlanID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:plan_id" json:"plan_id"`
	PlanCode             string    `gorm:"type:varchar(40);not null;uniqueIndex;column:plan_code" json:"plan_code"`
	PlanName             string    `gorm:"type:varchar(100);not null;column:plan_name" json:"plan_name"`
	PlanDescription      *string   `gorm:"type:text;column:plan_description" json:"plan_description,omitempty"`
	PlanPriceCents       int64     `gorm:"not null;default:0;column:plan_price_cents" json:"plan_price_cents"`
	PlanMaxMembers       int       `gorm:"not null;default:0;column:plan_max_members" json:"plan_max_members"`
	PlanMaxChildChurches int       `gorm:"not null;default:0;column:plan_max_child_churches" json:"plan_max_child_churches"`
	PlanIsActive         bool      `gorm:"not null;default:true;column:plan_is_active" json:"plan_is_active"`
	PlanCreatedAt        time.Time `gorm:"column:plan_created_at;autoCreateTime" json:"plan_created_at"`
	PlanUpdatedAt        time.Time `gorm:"column:plan_updated_at;autoUpdateTime" json:"plan_updated_at"`
}

func (PlanModel) TableName() string { return "plans" }

// DefaultPlans is what `admin seed-plans` upserts. 0 limits mean unlimited.
var DefaultPlans = []PlanModel{
	{PlanCode: "basic", PlanName: "Basic", PlanPriceCents: 4990, PlanMaxMembers: 100, PlanMaxChildChurches: 0, PlanIsActive: true},
	{PlanCode: "growth", PlanName: "Growth", PlanPriceCents: 9990, PlanMaxMembers: 500, PlanMaxChildChurches: 3, PlanIsActive: true},
	{PlanCode: "network", PlanName: "Network", PlanPriceCents: 19990, PlanMaxMembers: 0, PlanMaxChildChurches: 0, PlanIsActive: true},
}
