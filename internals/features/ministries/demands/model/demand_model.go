package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DemandTodo  = "todo"
	DemandDoing = "doing"
	DemandDone  = "done"
)

var DemandColumns = []string{DemandTodo, DemandDoing, DemandDone}

func IsDemandColumn(s string) bool {
	for _, c := range DemandColumns {
		if c == s {
			return true
		}
	}
	return false
}

type DemandModel struct {
	DemandID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:demand_id" json:"demand_id"`
	DemandChurchID         uuid.UUID  `gorm:"type:uuid;not null;column:demand_church_id;index:idx_demands_board,priority:1" json:"demand_church_id"`
	DemandMinistryID       *uuid.UUID `gorm:"type:uuid;column:demand_ministry_id;index" json:"demand_ministry_id,omitempty"`
	DemandTitle            string     `gorm:"type:varchar(200);not null;column:demand_title" json:"demand_title"`
	DemandDescription      *string    `gorm:"type:text;column:demand_description" json:"demand_description,omitempty"`
	DemandStatus           string     `gorm:"type:varchar(10);not null;default:'todo';column:demand_status;index:idx_demands_board,priority:2" json:"demand_status"`
	DemandPosition         int        `gorm:"not null;default:0;column:demand_position;index:idx_demands_board,priority:3" json:"demand_position"`
	DemandDueDate          *time.Time `gorm:"type:date;column:demand_due_date" json:"demand_due_date,omitempty"`
	DemandAssigneeMemberID *uuid.UUID `gorm:"type:uuid;column:demand_assignee_member_id" json:"demand_assignee_member_id,omitempty"`
	DemandCreatedAt        time.Time  `gorm:"column:demand_created_at;autoCreateTime" json:"demand_created_at"`
	DemandUpdatedAt        time.Time  `gorm:"column:demand_updated_at;autoUpdateTime" json:"demand_updated_at"`
}

func (DemandModel) TableName() string { return "ministry_demands" }
