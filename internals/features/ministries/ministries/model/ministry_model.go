package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MinistryModel struct {
	MinistryID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:ministry_id" json:"ministry_id"`
	MinistryChurchID       uuid.UUID      `gorm:"type:uuid;not null;index;column:ministry_church_id" json:"ministry_church_id"`
	MinistryName           string         `gorm:"type:varchar(120);not null;column:ministry_name" json:"ministry_name"`
	MinistryDescription    *string        `gorm:"type:text;column:ministry_description" json:"ministry_description,omitempty"`
	MinistryLeaderMemberID *uuid.UUID     `gorm:"type:uuid;column:ministry_leader_member_id" json:"ministry_leader_member_id,omitempty"`
	MinistryColor          *string        `gorm:"type:varchar(16);column:ministry_color" json:"ministry_color,omitempty"`
	MinistryCreatedAt      time.Time      `gorm:"column:ministry_created_at;autoCreateTime" json:"ministry_created_at"`
	MinistryUpdatedAt      time.Time      `gorm:"column:ministry_updated_at;autoUpdateTime" json:"ministry_updated_at"`
	MinistryDeletedAt      gorm.DeletedAt `gorm:"column:ministry_deleted_at;index" json:"-"`
}

func (MinistryModel) TableName() string { return "ministries" }

type VolunteerModel struct {
	VolunteerID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:volunteer_id" json:"volunteer_id"`
	VolunteerChurchID   uuid.UUID `gorm:"type:uuid;not null;index;column:volunteer_church_id" json:"volunteer_church_id"`
	VolunteerMinistryID uuid.UUID `gorm:"type:uuid;not null;column:volunteer_ministry_id;uniqueIndex:uq_volunteer_ministry_member,priority:1" json:"volunteer_ministry_id"`
	VolunteerMemberID   uuid.UUID `gorm:"type:uuid;not null;column:volunteer_member_id;uniqueIndex:uq_volunteer_ministry_member,priority:2" json:"volunteer_member_id"`
	VolunteerFunction   *string   `gorm:"type:varchar(80);column:volunteer_function" json:"volunteer_function,omitempty"`
	VolunteerCreatedAt  time.Time `gorm:"column:volunteer_created_at;autoCreateTime" json:"volunteer_created_at"`

	Ministry *MinistryModel `gorm:"foreignKey:VolunteerMinistryID;references:MinistryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (VolunteerModel) TableName() string { return "ministry_volunteers" }
