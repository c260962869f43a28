package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MemberStatusVisitor     = "visitor"
	MemberStatusActive      = "active"
	MemberStatusInactive    = "inactive"
	MemberStatusTransferred = "transferred"
)

var MemberStatuses = []string{MemberStatusVisitor, MemberStatusActive, MemberStatusInactive, MemberStatusTransferred}

type MemberModel struct {
	MemberID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:member_id" json:"member_id"`
	MemberChurchID uuid.UUID  `gorm:"type:uuid;not null;column:member_church_id;index:idx_members_church_role,priority:1;index:idx_members_church_status,priority:1" json:"member_church_id"`
	MemberUserID   *uuid.UUID `gorm:"type:uuid;column:member_user_id;uniqueIndex:uq_members_church_user,where:member_user_id IS NOT NULL AND member_deleted_at IS NULL" json:"member_user_id,omitempty"`

	MemberName          string     `gorm:"type:varchar(150);not null;column:member_name" json:"member_name"`
	MemberEmail         *string    `gorm:"type:varchar(255);column:member_email" json:"member_email,omitempty"`
	MemberPhone         *string    `gorm:"type:varchar(32);column:member_phone" json:"member_phone,omitempty"`
	MemberBirthDate     *time.Time `gorm:"type:date;column:member_birth_date" json:"member_birth_date,omitempty"`
	MemberGender        *string    `gorm:"type:varchar(16);column:member_gender" json:"member_gender,omitempty"`
	MemberMaritalStatus *string    `gorm:"type:varchar(32);column:member_marital_status" json:"member_marital_status,omitempty"`
	MemberAddress       *string    `gorm:"type:text;column:member_address" json:"member_address,omitempty"`

	MemberRole     string     `gorm:"type:varchar(20);not null;default:'member';column:member_role;index:idx_members_church_role,priority:2" json:"member_role"`
	MemberStatus   string     `gorm:"type:varchar(20);not null;default:'visitor';column:member_status;index:idx_members_church_status,priority:2" json:"member_status"`
	MemberBaptized bool       `gorm:"not null;default:false;column:member_baptized" json:"member_baptized"`
	MemberJoinedAt *time.Time `gorm:"type:date;column:member_joined_at" json:"member_joined_at,omitempty"`
	MemberPhotoURL *string    `gorm:"type:text;column:member_photo_url" json:"member_photo_url,omitempty"`
	MemberNotes    *string    `gorm:"type:text;column:member_notes" json:"member_notes,omitempty"`

	MemberCreatedAt time.Time      `gorm:"column:member_created_at;autoCreateTime" json:"member_created_at"`
	MemberUpdatedAt time.Time      `gorm:"column:member_updated_at;autoUpdateTime" json:"member_updated_at"`
	MemberDeletedAt gorm.DeletedAt `gorm:"column:member_deleted_at;index" json:"-"`
}

func (MemberModel) TableName() string { return "members" }
