package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type KidModel struct {
	KidID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:kid_id" json:"kid_id"`
	KidChurchID          uuid.UUID      `gorm:"type:uuid;not null;index;column:kid_church_id" json:"kid_church_id"`
	KidName              string         `gorm:"type:varchar(150);not null;column:kid_name" json:"kid_name"`
	KidBirthDate         *time.Time     `gorm:"type:date;column:kid_birth_date" json:"kid_birth_date,omitempty"`
	KidGuardianMemberIDs pq.StringArray `gorm:"type:uuid[];not null;default:'{}';column:kid_guardian_member_ids" json:"kid_guardian_member_ids"`
	KidAllergies         pq.StringArray `gorm:"type:text[];not null;default:'{}';column:kid_allergies" json:"kid_allergies"`
	KidNotes             *string        `gorm:"type:text;column:kid_notes" json:"kid_notes,omitempty"`
	KidCreatedAt         time.Time      `gorm:"column:kid_created_at;autoCreateTime" json:"kid_created_at"`
	KidUpdatedAt         time.Time      `gorm:"column:kid_updated_at;autoUpdateTime" json:"kid_updated_at"`
	KidDeletedAt         gorm.DeletedAt `gorm:"column:kid_deleted_at;index" json:"-"`
}

func (KidModel) TableName() string { return "kids" }

// KidCheckinModel is open while KidCheckinCheckedOutAt is nil; a kid has at
// most one open row.
type KidCheckinModel struct {
	KidCheckinID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:kid_checkin_id" json:"kid_checkin_id"`
	KidCheckinChurchID       uuid.UUID  `gorm:"type:uuid;not null;index;column:kid_checkin_church_id" json:"kid_checkin_church_id"`
	KidCheckinKidID          uuid.UUID  `gorm:"type:uuid;not null;column:kid_checkin_kid_id;uniqueIndex:uq_kid_checkin_open,where:kid_checkin_checked_out_at IS NULL" json:"kid_checkin_kid_id"`
	KidCheckinCode           string     `gorm:"type:varchar(6);not null;column:kid_checkin_code" json:"kid_checkin_code,omitempty"`
	KidCheckinRoom           *string    `gorm:"type:varchar(80);column:kid_checkin_room" json:"kid_checkin_room,omitempty"`
	KidCheckinCheckedInAt    time.Time  `gorm:"column:kid_checkin_checked_in_at;autoCreateTime" json:"kid_checkin_checked_in_at"`
	KidCheckinCheckedInBy    *uuid.UUID `gorm:"type:uuid;column:kid_checkin_checked_in_by" json:"kid_checkin_checked_in_by,omitempty"`
	KidCheckinCheckedOutAt   *time.Time `gorm:"column:kid_checkin_checked_out_at" json:"kid_checkin_checked_out_at,omitempty"`
	KidCheckinCheckedOutBy   *uuid.UUID `gorm:"type:uuid;column:kid_checkin_checked_out_by" json:"kid_checkin_checked_out_by,omitempty"`
	KidCheckinPickupMemberID *uuid.UUID `gorm:"type:uuid;column:kid_checkin_pickup_member_id" json:"kid_checkin_pickup_member_id,omitempty"`

	Kid *KidModel `gorm:"foreignKey:KidCheckinKidID;references:KidID;constraint:OnDelete:CASCADE" json:"kid,omitempty"`
}

func (KidCheckinModel) TableName() string { return "kid_checkins" }
