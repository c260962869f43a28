package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolModel struct {
	SchoolID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_id" json:"school_id"`
	SchoolChurchID          uuid.UUID      `gorm:"type:uuid;not null;index;column:school_church_id" json:"school_church_id"`
	SchoolName              string         `gorm:"type:varchar(150);not null;column:school_name" json:"school_name"`
	SchoolDescription       *string        `gorm:"type:text;column:school_description" json:"school_description,omitempty"`
	SchoolShareWithChildren bool           `gorm:"not null;default:false;column:school_share_with_children" json:"school_share_with_children"`
	SchoolCreatedAt         time.Time      `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt         time.Time      `gorm:"column:school_updated_at;autoUpdateTime" json:"school_updated_at"`
	SchoolDeletedAt         gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"-"`
}

func (SchoolModel) TableName() string { return "schools" }

// EnrollmentModel belongs to the church of the enrolled member, which may be
// a child of the church that owns the school.
type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_id" json:"enrollment_id"`
	EnrollmentChurchID  uuid.UUID `gorm:"type:uuid;not null;index;column:enrollment_church_id" json:"enrollment_church_id"`
	EnrollmentSchoolID  uuid.UUID `gorm:"type:uuid;not null;column:enrollment_school_id;uniqueIndex:uq_enrollment_school_member,priority:1" json:"enrollment_school_id"`
	EnrollmentMemberID  uuid.UUID `gorm:"type:uuid;not null;column:enrollment_member_id;uniqueIndex:uq_enrollment_school_member,priority:2" json:"enrollment_member_id"`
	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`

	School *SchoolModel `gorm:"foreignKey:EnrollmentSchoolID;references:SchoolID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EnrollmentModel) TableName() string { return "school_enrollments" }
