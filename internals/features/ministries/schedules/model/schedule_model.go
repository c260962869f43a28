package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AssignmentPending   = "pending"
	AssignmentConfirmed = "confirmed"
	AssignmentDeclined  = "declined"
)

type ScheduleModel struct {
	ScheduleID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:schedule_id" json:"schedule_id"`
	ScheduleChurchID    uuid.UUID      `gorm:"type:uuid;not null;column:schedule_church_id;index:idx_schedules_church_date,priority:1" json:"schedule_church_id"`
	ScheduleMinistryID  uuid.UUID      `gorm:"type:uuid;not null;index;column:schedule_ministry_id" json:"schedule_ministry_id"`
	ScheduleTitle       string         `gorm:"type:varchar(150);not null;column:schedule_title" json:"schedule_title"`
	ScheduleServiceDate time.Time      `gorm:"not null;column:schedule_service_date;index:idx_schedules_church_date,priority:2" json:"schedule_service_date"`
	ScheduleNotes       *string        `gorm:"type:text;column:schedule_notes" json:"schedule_notes,omitempty"`
	ScheduleCreatedAt   time.Time      `gorm:"column:schedule_created_at;autoCreateTime" json:"schedule_created_at"`
	ScheduleUpdatedAt   time.Time      `gorm:"column:schedule_updated_at;autoUpdateTime" json:"schedule_updated_at"`
	ScheduleDeletedAt   gorm.DeletedAt `gorm:"column:schedule_deleted_at;index" json:"-"`

	Assignments []ScheduleAssignmentModel `gorm:"foreignKey:AssignmentScheduleID;references:ScheduleID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

func (ScheduleModel) TableName() string { return "schedules" }

type ScheduleAssignmentModel struct {
	AssignmentID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:schedule_assignment_id" json:"assignment_id"`
	AssignmentChurchID    uuid.UUID  `gorm:"type:uuid;not null;index;column:schedule_assignment_church_id" json:"church_id"`
	AssignmentScheduleID  uuid.UUID  `gorm:"type:uuid;not null;column:schedule_assignment_schedule_id;uniqueIndex:uq_schedule_assignment_member,priority:1" json:"schedule_id"`
	AssignmentMemberID    uuid.UUID  `gorm:"type:uuid;not null;column:schedule_assignment_member_id;uniqueIndex:uq_schedule_assignment_member,priority:2;index" json:"member_id"`
	AssignmentFunction    *string    `gorm:"type:varchar(80);column:schedule_assignment_function" json:"function,omitempty"`
	AssignmentStatus      string     `gorm:"type:varchar(16);not null;default:'pending';column:schedule_assignment_status" json:"status"`
	AssignmentRespondedAt *time.Time `gorm:"column:schedule_assignment_responded_at" json:"responded_at,omitempty"`
	AssignmentCreatedAt   time.Time  `gorm:"column:schedule_assignment_created_at;autoCreateTime" json:"created_at"`
}

func (ScheduleAssignmentModel) TableName() string { return "schedule_assignments" }
