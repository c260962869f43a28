package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is a login account. Church role lives on the linked member row.
type UserModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string     `gorm:"size:50;not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	Email    string     `gorm:"size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Password string     `gorm:"not null" json:"-"`
	GoogleID *string    `gorm:"size:255;uniqueIndex:uq_users_google_id" json:"google_id,omitempty"`
	Role     string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	ChurchID *uuid.UUID `gorm:"type:uuid;column:church_id;index:idx_users_church_id" json:"church_id,omitempty"`
	IsActive bool       `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}
