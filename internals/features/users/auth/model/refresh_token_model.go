package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel is one issued refresh token; rotation revokes it.
type RefreshTokenModel struct {
	RefreshTokenID     uuid.UUID `gorm:"column:refresh_token_id;type:uuid;default:gen_random_uuid();primaryKey" json:"refresh_token_id"`
	RefreshTokenUserID uuid.UUID `gorm:"column:refresh_token_user_id;type:uuid;not null;index:idx_refresh_tokens_user" json:"refresh_token_user_id"`

	// HMAC of the token, never the token itself
	RefreshTokenHash []byte `gorm:"column:refresh_token_hash;type:bytea;not null;uniqueIndex:uq_refresh_tokens_hash" json:"-"`

	RefreshTokenExpiresAt time.Time  `gorm:"column:refresh_token_expires_at;type:timestamptz;not null;index" json:"refresh_token_expires_at"`
	RefreshTokenRevokedAt *time.Time `gorm:"column:refresh_token_revoked_at;type:timestamptz" json:"refresh_token_revoked_at,omitempty"`

	RefreshTokenUserAgent *string `gorm:"column:refresh_token_user_agent;type:text" json:"refresh_token_user_agent,omitempty"`
	RefreshTokenIP        *string `gorm:"column:refresh_token_ip;type:varchar(64)" json:"refresh_token_ip,omitempty"`

	RefreshTokenCreatedAt time.Time `gorm:"column:refresh_token_created_at;type:timestamptz;autoCreateTime" json:"refresh_token_created_at"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }
