package model

import (
	"time"

	"github.com/google/uuid"
)

// RevokedAccessTokenModel keeps logged-out access tokens until they would expire anyway.
type RevokedAccessTokenModel struct {
	RevokedTokenID uuid.UUID `gorm:"column:revoked_token_id;type:uuid;default:gen_random_uuid();primaryKey" json:"revoked_token_id"`
	// sha256 of the raw JWT
	RevokedTokenHash      []byte    `gorm:"column:revoked_token_hash;type:bytea;not null;uniqueIndex:uq_revoked_tokens_hash" json:"-"`
	RevokedTokenExpiresAt time.Time `gorm:"column:revoked_token_expires_at;type:timestamptz;not null;index" json:"revoked_token_expires_at"`
	RevokedTokenCreatedAt time.Time `gorm:"column:revoked_token_created_at;type:timestamptz;autoCreateTime" json:"revoked_token_created_at"`
}

func (RevokedAccessTokenModel) TableName() string { return "revoked_access_tokens" }
