package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "ecclesia_backend/internals/features/users/auth/model"
	userModel "ecclesia_backend/internals/features/users/users/model"
	helper "ecclesia_backend/internals/helpers"
)

/* ====================== USER ====================== */

func FindUserByEmailOrUsername(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("LOWER(email) = LOWER(?) OR user_name = ?", identifier, identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", hash).Error
}

func LinkGoogleID(db *gorm.DB, userID uuid.UUID, googleID string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ? AND google_id IS NULL", userID).Update("google_id", googleID).Error
}

// Membership is the member row linked to a user.
type Membership struct {
	MemberID   uuid.UUID `gorm:"column:member_id"`
	ChurchID   uuid.UUID `gorm:"column:member_church_id"`
	MemberRole string    `gorm:"column:member_role"`
}

// FindMembership returns nil when the user has no member row in churchID.
func FindMembership(ctx context.Context, db *gorm.DB, userID, churchID uuid.UUID) (*Membership, error) {
	var m Membership
	res := db.WithContext(ctx).
		Table("members").
		Select("member_id, member_church_id, member_role").
		Where("member_user_id = ? AND member_church_id = ? AND member_deleted_at IS NULL", userID, churchID).
		Limit(1).
		Scan(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &m, nil
}

/* ====================== REFRESH TOKEN ====================== */

func CreateRefreshToken(db *gorm.DB, token *authModel.RefreshTokenModel) error {
	return db.Create(token).Error
}

func FindActiveRefreshToken(db *gorm.DB, hash []byte) (*authModel.RefreshTokenModel, error) {
	var rt authModel.RefreshTokenModel
	err := db.
		Where("refresh_token_hash = ? AND refresh_token_revoked_at IS NULL AND refresh_token_expires_at > ?", hash, time.Now().UTC()).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken returns gorm.ErrRecordNotFound when another request rotated
// the same token first, so a replay fails.
func RevokeRefreshToken(db *gorm.DB, id uuid.UUID) error {
	res := db.Model(&authModel.RefreshTokenModel{}).
		Where("refresh_token_id = ? AND refresh_token_revoked_at IS NULL", id).
		Update("refresh_token_revoked_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash []byte) error {
	return db.Where("refresh_token_hash = ?", hash).Delete(&authModel.RefreshTokenModel{}).Error
}

func DeleteRefreshTokensByUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("refresh_token_user_id = ?", userID).Delete(&authModel.RefreshTokenModel{}).Error
}

/* ====================== REVOKED ACCESS TOKEN ====================== */

func RevokeAccessToken(db *gorm.DB, raw string, ttl time.Duration) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&authModel.RevokedAccessTokenModel{
		RevokedTokenHash:      helper.AccessTokenDigest(raw),
		RevokedTokenExpiresAt: time.Now().UTC().Add(ttl),
	}).Error
}

func CleanupRevokedAccessTokens(db *gorm.DB) (int64, error) {
	res := db.Where("revoked_token_expires_at <= ?", time.Now().UTC()).Delete(&authModel.RevokedAccessTokenModel{})
	return res.RowsAffected, res.Error
}

func CleanupExpiredRefreshTokens(db *gorm.DB) (int64, error) {
	res := db.Where("refresh_token_expires_at <= ? OR refresh_token_revoked_at IS NOT NULL", time.Now().UTC()).
		Delete(&authModel.RefreshTokenModel{})
	return res.RowsAffected, res.Error
}

func IsUsernameTaken(db *gorm.DB, username string) (bool, error) {
	var exists bool
	err := db.
		Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE user_name = ? AND deleted_at IS NULL)`, username).
		Scan(&exists).Error
	return exists, err
}
