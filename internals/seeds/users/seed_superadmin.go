package users

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	authService "ecclesia_backend/internals/features/users/auth/service"
	"ecclesia_backend/internals/features/users/users/model"
)

// EnsureSuperadmin creates the platform owner account, or promotes an
// existing account with the same e-mail. The password is only set on create.
func EnsureSuperadmin(db *gorm.DB, userName, email, password string) (created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(userName) == "" {
		return false, errors.New("user name and e-mail are required")
	}

	var existing model.UserModel
	err = db.Where("LOWER(email) = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Updates(map[string]any{
			"role":      constants.RoleSuperadmin,
			"is_active": true,
		}).Error; err != nil {
			return false, err
		}
		log.Printf("ℹ️ user %q promoted to superadmin", email)
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, err
	}

	hash, err := authService.HashPassword(password)
	if err != nil {
		return false, err
	}
	u := model.UserModel{
		UserName: strings.TrimSpace(userName),
		Email:    email,
		Password: hash,
		Role:     constants.RoleSuperadmin,
		IsActive: true,
	}
	if err := db.Create(&u).Error; err != nil {
		return false, err
	}
	log.Printf("✅ superadmin %q created", email)
	return true, nil
}
