package service

import (
	"context"
	"errors"
	"log"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/configs"
	"ecclesia_backend/internals/constants"
	memberModel "ecclesia_backend/internals/features/members/members/model"
	memberService "ecclesia_backend/internals/features/members/members/service"
	authRepo "ecclesia_backend/internals/features/users/auth/repository"
	userModel "ecclesia_backend/internals/features/users/users/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

/* ==========================
   Requests
========================== */

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3"`
	Password   string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type JoinChurchRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	UserName string `json:"user_name" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

func userResponse(u userModel.UserModel, churchRole string) fiber.Map {
	return fiber.Map{
		"id":          u.ID,
		"user_name":   u.UserName,
		"email":       u.Email,
		"role":        u.Role,
		"church_id":   u.ChurchID,
		"church_role": churchRole,
	}
}

func loginResponse(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel, message string) error {
	data, err := TokenResponse(c, db, user)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, message, data)
}

// TokenResponse issues tokens and returns the login payload.
func TokenResponse(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) (fiber.Map, error) {
	pair, err := IssueTokens(c, db, user)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"user":          userResponse(user, pair.ChurchRole),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.ExpiresAt,
	}, nil
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input LoginRequest
	if ok, err := helper.ParseAndValidate(c, &input); !ok {
		return err
	}
	input.Identifier = strings.TrimSpace(input.Identifier)

	user, err := authRepo.FindUserByEmailOrUsername(db, input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid identifier or password")
		}
		return err
	}
	if CheckPasswordHash(user.Password, input.Password) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid identifier or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact your church admin.")
	}
	return loginResponse(c, db, *user, "Login successful")
}

/* ==========================
   LOGIN GOOGLE (existing accounts only)
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input GoogleLoginRequest
	if ok, err := helper.ParseAndValidate(c, &input); !ok {
		return err
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Google login is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Failed to decode Google ID token")
	}

	user, err := authRepo.FindUserByEmail(db, claimSet.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No account registered with this Google e-mail")
		}
		return err
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact your church admin.")
	}
	if user.GoogleID == nil && claimSet.Sub != "" {
		if err := authRepo.LinkGoogleID(db, user.ID, claimSet.Sub); err != nil {
			log.Printf("[WARN] link google id for %s: %v", user.ID, err)
		}
	}
	return loginResponse(c, db, *user, "Login successful")
}

/* ==========================
   REFRESH (rotation)
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return err
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	stored, err := authRepo.FindActiveRefreshToken(db, ComputeRefreshHash(raw, refreshSecret))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token unknown or revoked")
		}
		return err
	}
	if err := authRepo.RevokeRefreshToken(db, stored.RefreshTokenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token already used")
		}
		return err
	}

	user, err := authRepo.FindUserByID(db, stored.RefreshTokenUserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	return loginResponse(c, db, *user, "Token refreshed")
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helper.GetRawAccessToken(c)
	if accessToken != "" {
		secret, _ := getJWTSecret()
		ttl := ResolveBlacklistTTL(accessToken, secret, nowUTC())
		if err := authRepo.RevokeAccessToken(db, accessToken, ttl); err != nil {
			log.Printf("[WARN] failed to blacklist token: %v", err)
		}
	}

	if rt := helper.GetRefreshTokenFromCookie(c); rt != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, ComputeRefreshHash(rt, secret))
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}

	out := fiber.Map{"user": userResponse(*user, "")}
	if user.ChurchID == nil {
		return helper.JsonOK(c, "ok", out)
	}

	var church struct {
		ChurchID       uuid.UUID  `json:"church_id"`
		ChurchName     string     `json:"church_name"`
		ChurchSlug     string     `json:"church_slug"`
		ChurchStatus   string     `json:"church_status"`
		ChurchParentID *uuid.UUID `json:"church_parent_id,omitempty"`
	}
	if err := db.WithContext(c.UserContext()).
		Table("churches").
		Select("church_id, church_name, church_slug, church_status, church_parent_id").
		Where("church_id = ?", *user.ChurchID).
		Take(&church).Error; err == nil {
		out["church"] = church
	}

	var member memberModel.MemberModel
	if err := db.WithContext(c.UserContext()).
		Where("member_user_id = ? AND member_church_id = ?", user.ID, *user.ChurchID).
		Take(&member).Error; err == nil {
		out["member"] = member
		out["user"] = userResponse(*user, member.MemberRole)
	}
	return helper.JsonOK(c, "ok", out)
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input ChangePasswordRequest
	if ok, err := helper.ParseAndValidate(c, &input); !ok {
		return err
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if CheckPasswordHash(user.Password, input.CurrentPassword) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}
	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := authRepo.UpdateUserPassword(db, userID, hash); err != nil {
		return err
	}
	// other sessions must log in again
	if err := authRepo.DeleteRefreshTokensByUser(db, userID); err != nil {
		log.Printf("[WARN] drop refresh tokens for %s: %v", userID, err)
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

/* ==========================
   JOIN CHURCH (self sign-up as member)
========================== */

func JoinChurch(db *gorm.DB, c *fiber.Ctx) error {
	var input JoinChurchRequest
	if ok, err := helper.ParseAndValidate(c, &input); !ok {
		return err
	}
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))

	var church struct {
		ChurchID     uuid.UUID
		ChurchStatus string
	}
	if err := db.WithContext(c.UserContext()).
		Table("churches").
		Select("church_id, church_status").
		Where("LOWER(church_slug) = ? AND church_deleted_at IS NULL", slug).
		Take(&church).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Church not found")
		}
		return err
	}
	if constants.IsWriteBlocked(church.ChurchStatus) {
		return helper.JsonError(c, fiber.StatusPaymentRequired, "This church is not accepting sign-ups right now")
	}

	var user userModel.UserModel
	err := db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := memberService.EnsureCapacity(c.UserContext(), tx, church.ChurchID); err != nil {
			return err
		}
		u, err := NewChurchUser(c.UserContext(), tx, NewUserInput{
			UserName: input.UserName,
			Email:    input.Email,
			Password: input.Password,
			ChurchID: church.ChurchID,
		})
		if err != nil {
			return err
		}
		user = *u

		member := memberModel.MemberModel{
			MemberChurchID: church.ChurchID,
			MemberUserID:   &user.ID,
			MemberName:     strings.TrimSpace(input.Name),
			MemberEmail:    &user.Email,
			MemberPhone:    helper.StrPtr(input.Phone),
			MemberRole:     constants.ChurchRoleMember,
			MemberStatus:   memberModel.MemberStatusVisitor,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "E-mail or user name already registered")
		}
		return err
	}

	data, err := TokenResponse(c, db, user)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Welcome! Your account was created", data)
}

/* ==========================
   Users shared with provisioning
========================== */

type NewUserInput struct {
	UserName string
	Email    string
	Password string
	ChurchID uuid.UUID
	Role     string
}

// NewChurchUser hashes the password, derives a unique user name when empty and inserts the user.
func NewChurchUser(ctx context.Context, tx *gorm.DB, in NewUserInput) (*userModel.UserModel, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	emailAddr := strings.ToLower(strings.TrimSpace(in.Email))

	userName := strings.TrimSpace(in.UserName)
	if userName == "" {
		base := helper.Slugify(strings.SplitN(emailAddr, "@", 2)[0], 40)
		if base == "" {
			base = "user"
		}
		userName, err = helper.SlugSpace{Table: "users", Column: "user_name", MaxLen: 50}.Claim(ctx, tx, base)
		if err != nil {
			return nil, err
		}
	}

	role := in.Role
	if role == "" {
		role = constants.RoleUser
	}
	u := &userModel.UserModel{
		UserName: userName,
		Email:    emailAddr,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if in.ChurchID != uuid.Nil {
		cid := in.ChurchID
		u.ChurchID = &cid
	}
	if err := authRepo.CreateUser(tx.WithContext(ctx), u); err != nil {
		return nil, err
	}
	return u, nil
}
