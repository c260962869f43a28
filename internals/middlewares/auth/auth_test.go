package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

type fakeGuard struct {
	blacklisted map[string]bool
	inactive    map[uuid.UUID]bool
	missing     map[uuid.UUID]bool
}

func (g fakeGuard) IsBlacklisted(_ context.Context, raw string) (bool, error) {
	return g.blacklisted[raw], nil
}

func (g fakeGuard) UserActive(_ context.Context, id uuid.UUID) (bool, error) {
	if g.missing[id] {
		return false, gorm.ErrRecordNotFound
	}
	return !g.inactive[id], nil
}

type fakeLoader map[uuid.UUID]ChurchState

func (l fakeLoader) LoadChurch(_ context.Context, id uuid.UUID) (ChurchState, error) {
	st, ok := l[id]
	if !ok {
		return ChurchState{}, gorm.ErrRecordNotFound
	}
	return st, nil
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func accessClaims(userID, churchID uuid.UUID, role, churchRole string) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":         "access",
		"id":          userID.String(),
		"user_name":   "tester",
		"role":        role,
		"church_id":   churchID.String(),
		"church_role": churchRole,
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).SendString(err.Error())
		},
	})
	chain := append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":       c.Locals(helperAuth.LocUserID),
			"church_id":     c.Locals(helperAuth.LocChurchID),
			"church_role":   c.Locals(helperAuth.LocChurchRole),
			"church_status": c.Locals(helperAuth.LocChurchStatus),
		})
	})
	app.All("/x", chain...)
	return app
}

func do(t *testing.T, app *fiber.App, method, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthJWT(t *testing.T) {
	user, church := uuid.New(), uuid.New()
	inactive, missing := uuid.New(), uuid.New()
	revoked := sign(t, accessClaims(user, church, constants.RoleUser, "member"))

	guard := fakeGuard{
		blacklisted: map[string]bool{revoked: true},
		inactive:    map[uuid.UUID]bool{inactive: true},
		missing:     map[uuid.UUID]bool{missing: true},
	}
	app := newApp(AuthJWT(AuthJWTOpts{Secret: testSecret, Guard: guard}))

	expired := accessClaims(user, church, constants.RoleUser, "member")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	refresh := accessClaims(user, church, constants.RoleUser, "member")
	refresh["typ"] = "refresh"

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", fiber.StatusUnauthorized},
		{"garbage", "not-a-jwt", fiber.StatusUnauthorized},
		{"expired", sign(t, expired), fiber.StatusUnauthorized},
		{"refresh token used as access", sign(t, refresh), fiber.StatusUnauthorized},
		{"blacklisted", revoked, fiber.StatusUnauthorized},
		{"inactive user", sign(t, accessClaims(inactive, church, constants.RoleUser, "member")), fiber.StatusForbidden},
		{"unknown user", sign(t, accessClaims(missing, church, constants.RoleUser, "member")), fiber.StatusUnauthorized},
		{"valid", sign(t, accessClaims(uuid.New(), church, constants.RoleUser, "pastor")), fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, fiber.MethodGet, tt.token)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthJWTWrongSecret(t *testing.T) {
	app := newApp(AuthJWT(AuthJWTOpts{Secret: "other"}))
	tok := sign(t, accessClaims(uuid.New(), uuid.New(), constants.RoleUser, "member"))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, fiber.MethodGet, tok).StatusCode)
}

func TestAuthJWTCookieFallback(t *testing.T) {
	tok := sign(t, accessClaims(uuid.New(), uuid.New(), constants.RoleUser, "member"))

	for _, allow := range []bool{true, false} {
		app := newApp(AuthJWT(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: allow}))
		req := httptest.NewRequest(fiber.MethodGet, "/x", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
		resp, err := app.Test(req)
		require.NoError(t, err)
		if allow {
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		} else {
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		}
	}
}

func TestOnlyChurchRoles(t *testing.T) {
	church := uuid.New()
	app := newApp(
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		OnlyChurchRoles("finance only", constants.FinanceRoles...),
	)

	cases := map[string]int{
		constants.ChurchRoleTreasurer: fiber.StatusOK,
		constants.ChurchRolePastor:    fiber.StatusOK,
		constants.ChurchRoleMember:    fiber.StatusForbidden,
		constants.ChurchRoleTeacher:   fiber.StatusForbidden,
	}
	for role, want := range cases {
		tok := sign(t, accessClaims(uuid.New(), church, constants.RoleUser, role))
		assert.Equal(t, want, do(t, app, fiber.MethodGet, tok).StatusCode, role)
	}

	super := sign(t, accessClaims(uuid.New(), church, constants.RoleSuperadmin, ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodGet, super).StatusCode)
}

func TestOnlySuperadmin(t *testing.T) {
	app := newApp(AuthJWT(AuthJWTOpts{Secret: testSecret}), OnlySuperadmin())

	pastor := sign(t, accessClaims(uuid.New(), uuid.New(), constants.RoleUser, "pastor"))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, fiber.MethodGet, pastor).StatusCode)

	super := sign(t, accessClaims(uuid.New(), uuid.New(), constants.RoleSuperadmin, ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodGet, super).StatusCode)
}

func TestChurchScopeAndSuspendedWrites(t *testing.T) {
	active, suspended, unknown := uuid.New(), uuid.New(), uuid.New()
	loader := fakeLoader{
		active:    {Status: constants.ChurchStatusActive},
		suspended: {Status: constants.ChurchStatusSuspended},
	}
	app := newApp(
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		UseChurchScope(ChurchScopeOpts{Loader: loader, Required: true}),
		BlockSuspendedWrites("/api/a/billing"),
	)

	activeTok := sign(t, accessClaims(uuid.New(), active, constants.RoleUser, "admin"))
	suspendedTok := sign(t, accessClaims(uuid.New(), suspended, constants.RoleUser, "admin"))
	unknownTok := sign(t, accessClaims(uuid.New(), unknown, constants.RoleUser, "admin"))
	superTok := sign(t, accessClaims(uuid.New(), suspended, constants.RoleSuperadmin, ""))

	assert.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodPost, activeTok).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodGet, suspendedTok).StatusCode)
	assert.Equal(t, fiber.StatusPaymentRequired, do(t, app, fiber.MethodPost, suspendedTok).StatusCode)
	assert.Equal(t, fiber.StatusPaymentRequired, do(t, app, fiber.MethodDelete, suspendedTok).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodPost, superTok).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, do(t, app, fiber.MethodGet, unknownTok).StatusCode)

	noChurch := accessClaims(uuid.New(), uuid.Nil, constants.RoleUser, "member")
	delete(noChurch, "church_id")
	assert.Equal(t, fiber.StatusForbidden, do(t, app, fiber.MethodGet, sign(t, noChurch)).StatusCode)
}

func TestBlockSuspendedWritesExemptPrefix(t *testing.T) {
	church := uuid.New()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocChurchID, church.String())
		c.Locals(helperAuth.LocChurchStatus, constants.ChurchStatusCanceled)
		return c.Next()
	})
	app.Use(BlockSuspendedWrites("/api/a/billing"))
	app.Post("/api/a/billing/checkout", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Post("/api/a/members", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/a/billing/checkout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/api/a/members", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
}
