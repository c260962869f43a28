package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/dbtest"
)

func TestSecondPendingPlanChangeConflicts(t *testing.T) {
	db, mock := dbtest.New(t)
	church, current, wanted := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "churches" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"church_id", "church_name", "church_plan_id"}).
			AddRow(church.String(), "Graça", current.String()))
	mock.ExpectQuery(`SELECT \* FROM "plans" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"plan_id", "plan_code"}).AddRow(wanted.String(), "pro"))
	// uq_plan_change_pending allows one pending row per church
	mock.ExpectQuery(`INSERT INTO "plan_change_requests"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocChurchID, church.String())
		return c.Next()
	})
	app.Post("/plan-requests", NewPlanChangeController(db, nil).Create)

	req := httptest.NewRequest("POST", "/plan-requests", strings.NewReader(`{"plan_id":"`+wanted.String()+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
