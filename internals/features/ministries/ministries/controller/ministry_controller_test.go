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

func TestAddVolunteerTwiceConflicts(t *testing.T) {
	db, mock := dbtest.New(t)
	church, ministry, member := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "ministries" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"ministry_id", "ministry_church_id", "ministry_name"}).
			AddRow(ministry.String(), church.String(), "Worship"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "ministry_volunteers"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_volunteer_member"})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocChurchID, church.String())
		return c.Next()
	})
	app.Post("/ministries/:id/volunteers", NewMinistryController(db).AddVolunteer)

	req := httptest.NewRequest("POST", "/ministries/"+ministry.String()+"/volunteers",
		strings.NewReader(`{"member_id":"`+member.String()+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
