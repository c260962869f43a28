package controller

import (
	"net/http/httptest"
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

func TestSecondOpenCheckInConflicts(t *testing.T) {
	db, mock := dbtest.New(t)
	church, kid := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "kids" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"kid_id", "kid_church_id", "kid_name"}).
			AddRow(kid.String(), church.String(), "Lia"))
	// the partial unique index on open check-ins rejects the row
	mock.ExpectQuery(`INSERT INTO "kid_checkins"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocChurchID, church.String())
		return c.Next()
	})
	app.Post("/kids/:id/checkin", NewKidController(db).CheckIn)

	resp, err := app.Test(httptest.NewRequest("POST", "/kids/"+kid.String()+"/checkin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
