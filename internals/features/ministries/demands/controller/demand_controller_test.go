package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/dbtest"
)

func demandApp(db *gorm.DB, church uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocChurchID, church.String())
		return c.Next()
	})
	ctl := NewDemandController(db)
	app.Post("/demands", ctl.Create)
	app.Patch("/demands/:id", ctl.Update)
	return app
}

func TestCreateDemandRejectsForeignMinistry(t *testing.T) {
	db, mock := dbtest.New(t)
	church, foreign := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "ministries"`).WithArgs(foreign, church).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	body := `{"title":"Choir robes","ministry_id":"` + foreign.String() + `"}`
	req := httptest.NewRequest("POST", "/demands", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := demandApp(db, church).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateDemandRejectsForeignMinistry(t *testing.T) {
	db, mock := dbtest.New(t)
	church, foreign, id := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "ministry_demands" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"demand_id", "demand_church_id", "demand_title", "demand_status"}).
			AddRow(id.String(), church.String(), "Choir robes", "todo"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "ministries"`).WithArgs(foreign, church).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	body := `{"ministry_id":"` + foreign.String() + `"}`
	req := httptest.NewRequest("PATCH", "/demands/"+id.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := demandApp(db, church).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
