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

	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/dbtest"
)

func TestCreateScheduleRosterChecks(t *testing.T) {
	church, ministry := uuid.New(), uuid.New()
	onRoster, offRoster := uuid.New(), uuid.New()

	cases := []struct {
		name    string
		members []uuid.UUID
		want    int
	}{
		{"member twice", []uuid.UUID{onRoster, onRoster}, fiber.StatusConflict},
		{"member outside the roster", []uuid.UUID{onRoster, offRoster}, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := dbtest.New(t)
			mock.ExpectQuery(`SELECT count\(\*\) FROM "ministries"`).WithArgs(ministry, church).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(`SELECT "volunteer_member_id" FROM "ministry_volunteers" WHERE volunteer_ministry_id = \$1`).
				WithArgs(ministry).
				WillReturnRows(sqlmock.NewRows([]string{"volunteer_member_id"}).AddRow(onRoster.String()))

			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals(helperAuth.LocChurchID, church.String())
				return c.Next()
			})
			app.Post("/schedules", NewScheduleController(db).Create)

			var assignments []string
			for _, m := range tc.members {
				assignments = append(assignments, `{"member_id":"`+m.String()+`"}`)
			}
			body := `{"ministry_id":"` + ministry.String() + `","title":"Sunday worship",` +
				`"service_date":"2026-03-01T10:00:00Z","assignments":[` + strings.Join(assignments, ",") + `]}`
			req := httptest.NewRequest("POST", "/schedules", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
