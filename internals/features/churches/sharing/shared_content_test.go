package sharing_test

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	devotionalRoute "ecclesia_backend/internals/features/content/devotionals/route"
	eventRoute "ecclesia_backend/internals/features/content/events/route"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/dbtest"
)

// childApp serves the member content routes as a user of child, daughter of mother.
func childApp(db *gorm.DB, child, mother uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocChurchID, child.String())
		c.Locals(helperAuth.LocChurchParentID, mother.String())
		return c.Next()
	})
	eventRoute.EventUserRoutes(app, db)
	devotionalRoute.DevotionalUserRoutes(app, db)
	return app
}

func TestChildReadsMotherContent(t *testing.T) {
	mother, child, sibling := uuid.New(), uuid.New(), uuid.New()

	cases := []struct {
		name   string
		owner  uuid.UUID
		shared bool
		want   int
	}{
		{"shared by mother", mother, true, fiber.StatusOK},
		{"kept by mother", mother, false, fiber.StatusNotFound},
		{"own", child, false, fiber.StatusOK},
		{"shared by sibling", sibling, true, fiber.StatusNotFound},
	}
	kinds := []struct {
		path, table, prefix string
	}{
		{"/events/", "events", "event"},
		{"/devotionals/", "devotionals", "devotional"},
	}
	for _, k := range kinds {
		for _, tc := range cases {
			t.Run(k.table+"/"+tc.name, func(t *testing.T) {
				db, mock := dbtest.New(t)
				id := uuid.New()
				mock.ExpectQuery(`SELECT \* FROM "`+k.table+`" WHERE `+k.prefix+`_id = \$1`).
					WillReturnRows(sqlmock.NewRows([]string{
						k.prefix + "_id", k.prefix + "_church_id", k.prefix + "_title", k.prefix + "_share_with_children",
					}).AddRow(id.String(), tc.owner.String(), "Vigília", tc.shared))

				resp, err := childApp(db, child, mother).Test(httptest.NewRequest("GET", k.path+id.String(), nil))
				require.NoError(t, err)
				assert.Equal(t, tc.want, resp.StatusCode)
			})
		}
	}
}

func TestChildEventListIncludesSharedMotherRows(t *testing.T) {
	db, mock := dbtest.New(t)
	mother, child := uuid.New(), uuid.New()
	scope := `.*event_church_id = \$1 OR \(+event_church_id = \$2 AND event_share_with_children = TRUE\)`

	mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE` + scope).
		WithArgs(child, mother).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE` + scope + `.* ORDER BY event_starts_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "event_church_id", "event_title", "event_share_with_children"}).
			AddRow(uuid.NewString(), mother.String(), "Vigília", true))

	resp, err := childApp(db, child, mother).Test(httptest.NewRequest("GET", "/events", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
