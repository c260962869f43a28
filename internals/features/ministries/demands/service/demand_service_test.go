package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/helpers/dbtest"
)

var demandCols = []string{"demand_id", "demand_church_id", "demand_status", "demand_position", "demand_ministry_id"}

func TestApplyMoveWritesLaneOrder(t *testing.T) {
	db, mock := dbtest.New(t)
	church, choir, youth := uuid.New(), uuid.New(), uuid.New()
	b, a, m := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "ministry_demands" WHERE`).
		WillReturnRows(sqlmock.NewRows(demandCols).AddRow(m.String(), church.String(), "todo", 2, choir.String()))
	mock.ExpectQuery(`SELECT demand_id, demand_status, demand_position, demand_ministry_id FROM "ministry_demands" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(demandCols).
			AddRow(b.String(), church.String(), "todo", 0, youth.String()).
			AddRow(a.String(), church.String(), "todo", 1, choir.String()).
			AddRow(m.String(), church.String(), "todo", 2, choir.String()))
	// b keeps slot 0; m goes in front of a
	update := `UPDATE "ministry_demands" SET "demand_position"=\$1,"demand_status"=\$2,"demand_updated_at"=\$3 WHERE demand_id = \$4`
	mock.ExpectExec(update).WithArgs(1, "todo", sqlmock.AnyArg(), m).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(update).WithArgs(2, "todo", sqlmock.AnyArg(), a).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	d, err := ApplyMove(context.Background(), db, church, m, "todo", 0, &choir)
	require.NoError(t, err)
	assert.Equal(t, "todo", d.DemandStatus)
	assert.Equal(t, 1, d.DemandPosition)
}

func TestApplyMoveUnknownColumn(t *testing.T) {
	db, _ := dbtest.New(t)
	_, err := ApplyMove(context.Background(), db, uuid.New(), uuid.New(), "blocked", 0, nil)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestCloseGapRenumbersColumn(t *testing.T) {
	db, mock := dbtest.New(t)
	church := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE ministry_demands d SET demand_position = r.rn - 1`)+
		`(?s).*`+regexp.QuoteMeta(`WHERE demand_church_id = $1 AND demand_status = $2`)).
		WithArgs(church, "doing").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, CloseGap(context.Background(), db, church, "doing"))
}

func TestEnsureMinistry(t *testing.T) {
	church, ministry := uuid.New(), uuid.New()
	count := `SELECT count\(\*\) FROM "ministries" WHERE .*ministry_deleted_at" IS NULL`

	t.Run("nil is allowed", func(t *testing.T) {
		db, _ := dbtest.New(t)
		assert.NoError(t, EnsureMinistry(context.Background(), db, church, nil))
	})

	t.Run("own church", func(t *testing.T) {
		db, mock := dbtest.New(t)
		mock.ExpectQuery(count).WithArgs(ministry, church).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		assert.NoError(t, EnsureMinistry(context.Background(), db, church, &ministry))
	})

	t.Run("other church", func(t *testing.T) {
		db, mock := dbtest.New(t)
		mock.ExpectQuery(count).WithArgs(ministry, church).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		err := EnsureMinistry(context.Background(), db, church, &ministry)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusNotFound, fe.Code)
	})
}
