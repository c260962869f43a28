package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/constants"
	churchModel "ecclesia_backend/internals/features/churches/churches/model"
	"ecclesia_backend/internals/helpers/dbtest"
)

func TestWipePlanKeepsBillingOnReset(t *testing.T) {
	full := WipePlan(false)
	reset := WipePlan(true)

	assert.Len(t, full, len(constants.TenantTables))
	assert.Len(t, reset, len(constants.TenantTables)-len(constants.BillingTables))
	for _, tbl := range reset {
		assert.False(t, constants.BillingTables[tbl.Name], tbl.Name)
	}
}

func TestWipePlanChildrenBeforeParents(t *testing.T) {
	pos := map[string]int{}
	for i, tbl := range WipePlan(false) {
		pos[tbl.Name] = i
	}
	assert.Less(t, pos["schedule_assignments"], pos["schedules"])
	assert.Less(t, pos["quiz_questions"], pos["passos"])
	assert.Less(t, pos["passos"], pos["etapas"])
	assert.Less(t, pos["etapas"], pos["trilhas"])
	assert.Less(t, pos["kid_checkins"], pos["members"])
}

func TestTrialEnd(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, 30), TrialEnd(now, 30))
	assert.Equal(t, now.AddDate(0, 0, 14), TrialEnd(now, 0))
}

func TestLastPastorGuard(t *testing.T) {
	assert.Error(t, LastPastorGuard(1))
	assert.Error(t, LastPastorGuard(0))
	assert.NoError(t, LastPastorGuard(2))
}

func exact(sql string) string { return "^" + regexp.QuoteMeta(sql) + "$" }

func expectWipe(mock sqlmock.Sqlmock, churchID uuid.UUID, keepBilling bool) {
	for _, t := range WipePlan(keepBilling) {
		mock.ExpectExec(exact(fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Name, t.ChurchColumn))).
			WithArgs(churchID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func TestDeleteChurchCascadeOrder(t *testing.T) {
	db, mock := dbtest.New(t)
	root, child := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(exact(`SELECT "church_id" FROM "churches" WHERE church_parent_id = $1`)).
		WithArgs(root).
		WillReturnRows(sqlmock.NewRows([]string{"church_id"}).AddRow(child.String()))
	mock.ExpectQuery(exact(`SELECT "document_object_key" FROM "pastor_documents" WHERE document_church_id IN ($1,$2)`)).
		WithArgs(child, root).
		WillReturnRows(sqlmock.NewRows([]string{"document_object_key"}).AddRow("docs/ordination.pdf"))
	// the child church goes first, each church fully before the next
	for _, id := range []uuid.UUID{child, root} {
		expectWipe(mock, id, false)
		mock.ExpectExec(exact(`DELETE FROM refresh_tokens WHERE refresh_token_user_id IN (SELECT id FROM users WHERE church_id = $1)`)).
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(exact(`DELETE FROM "users" WHERE church_id = $1 AND role <> $2`)).
			WithArgs(id, constants.RoleSuperadmin).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(exact(`DELETE FROM "churches" WHERE church_id = $1`)).
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	keys, err := DeleteChurchCascade(context.Background(), db, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/ordination.pdf"}, keys)
}

func TestDeleteChurchCascadeRollsBack(t *testing.T) {
	db, mock := dbtest.New(t)
	root := uuid.New()
	first := WipePlan(false)[0]

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "church_id" FROM "churches"`).
		WillReturnRows(sqlmock.NewRows([]string{"church_id"}))
	mock.ExpectQuery(`SELECT "document_object_key" FROM "pastor_documents"`).
		WillReturnRows(sqlmock.NewRows([]string{"document_object_key"}))
	mock.ExpectExec(exact(fmt.Sprintf("DELETE FROM %s WHERE %s = $1", first.Name, first.ChurchColumn))).
		WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	_, err := DeleteChurchCascade(context.Background(), db, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wipe "+first.Name)
}

func TestResetChildKeepsBillingAndReseatsUsers(t *testing.T) {
	db, mock := dbtest.New(t)
	parent, childID, user := uuid.New(), uuid.New(), uuid.New()
	child := churchModel.ChurchModel{ChurchID: childID, ChurchParentID: &parent}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT u.id AS user_id, u.email, .* FROM users AS u LEFT JOIN members m`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "name", "role"}).
			AddRow(user.String(), "lead@cong.org", "Ana", constants.ChurchRoleAdmin))
	mock.ExpectQuery(`SELECT "document_object_key" FROM "pastor_documents"`).
		WithArgs(childID).
		WillReturnRows(sqlmock.NewRows([]string{"document_object_key"}))
	// billing rows are not in the plan; sqlmock fails on any statement not expected here
	expectWipe(mock, childID, true)
	mock.ExpectQuery(`INSERT INTO "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"member_id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	keys, err := ResetChild(context.Background(), db, child, ResetChildRequest{})
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestResetChildRejectsRoot(t *testing.T) {
	db, _ := dbtest.New(t)
	_, err := ResetChild(context.Background(), db, churchModel.ChurchModel{ChurchID: uuid.New()}, ResetChildRequest{})
	assert.Error(t, err)
}

func TestDeleteChurchUserRoleLookupError(t *testing.T) {
	db, mock := dbtest.New(t)
	church, actor, target := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(target.String()))
	mock.ExpectQuery(`SELECT "?member_role"? FROM "members" WHERE`).
		WillReturnError(errors.New("driver: bad connection"))
	mock.ExpectRollback()

	err := DeleteChurchUser(context.Background(), db, church, actor, target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad connection")
}
