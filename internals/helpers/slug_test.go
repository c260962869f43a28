package helper

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecclesia_backend/internals/helpers/dbtest"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Igreja Batista da Graça", "igreja-batista-da-graca"},
		{"  São João -- Centro  ", "sao-joao-centro"},
		{"Culto de Ação de Graças 2025!", "culto-de-acao-de-gracas-2025"},
		{"Ministério de Louvor & Adoração", "ministerio-de-louvor-adoracao"},
		{"***", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in, 0), tc.in)
	}
}

func TestSlugifyMaxLen(t *testing.T) {
	got := Slugify("comunidade evangelica central", 12)
	assert.Equal(t, "comunidade-e", got)
	assert.LessOrEqual(t, len(got), 12)

	assert.False(t, strings.HasSuffix(Slugify("abc def", 4), "-"))
}

func TestTrimForSuffix(t *testing.T) {
	assert.Equal(t, "igreja", TrimForSuffix("igreja", "-2", 100))
	assert.Equal(t, "igre", TrimForSuffix("igreja", "-2", 6))
	assert.Equal(t, "x", TrimForSuffix("igreja", "-123", 3))
}

func TestNextFreeSlug(t *testing.T) {
	assert.Equal(t, "graca", nextFreeSlug("graca", nil, 100))
	assert.Equal(t, "graca-2", nextFreeSlug("graca", []string{"Graca"}, 100))
	assert.Equal(t, "graca-4", nextFreeSlug("graca", []string{"graca", "graca-2", "graca-3", "graca-centro"}, 100))
	// the suffix still fits when base is at the limit
	assert.Equal(t, "grac-2", nextFreeSlug("gracas", []string{"gracas"}, 6))
}

func TestSlugSpaceClaim(t *testing.T) {
	db, mock := dbtest.New(t)
	church := uuid.New()

	mock.ExpectQuery(`SELECT "event_slug" FROM "events" WHERE event_church_id = \$1 AND LOWER\(event_slug\) LIKE \$2`).
		WithArgs(church, "vigilia%").
		WillReturnRows(sqlmock.NewRows([]string{"event_slug"}).AddRow("vigilia").AddRow("vigilia-2"))

	space := SlugSpace{
		Table: "events", Column: "event_slug", MaxLen: 160,
		Scope: func(q *gorm.DB) *gorm.DB { return q.Where("event_church_id = ?", church) },
	}
	slug, err := space.Claim(context.Background(), db, "vigilia")
	require.NoError(t, err)
	assert.Equal(t, "vigilia-3", slug)
}

func TestSlugSpaceClaimEscapesLike(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectQuery(`SELECT "user_name" FROM "users" WHERE LOWER\(user_name\) LIKE \$1`).
		WithArgs(`ana\_paula%`).
		WillReturnRows(sqlmock.NewRows([]string{"user_name"}))

	slug, err := SlugSpace{Table: "users", Column: "user_name", MaxLen: 50}.Claim(context.Background(), db, "ana_paula")
	require.NoError(t, err)
	assert.Equal(t, "ana_paula", slug)
}
