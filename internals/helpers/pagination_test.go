package helper

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPaginationFromPage(0, 0, 0)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 20, empty.PerPage)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := []struct {
		query string
		want  Paging
	}{
		{"", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"?page=3&per_page=10", Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}},
		{"?page=-1&limit=500", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
		{"?page=abc&per_page=0", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
	}
	for _, tc := range cases {
		_, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.query)
	}
}

func TestJsonListIncludesPagination(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return JsonList(c, "", []string{"a", "b"}, BuildPaginationFromPage(2, 1, 20))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Success    bool       `json:"success"`
		Message    string     `json:"message"`
		Pagination Pagination `json:"pagination"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Message)
	assert.Equal(t, 2, body.Pagination.Count)
	assert.NotEmpty(t, body.Pagination.PerPageOptions)
}

func TestJsonErrorCodes(t *testing.T) {
	app := fiber.New()
	app.Get("/conflict", func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusConflict, "taken") })
	app.Get("/empty", func(c *fiber.Ctx) error { return JsonError(c, 0, "") })
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return FromError(c, fiber.NewError(fiber.StatusPaymentRequired, "pay"))
	})

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/conflict", fiber.StatusConflict, "CONFLICT"},
		{"/empty", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
		{"/wrapped", fiber.StatusPaymentRequired, "PAYMENT_REQUIRED"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		raw, _ := io.ReadAll(resp.Body)
		var body ErrorResponse
		require.NoError(t, sonic.Unmarshal(raw, &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.ErrorCode)
		assert.NotEmpty(t, body.Message)
	}
}
