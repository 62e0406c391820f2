package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPagination(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := GetPagination(c, 20, 100)
		p.SetTotal(45)
		return c.JSON(p)
	})

	tests := []struct {
		query string
		want  Pagination
	}{
		{"", Pagination{Page: 1, Limit: 20, Offset: 0, Total: 45, LastPage: 3}},
		{"?limit=10&offset=20", Pagination{Page: 3, Limit: 10, Offset: 20, Total: 45, LastPage: 5}},
		{"?limit=10&page=2", Pagination{Page: 2, Limit: 10, Offset: 10, Total: 45, LastPage: 5}},
		{"?limit=500", Pagination{Page: 1, Limit: 100, Offset: 0, Total: 45, LastPage: 1}},
		{"?limit=abc&offset=-4", Pagination{Page: 1, Limit: 20, Offset: 0, Total: 45, LastPage: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)

			var got Pagination
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}
