package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/social-network/pkg/util"
)

func rangeApp(captured *[2]time.Time) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			derr := apperrors.ToDomainError(err)
			return c.Status(derr.HTTPStatus).JSON(fiber.Map{"code": derr.Code})
		},
	})
	app.Get("/range", func(c *fiber.Ctx) error {
		from, to, err := dateRange(c)
		if err != nil {
			return err
		}
		captured[0], captured[1] = from, to
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestDateRange_DateOnlyToCoversWholeDay(t *testing.T) {
	var captured [2]time.Time
	app := rangeApp(&captured)

	req := httptest.NewRequest(http.MethodGet, "/range?from=2026-01-01&to=2026-01-31", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), captured[0])
	// inclusive upper bound: the last nanosecond of Jan 31
	assert.Equal(t, time.Date(2026, time.January, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), captured[1])
}

func TestDateRange_AcceptsRFC3339(t *testing.T) {
	var captured [2]time.Time
	app := rangeApp(&captured)

	req := httptest.NewRequest(http.MethodGet,
		"/range?from=2026-01-01T08%3A00%3A00Z&to=2026-01-01T17%3A30%3A00Z", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 17, captured[1].Hour())
}

func TestDateRange_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"missing from", "to=2026-01-31"},
		{"missing to", "from=2026-01-01"},
		{"malformed from", "from=01-01-2026&to=2026-01-31"},
		{"to before from", "from=2026-02-01&to=2026-01-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var captured [2]time.Time
			app := rangeApp(&captured)

			req := httptest.NewRequest(http.MethodGet, "/range?"+tc.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
