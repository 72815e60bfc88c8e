package reports

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportApp(store *fakeStore) *fiber.App {
	app := fiber.New()
	svc := NewService(store)
	app.Get("/reports/profit-loss", ProfitLossHandler(svc))
	app.Get("/reports/balance-sheet", BalanceSheetHandler(svc))
	return app
}

func TestCompanyIDQueryMustBeNumeric(t *testing.T) {
	app := newReportApp(newFakeStore())

	for _, companyID := range []string{"12abc", "abc", "-1", "1.5", "0x10"} {
		req := httptest.NewRequest(fiber.MethodGet,
			"/reports/profit-loss?company_id="+companyID+"&date_from=2025-01-01&date_to=2025-12-31", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "company_id %q", companyID)
	}
}

func TestCompanyIDQueryRequired(t *testing.T) {
	app := newReportApp(newFakeStore())

	req := httptest.NewRequest(fiber.MethodGet, "/reports/balance-sheet", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReportHandlerStatusMapping(t *testing.T) {
	store := newFakeStore()
	app := newReportApp(store)

	// Unknown company.
	req := httptest.NewRequest(fiber.MethodGet, "/reports/balance-sheet?company_id=99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Store failure.
	store.failWith = assert.AnError
	req = httptest.NewRequest(fiber.MethodGet, "/reports/balance-sheet?company_id=1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
