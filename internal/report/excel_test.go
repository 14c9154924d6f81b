package report

import (
	"bytes"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:reporttest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Get("/reports/monthly.xlsx", MonthlyReportHandler())
	return app
}

func TestMonthlyReportWorkbook(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, database.DB.Create(&models.MonthlySummary{
		Year: 2024, Month: 3,
		TotalSales: decimal.RequireFromString("150"),
		CashSales:  decimal.RequireFromString("100"),
		CardSales:  decimal.RequireFromString("50"),
	}).Error)
	require.NoError(t, database.DB.Create(&models.SalesLog{
		LogDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CashSales: decimal.RequireFromString("100"),
		CardSales: decimal.RequireFromString("50"),
	}).Error)

	req := httptest.NewRequest("GET", "/reports/monthly.xlsx?year=2024&month=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Sales", "Operating expenses", "Payroll"}, f.GetSheetList())

	total, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "150", total)

	day, err := f.GetCellValue("Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", day)
}

func TestMonthlyReportRejectsBadPeriod(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{
		"/reports/monthly.xlsx",
		"/reports/monthly.xlsx?year=2024&month=13",
		"/reports/monthly.xlsx?year=abc&month=3",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}
