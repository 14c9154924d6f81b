package dashboard

import (
	"errors"
	"fmt"
	"time"

	"backoffice-backend/internal/config"
	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"
	"backoffice-backend/internal/summary"
	"backoffice-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MonthlySummaryResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	TotalSales     decimal.Decimal `json:"total_sales"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	CardSales      decimal.Decimal `json:"card_sales"`
	PosTotal       decimal.Decimal `json:"pos_total"`
	CashCounted    decimal.Decimal `json:"cash_counted"`
	CashDifference decimal.Decimal `json:"cash_difference"`
	ExpensesPaid   decimal.Decimal `json:"expenses_paid"`
	CashDeposit    decimal.Decimal `json:"cash_deposit"`
	DaysRecorded   int             `json:"days_recorded"`

	OperatingExpenses         decimal.Decimal  `json:"operating_expenses"`
	OperatingExpenseBreakdown models.Breakdown `json:"operating_expense_breakdown"`
	PayrollExpenses           decimal.Decimal  `json:"payroll_expenses"`
	PayrollExpenseBreakdown   models.Breakdown `json:"payroll_expense_breakdown"`

	NetProfit decimal.Decimal `json:"net_profit"`
	UpdatedAt string          `json:"updated_at"`
}

func toResponse(r *models.MonthlySummary) MonthlySummaryResponse {
	opBreakdown := r.OperatingExpenseBreakdown
	if opBreakdown == nil {
		opBreakdown = models.Breakdown{}
	}
	prBreakdown := r.PayrollExpenseBreakdown
	if prBreakdown == nil {
		prBreakdown = models.Breakdown{}
	}
	return MonthlySummaryResponse{
		Year:                      r.Year,
		Month:                     r.Month,
		TotalSales:                r.TotalSales,
		CashSales:                 r.CashSales,
		CardSales:                 r.CardSales,
		PosTotal:                  r.PosTotal,
		CashCounted:               r.CashCounted,
		CashDifference:            r.CashDifference,
		ExpensesPaid:              r.ExpensesPaid,
		CashDeposit:               r.CashDeposit,
		DaysRecorded:              r.DaysRecorded,
		OperatingExpenses:         r.OperatingExpenses,
		OperatingExpenseBreakdown: opBreakdown,
		PayrollExpenses:           r.PayrollExpenses,
		PayrollExpenseBreakdown:   prBreakdown,
		NetProfit:                 r.TotalSales.Sub(r.OperatingExpenses).Sub(r.PayrollExpenses),
		UpdatedAt:                 r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func parsePeriodQuery(c *fiber.Ctx) (int, int, error) {
	var year, month int
	if _, err := fmt.Sscan(c.Query("year"), &year); err != nil || year < 2000 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year is invalid")
	}
	if _, err := fmt.Sscan(c.Query("month"), &month); err != nil || month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month is invalid (1-12)")
	}
	return year, month, nil
}

// GET /api/summary/monthly?year=2024&month=3
// A month with no ledger records has no row; that reads back as all zeros.
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := parsePeriodQuery(c)
		if err != nil {
			return err
		}

		var row models.MonthlySummary
		if err := database.DB.First(&row, "year = ? AND month = ?", year, month).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(toResponse(&models.MonthlySummary{Year: year, Month: month}))
			}
			return fiber.NewError(fiber.StatusInternalServerError, "summary could not be loaded")
		}
		return c.JSON(toResponse(&row))
	}
}

type YearlySummaryResponse struct {
	Year   int                      `json:"year"`
	Months []MonthlySummaryResponse `json:"months"`

	TotalSales        decimal.Decimal `json:"total_sales"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	PayrollExpenses   decimal.Decimal `json:"payroll_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
}

// GET /api/summary/yearly?year=2024
func YearlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var year int
		if _, err := fmt.Sscan(c.Query("year"), &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
		}

		var rows []models.MonthlySummary
		if err := database.DB.Where("year = ?", year).Order("month asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "summaries could not be loaded")
		}

		resp := YearlySummaryResponse{Year: year, Months: make([]MonthlySummaryResponse, 0, len(rows))}
		for i := range rows {
			m := toResponse(&rows[i])
			resp.Months = append(resp.Months, m)
			resp.TotalSales = resp.TotalSales.Add(m.TotalSales)
			resp.OperatingExpenses = resp.OperatingExpenses.Add(m.OperatingExpenses)
			resp.PayrollExpenses = resp.PayrollExpenses.Add(m.PayrollExpenses)
		}
		resp.NetProfit = resp.TotalSales.Sub(resp.OperatingExpenses).Sub(resp.PayrollExpenses)
		return c.JSON(resp)
	}
}

type CashChartPoint struct {
	Label string          `json:"label"` // "2024-03"
	Cash  decimal.Decimal `json:"cash"`
	Card  decimal.Decimal `json:"card"`
	Total decimal.Decimal `json:"total"`
}

// chartPeriods returns the last count periods ending at now's month, oldest
// first. Subtraction starts from the first of the month; stepping back from
// day 29-31 would normalize through short months and skip or repeat buckets.
func chartPeriods(now time.Time, count int) []summary.Period {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periods := make([]summary.Period, 0, count)
	for i := count - 1; i >= 0; i-- {
		periods = append(periods, summary.PeriodOf(anchor.AddDate(0, -i, 0)))
	}
	return periods
}

// GET /api/dashboard/cash-chart?months=6
// Cash vs card revenue per month, most recent last.
func CashChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count := 6
		if countStr := c.Query("months"); countStr != "" {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count < 1 || count > 36 {
				return fiber.NewError(fiber.StatusBadRequest, "months is invalid (1-36)")
			}
		}

		points := make([]CashChartPoint, 0, count)
		for _, p := range chartPeriods(time.Now(), count) {
			var row models.MonthlySummary
			err := database.DB.First(&row, "year = ? AND month = ?", p.Year, p.Month).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "chart data could not be loaded")
			}
			points = append(points, CashChartPoint{
				Label: p.String(),
				Cash:  row.CashSales,
				Card:  row.CardSales,
				Total: row.TotalSales,
			})
		}
		return c.JSON(fiber.Map{"points": points})
	}
}

type RecomputeRequest struct {
	Year  int    `json:"year" validate:"required,min=2000"`
	Month int    `json:"month" validate:"required,min=1,max=12"`
	Group string `json:"group" validate:"required,oneof=sales operating payroll"`
}

// POST /api/admin/summary/recompute
// Rebuilds one group's columns for a period straight from its ledger.
func RecomputeSummaryHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecomputeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p := summary.Period{Year: body.Year, Month: body.Month}
		if err := coord.Recompute(c.Context(), summary.Group(body.Group), p); err != nil {
			config.LogError(config.GetLogger(), "dashboard", "RecomputeSummary", p.String(), err)
			return fiber.NewError(fiber.StatusInternalServerError, "summary could not be recomputed")
		}
		return c.JSON(fiber.Map{"recomputed": p.String(), "group": body.Group})
	}
}
