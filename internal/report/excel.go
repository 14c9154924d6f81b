package report

import (
	"errors"
	"fmt"

	"backoffice-backend/internal/config"
	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"
	"backoffice-backend/internal/summary"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GET /api/reports/monthly.xlsx?year=2024&month=3
// One workbook: summary sheet plus the three ledgers for the month.
func MonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var year, month int
		if _, err := fmt.Sscan(c.Query("year"), &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
		}
		if _, err := fmt.Sscan(c.Query("month"), &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month is invalid (1-12)")
		}
		p := summary.Period{Year: year, Month: month}
		from, to := p.Bounds()

		var row models.MonthlySummary
		if err := database.DB.First(&row, "year = ? AND month = ?", year, month).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "summary could not be loaded")
		}

		var sales []models.SalesLog
		var expenses []models.OperatingExpense
		var payroll []models.PayrollExpense
		database.DB.Where("log_date >= ? AND log_date < ?", from, to).Order("log_date asc").Find(&sales)
		database.DB.Where("expense_date >= ? AND expense_date < ?", from, to).Order("expense_date asc").Find(&expenses)
		database.DB.Where("payment_date >= ? AND payment_date < ?", from, to).Order("payment_date asc").Find(&payroll)

		f := excelize.NewFile()
		defer f.Close()

		writeRow := func(sheet string, rowIdx int, vals []any) error {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return err
			}
			return f.SetSheetRow(sheet, cell, &vals)
		}

		sheet := "Summary"
		f.SetSheetName("Sheet1", sheet)
		summaryRows := [][]any{
			{"Period", p.String()},
			{"Total sales", row.TotalSales.String()},
			{"Cash sales", row.CashSales.String()},
			{"Card sales", row.CardSales.String()},
			{"POS total", row.PosTotal.String()},
			{"Cash counted", row.CashCounted.String()},
			{"Cash difference", row.CashDifference.String()},
			{"Expenses paid from till", row.ExpensesPaid.String()},
			{"Cash deposit", row.CashDeposit.String()},
			{"Days recorded", row.DaysRecorded},
			{"Operating expenses", row.OperatingExpenses.String()},
			{"Payroll expenses", row.PayrollExpenses.String()},
		}
		for i, vals := range summaryRows {
			if err := writeRow(sheet, i+1, vals); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
			}
		}

		salesSheet := "Sales"
		if _, err := f.NewSheet(salesSheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
		}
		if err := writeRow(salesSheet, 1, []any{"Date", "Cash", "Card", "POS total", "Counted", "Difference", "Paid out", "Deposit"}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
		}
		for i, r := range sales {
			vals := []any{
				r.LogDate.Format("2006-01-02"), r.CashSales.String(), r.CardSales.String(),
				r.PosTotal.String(), r.CashCounted.String(), r.CashDifference.String(),
				r.ExpensesPaid.String(), r.CashDeposit.String(),
			}
			if err := writeRow(salesSheet, i+2, vals); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
			}
		}

		expSheet := "Operating expenses"
		if _, err := f.NewSheet(expSheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
		}
		if err := writeRow(expSheet, 1, []any{"Date", "Category", "Amount", "Payment method", "Receipt", "Notes"}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
		}
		for i, r := range expenses {
			vals := []any{
				r.ExpenseDate.Format("2006-01-02"), r.Category, r.Amount.String(),
				r.PaymentMethod, r.ReceiptRef, r.Notes,
			}
			if err := writeRow(expSheet, i+2, vals); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
			}
		}

		paySheet := "Payroll"
		if _, err := f.NewSheet(paySheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
		}
		if err := writeRow(paySheet, 1, []any{"Date", "Employee", "Position", "Amount", "Hours", "Rate", "Tax"}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
		}
		for i, r := range payroll {
			vals := []any{
				r.PaymentDate.Format("2006-01-02"), r.EmployeeName, r.Position,
				r.EffectiveAmount().String(), r.HoursWorked.String(), r.HourlyRate.String(), r.TaxAmount.String(),
			}
			if err := writeRow(paySheet, i+2, vals); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "report could not be built")
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			config.LogError(config.GetLogger(), "report", "MonthlyReport", p.String(), err)
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be written")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="monthly-report-%s.xlsx"`, p.String()))
		return c.Send(buf.Bytes())
	}
}
