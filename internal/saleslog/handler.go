package saleslog

import (
	"errors"
	"fmt"
	"time"

	"backoffice-backend/internal/audit"
	"backoffice-backend/internal/config"
	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"
	"backoffice-backend/internal/summary"
	"backoffice-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpsertSalesLogRequest struct {
	LogDate        string          `json:"log_date" validate:"required,datetime=2006-01-02"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	CardSales      decimal.Decimal `json:"card_sales"`
	PosTotal       decimal.Decimal `json:"pos_total"`
	CashCounted    decimal.Decimal `json:"cash_counted"`
	CashDifference decimal.Decimal `json:"cash_difference"`
	ExpensesPaid   decimal.Decimal `json:"expenses_paid"`
	StartingCash   decimal.Decimal `json:"starting_cash"`
	CashDeposit    decimal.Decimal `json:"cash_deposit"`
	SalesNotes     string          `json:"sales_notes" validate:"max=500"`
	ExpenseNotes   string          `json:"expense_notes" validate:"max=500"`
	StaffNotes     string          `json:"staff_notes" validate:"max=500"`
}

type SalesLogResponse struct {
	ID             uint            `json:"id"`
	LogDate        string          `json:"log_date"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	CardSales      decimal.Decimal `json:"card_sales"`
	PosTotal       decimal.Decimal `json:"pos_total"`
	CashCounted    decimal.Decimal `json:"cash_counted"`
	CashDifference decimal.Decimal `json:"cash_difference"`
	ExpensesPaid   decimal.Decimal `json:"expenses_paid"`
	StartingCash   decimal.Decimal `json:"starting_cash"`
	CashDeposit    decimal.Decimal `json:"cash_deposit"`
	SalesNotes     string          `json:"sales_notes"`
	ExpenseNotes   string          `json:"expense_notes"`
	StaffNotes     string          `json:"staff_notes"`
}

func toResponse(r *models.SalesLog) SalesLogResponse {
	return SalesLogResponse{
		ID:             r.ID,
		LogDate:        r.LogDate.Format("2006-01-02"),
		CashSales:      r.CashSales,
		CardSales:      r.CardSales,
		PosTotal:       r.PosTotal,
		CashCounted:    r.CashCounted,
		CashDifference: r.CashDifference,
		ExpensesPaid:   r.ExpensesPaid,
		StartingCash:   r.StartingCash,
		CashDeposit:    r.CashDeposit,
		SalesNotes:     r.SalesNotes,
		ExpenseNotes:   r.ExpenseNotes,
		StaffNotes:     r.StaffNotes,
	}
}

// upsert column list: everything except id, log_date and created_at
var upsertColumns = []string{
	"cash_sales", "card_sales", "pos_total", "cash_counted", "cash_difference",
	"expenses_paid", "starting_cash", "cash_deposit",
	"sales_notes", "expense_notes", "staff_notes", "updated_at",
}

// POST /api/sales-logs
// One log per date: create-or-update keyed on log_date, then recompute the
// month's sales columns, all in one transaction.
func UpsertSalesLogHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertSalesLogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		logDate, err := time.Parse("2006-01-02", body.LogDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "log_date must be 'YYYY-MM-DD'")
		}

		rec := models.SalesLog{
			LogDate:        logDate,
			CashSales:      body.CashSales,
			CardSales:      body.CardSales,
			PosTotal:       body.PosTotal,
			CashCounted:    body.CashCounted,
			CashDifference: body.CashDifference,
			ExpensesPaid:   body.ExpensesPaid,
			StartingCash:   body.StartingCash,
			CashDeposit:    body.CashDeposit,
			SalesNotes:     body.SalesNotes,
			ExpenseNotes:   body.ExpenseNotes,
			StaffNotes:     body.StaffNotes,
		}

		err = coord.Mutate(c.Context(), summary.GroupSales, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "log_date"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns),
			}).Create(&rec).Error; err != nil {
				return nil, err
			}
			return []time.Time{logDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "sales log could not be saved")
		}

		var saved models.SalesLog
		if err := database.DB.First(&saved, "log_date = ?", logDate).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "sales log could not be loaded")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "sales_log",
			EntityID:    saved.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("sales log saved for %s", body.LogDate),
			After:       toResponse(&saved),
		})

		return c.JSON(toResponse(&saved))
	}
}

// GET /api/sales-logs?year=2024&month=7  or  ?from=...&to=...
func ListSalesLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.SalesLog{})

		if yearStr := c.Query("year"); yearStr != "" {
			var year, month int
			if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
			}
			if _, err := fmt.Sscan(c.Query("month"), &month); err != nil || month < 1 || month > 12 {
				return fiber.NewError(fiber.StatusBadRequest, "month is invalid (1-12)")
			}
			from, to := summary.Period{Year: year, Month: month}.Bounds()
			dbq = dbq.Where("log_date >= ? AND log_date < ?", from, to)
		} else {
			if fromStr := c.Query("from"); fromStr != "" {
				from, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "from is invalid")
				}
				dbq = dbq.Where("log_date >= ?", from)
			}
			if toStr := c.Query("to"); toStr != "" {
				to, err := time.Parse("2006-01-02", toStr)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "to is invalid")
				}
				dbq = dbq.Where("log_date <= ?", to)
			}
		}

		var rows []models.SalesLog
		if err := dbq.Order("log_date asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "sales logs could not be listed")
		}

		resp := make([]SalesLogResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/sales-logs/:date
func GetSalesLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logDate, err := time.Parse("2006-01-02", c.Params("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		var rec models.SalesLog
		if err := database.DB.First(&rec, "log_date = ?", logDate).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no sales log for that date")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "sales log could not be loaded")
		}
		return c.JSON(toResponse(&rec))
	}
}

// DELETE /api/sales-logs/:date
func DeleteSalesLogHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logDate, err := time.Parse("2006-01-02", c.Params("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		var deleted models.SalesLog
		err = coord.Mutate(c.Context(), summary.GroupSales, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.First(&deleted, "log_date = ?", logDate).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: sales log %s", summary.ErrNotFound, c.Params("date"))
				}
				return nil, err
			}
			if err := tx.Delete(&deleted).Error; err != nil {
				return nil, err
			}
			return []time.Time{deleted.LogDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "sales log could not be deleted")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "sales_log",
			EntityID:    deleted.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("sales log deleted for %s", c.Params("date")),
			Before:      toResponse(&deleted),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// 4xx for missing targets, generic 5xx otherwise; the cause is logged, not leaked.
func mapMutationError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, summary.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	config.LogError(config.GetLogger(), "saleslog", "mutate", c.Path(), err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
