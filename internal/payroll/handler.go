package payroll

import (
	"errors"
	"fmt"
	"strings"
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
)

type CreatePayrollExpenseRequest struct {
	EmployeeName  string          `json:"employee_name" validate:"required,max=100"`
	Position      string          `json:"position" validate:"max=100"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" validate:"max=50"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Notes         string          `json:"notes" validate:"max=500"`
}

type UpdatePayrollExpenseRequest struct {
	EmployeeName  *string          `json:"employee_name" validate:"omitempty,max=100"`
	Position      *string          `json:"position" validate:"omitempty,max=100"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentDate   *string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string          `json:"payment_method" validate:"omitempty,max=50"`
	HoursWorked   *decimal.Decimal `json:"hours_worked"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate"`
	TaxAmount     *decimal.Decimal `json:"tax_amount"`
	Notes         *string          `json:"notes" validate:"omitempty,max=500"`
}

type PayrollExpenseResponse struct {
	ID              uint            `json:"id"`
	EmployeeName    string          `json:"employee_name"`
	Position        string          `json:"position"`
	Amount          decimal.Decimal `json:"amount"`
	EffectiveAmount decimal.Decimal `json:"effective_amount"`
	PaymentDate     string          `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Notes           string          `json:"notes"`
}

func toResponse(r *models.PayrollExpense) PayrollExpenseResponse {
	return PayrollExpenseResponse{
		ID:              r.ID,
		EmployeeName:    r.EmployeeName,
		Position:        r.Position,
		Amount:          r.Amount,
		EffectiveAmount: r.EffectiveAmount(),
		PaymentDate:     r.PaymentDate.Format("2006-01-02"),
		PaymentMethod:   r.PaymentMethod,
		HoursWorked:     r.HoursWorked,
		HourlyRate:      r.HourlyRate,
		TaxAmount:       r.TaxAmount,
		Notes:           r.Notes,
	}
}

// POST /api/payroll-expenses
func CreatePayrollExpenseHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePayrollExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.Amount.IsNegative() || body.HourlyRate.IsNegative() || body.HoursWorked.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "amounts must not be negative")
		}
		if body.Amount.IsZero() && (body.HourlyRate.IsZero() || body.HoursWorked.IsZero()) {
			return fiber.NewError(fiber.StatusBadRequest, "amount or hourly_rate and hours_worked required")
		}

		paymentDate, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "payment_date must be 'YYYY-MM-DD'")
		}

		rec := models.PayrollExpense{
			EmployeeName:  strings.TrimSpace(body.EmployeeName),
			Position:      strings.TrimSpace(body.Position),
			Amount:        body.Amount,
			PaymentDate:   paymentDate,
			PaymentMethod: body.PaymentMethod,
			HoursWorked:   body.HoursWorked,
			HourlyRate:    body.HourlyRate,
			TaxAmount:     body.TaxAmount,
			Notes:         body.Notes,
		}

		err = coord.Mutate(c.Context(), summary.GroupPayroll, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.Create(&rec).Error; err != nil {
				return nil, err
			}
			return []time.Time{rec.PaymentDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "payroll expense could not be saved")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "payroll_expense",
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("payroll expense added: %s %s", rec.EmployeeName, rec.EffectiveAmount()),
			After:       toResponse(&rec),
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&rec))
	}
}

// PUT /api/payroll-expenses/:id
func UpdatePayrollExpenseHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdatePayrollExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		var newDate *time.Time
		if body.PaymentDate != nil {
			d, err := time.Parse("2006-01-02", *body.PaymentDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "payment_date must be 'YYYY-MM-DD'")
			}
			newDate = &d
		}

		var rec models.PayrollExpense
		var before PayrollExpenseResponse
		err := coord.Mutate(c.Context(), summary.GroupPayroll, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.First(&rec, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: payroll expense %s", summary.ErrNotFound, id)
				}
				return nil, err
			}
			before = toResponse(&rec)
			oldDate := rec.PaymentDate

			if body.EmployeeName != nil {
				rec.EmployeeName = strings.TrimSpace(*body.EmployeeName)
			}
			if body.Position != nil {
				rec.Position = strings.TrimSpace(*body.Position)
			}
			if body.Amount != nil {
				rec.Amount = *body.Amount
			}
			if newDate != nil {
				rec.PaymentDate = *newDate
			}
			if body.PaymentMethod != nil {
				rec.PaymentMethod = *body.PaymentMethod
			}
			if body.HoursWorked != nil {
				rec.HoursWorked = *body.HoursWorked
			}
			if body.HourlyRate != nil {
				rec.HourlyRate = *body.HourlyRate
			}
			if body.TaxAmount != nil {
				rec.TaxAmount = *body.TaxAmount
			}
			if body.Notes != nil {
				rec.Notes = *body.Notes
			}

			if err := tx.Save(&rec).Error; err != nil {
				return nil, err
			}
			return []time.Time{oldDate, rec.PaymentDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "payroll expense could not be updated")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "payroll_expense",
			EntityID:    rec.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("payroll expense updated: %s %s", rec.EmployeeName, rec.EffectiveAmount()),
			Before:      before,
			After:       toResponse(&rec),
		})

		return c.JSON(toResponse(&rec))
	}
}

// DELETE /api/payroll-expenses/:id
func DeletePayrollExpenseHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var deleted models.PayrollExpense
		err := coord.Mutate(c.Context(), summary.GroupPayroll, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: payroll expense %s", summary.ErrNotFound, id)
				}
				return nil, err
			}
			if err := tx.Delete(&deleted).Error; err != nil {
				return nil, err
			}
			return []time.Time{deleted.PaymentDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "payroll expense could not be deleted")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "payroll_expense",
			EntityID:    deleted.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("payroll expense deleted: %s", deleted.EmployeeName),
			Before:      toResponse(&deleted),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/payroll-expenses?year=&month=  or  ?from=&to=  [&employee=] [&position=]
func ListPayrollExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PayrollExpense{})

		if yearStr := c.Query("year"); yearStr != "" {
			var year, month int
			if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
			}
			if _, err := fmt.Sscan(c.Query("month"), &month); err != nil || month < 1 || month > 12 {
				return fiber.NewError(fiber.StatusBadRequest, "month is invalid (1-12)")
			}
			from, to := summary.Period{Year: year, Month: month}.Bounds()
			dbq = dbq.Where("payment_date >= ? AND payment_date < ?", from, to)
		} else {
			if fromStr := c.Query("from"); fromStr != "" {
				from, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "from is invalid")
				}
				dbq = dbq.Where("payment_date >= ?", from)
			}
			if toStr := c.Query("to"); toStr != "" {
				to, err := time.Parse("2006-01-02", toStr)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "to is invalid")
				}
				dbq = dbq.Where("payment_date <= ?", to)
			}
		}

		if employee := c.Query("employee"); employee != "" {
			dbq = dbq.Where("employee_name = ?", employee)
		}
		if position := c.Query("position"); position != "" {
			dbq = dbq.Where("position = ?", position)
		}

		var rows []models.PayrollExpense
		if err := dbq.Order("payment_date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "payroll expenses could not be listed")
		}

		resp := make([]PayrollExpenseResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

func mapMutationError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, summary.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	config.LogError(config.GetLogger(), "payroll", "mutate", c.Path(), err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
