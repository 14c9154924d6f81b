package opexpense

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

type CreateOperatingExpenseRequest struct {
	Category      string          `json:"category" validate:"max=100"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	ExpenseDate   string          `json:"expense_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" validate:"max=50"`
	ReceiptRef    string          `json:"receipt_ref" validate:"max=255"`
	Notes         string          `json:"notes" validate:"max=500"`
}

type UpdateOperatingExpenseRequest struct {
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Amount        *decimal.Decimal `json:"amount"`
	ExpenseDate   *string          `json:"expense_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string          `json:"payment_method" validate:"omitempty,max=50"`
	ReceiptRef    *string          `json:"receipt_ref" validate:"omitempty,max=255"`
	Notes         *string          `json:"notes" validate:"omitempty,max=500"`
}

type OperatingExpenseResponse struct {
	ID            uint            `json:"id"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   string          `json:"expense_date"`
	PaymentMethod string          `json:"payment_method"`
	ReceiptRef    string          `json:"receipt_ref"`
	Notes         string          `json:"notes"`
}

func toResponse(r *models.OperatingExpense) OperatingExpenseResponse {
	return OperatingExpenseResponse{
		ID:            r.ID,
		Category:      r.Category,
		Amount:        r.Amount,
		ExpenseDate:   r.ExpenseDate.Format("2006-01-02"),
		PaymentMethod: r.PaymentMethod,
		ReceiptRef:    r.ReceiptRef,
		Notes:         r.Notes,
	}
}

// POST /api/operating-expenses
func CreateOperatingExpenseHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOperatingExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.Amount.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
		}

		expenseDate, err := time.Parse("2006-01-02", body.ExpenseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "expense_date must be 'YYYY-MM-DD'")
		}

		rec := models.OperatingExpense{
			Category:      strings.TrimSpace(body.Category),
			Amount:        body.Amount,
			ExpenseDate:   expenseDate,
			PaymentMethod: body.PaymentMethod,
			ReceiptRef:    body.ReceiptRef,
			Notes:         body.Notes,
		}

		err = coord.Mutate(c.Context(), summary.GroupOperating, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.Create(&rec).Error; err != nil {
				return nil, err
			}
			return []time.Time{rec.ExpenseDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "expense could not be saved")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "operating_expense",
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("operating expense added: %s %s", rec.Category, rec.Amount),
			After:       toResponse(&rec),
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&rec))
	}
}

// PUT /api/operating-expenses/:id
// A date change into another month recomputes both the old and the new month
// in the same transaction.
func UpdateOperatingExpenseHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateOperatingExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.Amount != nil && body.Amount.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
		}
		var newDate *time.Time
		if body.ExpenseDate != nil {
			d, err := time.Parse("2006-01-02", *body.ExpenseDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expense_date must be 'YYYY-MM-DD'")
			}
			newDate = &d
		}

		var rec models.OperatingExpense
		var before OperatingExpenseResponse
		err := coord.Mutate(c.Context(), summary.GroupOperating, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.First(&rec, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: operating expense %s", summary.ErrNotFound, id)
				}
				return nil, err
			}
			before = toResponse(&rec)
			oldDate := rec.ExpenseDate

			if body.Category != nil {
				rec.Category = strings.TrimSpace(*body.Category)
			}
			if body.Amount != nil {
				rec.Amount = *body.Amount
			}
			if newDate != nil {
				rec.ExpenseDate = *newDate
			}
			if body.PaymentMethod != nil {
				rec.PaymentMethod = *body.PaymentMethod
			}
			if body.ReceiptRef != nil {
				rec.ReceiptRef = *body.ReceiptRef
			}
			if body.Notes != nil {
				rec.Notes = *body.Notes
			}

			if err := tx.Save(&rec).Error; err != nil {
				return nil, err
			}
			return []time.Time{oldDate, rec.ExpenseDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "expense could not be updated")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "operating_expense",
			EntityID:    rec.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("operating expense updated: %s %s", rec.Category, rec.Amount),
			Before:      before,
			After:       toResponse(&rec),
		})

		return c.JSON(toResponse(&rec))
	}
}

// DELETE /api/operating-expenses/:id
func DeleteOperatingExpenseHandler(coord *summary.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var deleted models.OperatingExpense
		err := coord.Mutate(c.Context(), summary.GroupOperating, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: operating expense %s", summary.ErrNotFound, id)
				}
				return nil, err
			}
			if err := tx.Delete(&deleted).Error; err != nil {
				return nil, err
			}
			return []time.Time{deleted.ExpenseDate}, nil
		})
		if err != nil {
			return mapMutationError(c, err, "expense could not be deleted")
		}

		audit.Write(c, audit.Entry{
			EntityType:  "operating_expense",
			EntityID:    deleted.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("operating expense deleted: %s %s", deleted.Category, deleted.Amount),
			Before:      toResponse(&deleted),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/operating-expenses?year=&month=  or  ?from=&to=  [&category=]
func ListOperatingExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.OperatingExpense{})

		if yearStr := c.Query("year"); yearStr != "" {
			var year, month int
			if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
			}
			if _, err := fmt.Sscan(c.Query("month"), &month); err != nil || month < 1 || month > 12 {
				return fiber.NewError(fiber.StatusBadRequest, "month is invalid (1-12)")
			}
			from, to := summary.Period{Year: year, Month: month}.Bounds()
			dbq = dbq.Where("expense_date >= ? AND expense_date < ?", from, to)
		} else {
			if fromStr := c.Query("from"); fromStr != "" {
				from, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "from is invalid")
				}
				dbq = dbq.Where("expense_date >= ?", from)
			}
			if toStr := c.Query("to"); toStr != "" {
				to, err := time.Parse("2006-01-02", toStr)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "to is invalid")
				}
				dbq = dbq.Where("expense_date <= ?", to)
			}
		}

		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}

		var rows []models.OperatingExpense
		if err := dbq.Order("expense_date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "expenses could not be listed")
		}

		resp := make([]OperatingExpenseResponse, 0, len(rows))
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
	config.LogError(config.GetLogger(), "opexpense", "mutate", c.Path(), err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
