package inventory

import (
	"strings"

	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"
	"backoffice-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type HighlightRuleRequest struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Field     string          `json:"field" validate:"required,oneof=stock_quantity min_stock_ratio price"`
	Operator  string          `json:"operator" validate:"required,oneof=lt lte gt gte eq"`
	Threshold decimal.Decimal `json:"threshold"`
	Color     string          `json:"color" validate:"required,max=20"`
	Priority  int             `json:"priority"`
	Active    *bool           `json:"active"`
}

type HighlightRuleResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Field     string          `json:"field"`
	Operator  string          `json:"operator"`
	Threshold decimal.Decimal `json:"threshold"`
	Color     string          `json:"color"`
	Priority  int             `json:"priority"`
	Active    bool            `json:"active"`
}

func toRuleResponse(r *models.HighlightRule) HighlightRuleResponse {
	return HighlightRuleResponse{
		ID:        r.ID,
		Name:      r.Name,
		Field:     string(r.Field),
		Operator:  string(r.Operator),
		Threshold: r.Threshold,
		Color:     r.Color,
		Priority:  r.Priority,
		Active:    r.Active,
	}
}

// GET /api/highlight-rules
func ListHighlightRulesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rules []models.HighlightRule
		if err := database.DB.Order("priority asc, id asc").Find(&rules).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "rules could not be listed")
		}

		resp := make([]HighlightRuleResponse, 0, len(rules))
		for i := range rules {
			resp = append(resp, toRuleResponse(&rules[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/highlight-rules
func CreateHighlightRuleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body HighlightRuleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		active := true
		if body.Active != nil {
			active = *body.Active
		}
		rule := models.HighlightRule{
			Name:      body.Name,
			Field:     models.HighlightField(body.Field),
			Operator:  models.HighlightOperator(body.Operator),
			Threshold: body.Threshold,
			Color:     body.Color,
			Priority:  body.Priority,
			Active:    active,
		}
		if err := database.DB.Create(&rule).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "rule could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(toRuleResponse(&rule))
	}
}

// PUT /api/admin/highlight-rules/:id
func UpdateHighlightRuleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rule models.HighlightRule
		if err := database.DB.First(&rule, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "rule not found")
		}

		var body HighlightRuleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rule.Name = body.Name
		rule.Field = models.HighlightField(body.Field)
		rule.Operator = models.HighlightOperator(body.Operator)
		rule.Threshold = body.Threshold
		rule.Color = body.Color
		rule.Priority = body.Priority
		if body.Active != nil {
			rule.Active = *body.Active
		}

		if err := database.DB.Save(&rule).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "rule could not be updated")
		}
		return c.JSON(toRuleResponse(&rule))
	}
}

// DELETE /api/admin/highlight-rules/:id
func DeleteHighlightRuleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Delete(&models.HighlightRule{}, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "rule could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
