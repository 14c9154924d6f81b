package inventory

import (
	"backoffice-backend/internal/models"

	"github.com/shopspring/decimal"
)

// ruleValue extracts the compared value from a product for one rule field.
// min_stock_ratio is stock/min_stock; products without a min stock never
// match ratio rules.
func ruleValue(p *models.Product, field models.HighlightField) (decimal.Decimal, bool) {
	switch field {
	case models.HighlightFieldStock:
		return p.StockQuantity, true
	case models.HighlightFieldPrice:
		return p.Price, true
	case models.HighlightFieldMinStock:
		if p.MinStock.IsZero() {
			return decimal.Zero, false
		}
		return p.StockQuantity.Div(p.MinStock), true
	default:
		return decimal.Zero, false
	}
}

func matches(value decimal.Decimal, op models.HighlightOperator, threshold decimal.Decimal) bool {
	switch op {
	case models.HighlightOpLt:
		return value.LessThan(threshold)
	case models.HighlightOpLte:
		return value.LessThanOrEqual(threshold)
	case models.HighlightOpGt:
		return value.GreaterThan(threshold)
	case models.HighlightOpGte:
		return value.GreaterThanOrEqual(threshold)
	case models.HighlightOpEq:
		return value.Equal(threshold)
	default:
		return false
	}
}

// ApplyRules returns the color of the first active rule (by ascending
// priority, then id) matching the product, or "" when none match.
func ApplyRules(p *models.Product, rules []models.HighlightRule) string {
	for _, r := range rules {
		if !r.Active {
			continue
		}
		value, ok := ruleValue(p, r.Field)
		if !ok {
			continue
		}
		if matches(value, r.Operator, r.Threshold) {
			return r.Color
		}
	}
	return ""
}
