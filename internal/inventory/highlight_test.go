package inventory

import (
	"testing"

	"backoffice-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestApplyRulesFirstMatchWins(t *testing.T) {
	rules := []models.HighlightRule{
		{Field: models.HighlightFieldStock, Operator: models.HighlightOpLt, Threshold: d("5"), Color: "red", Active: true},
		{Field: models.HighlightFieldStock, Operator: models.HighlightOpLt, Threshold: d("20"), Color: "yellow", Active: true},
	}

	low := models.Product{StockQuantity: d("3")}
	assert.Equal(t, "red", ApplyRules(&low, rules))

	mid := models.Product{StockQuantity: d("12")}
	assert.Equal(t, "yellow", ApplyRules(&mid, rules))

	high := models.Product{StockQuantity: d("50")}
	assert.Equal(t, "", ApplyRules(&high, rules))
}

func TestApplyRulesSkipsInactive(t *testing.T) {
	rules := []models.HighlightRule{
		{Field: models.HighlightFieldStock, Operator: models.HighlightOpLt, Threshold: d("5"), Color: "red", Active: false},
		{Field: models.HighlightFieldStock, Operator: models.HighlightOpLt, Threshold: d("20"), Color: "yellow", Active: true},
	}

	p := models.Product{StockQuantity: d("3")}
	assert.Equal(t, "yellow", ApplyRules(&p, rules))
}

func TestApplyRulesStockRatio(t *testing.T) {
	rules := []models.HighlightRule{
		{Field: models.HighlightFieldMinStock, Operator: models.HighlightOpLte, Threshold: d("1"), Color: "red", Active: true},
	}

	below := models.Product{StockQuantity: d("4"), MinStock: d("10")}
	assert.Equal(t, "red", ApplyRules(&below, rules))

	above := models.Product{StockQuantity: d("25"), MinStock: d("10")}
	assert.Equal(t, "", ApplyRules(&above, rules))

	// no configured min stock: ratio rules never fire
	unset := models.Product{StockQuantity: d("0"), MinStock: decimal.Zero}
	assert.Equal(t, "", ApplyRules(&unset, rules))
}

func TestApplyRulesOperators(t *testing.T) {
	cases := []struct {
		op    models.HighlightOperator
		value string
		want  bool
	}{
		{models.HighlightOpLt, "9.99", true},
		{models.HighlightOpLt, "10", false},
		{models.HighlightOpLte, "10", true},
		{models.HighlightOpGt, "10", false},
		{models.HighlightOpGt, "10.01", true},
		{models.HighlightOpGte, "10", true},
		{models.HighlightOpEq, "10.000", true},
		{models.HighlightOpEq, "10.5", false},
	}

	for _, tc := range cases {
		rules := []models.HighlightRule{
			{Field: models.HighlightFieldPrice, Operator: tc.op, Threshold: d("10"), Color: "blue", Active: true},
		}
		p := models.Product{Price: d(tc.value)}
		got := ApplyRules(&p, rules)
		if tc.want {
			assert.Equal(t, "blue", got, "%s %s", tc.op, tc.value)
		} else {
			assert.Equal(t, "", got, "%s %s", tc.op, tc.value)
		}
	}
}
