package summary

import (
	"backoffice-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reserved breakdown keys for records carrying no category / position.
const (
	KeyUncategorized = "uncategorized"
	KeyUnassigned    = "unassigned"
)

// GroupColumns - column name -> value, ready to be merged into the summary row
type GroupColumns map[string]any

// GroupAggregator recomputes one group's columns for a period from scratch.
// It never fails on an empty period; it returns zero sums and empty
// breakdowns instead.
type GroupAggregator interface {
	Group() Group
	ComputeGroup(tx *gorm.DB, p Period) (GroupColumns, error)
}

// Aggregator is the one scan-and-fold implementation shared by all three
// ledgers, parameterized by the record type, its date column and the fold
// producing the group's owned columns.
type Aggregator[R any] struct {
	group   Group
	dateCol string
	fold    func(rows []R) GroupColumns
}

func (a *Aggregator[R]) Group() Group {
	return a.group
}

func (a *Aggregator[R]) ComputeGroup(tx *gorm.DB, p Period) (GroupColumns, error) {
	from, to := p.Bounds()
	var rows []R
	if err := tx.Where(a.dateCol+" >= ? AND "+a.dateCol+" < ?", from, to).Find(&rows).Error; err != nil {
		return nil, err
	}
	return a.fold(rows), nil
}

func NewSalesAggregator() *Aggregator[models.SalesLog] {
	return &Aggregator[models.SalesLog]{
		group:   GroupSales,
		dateCol: "log_date",
		fold: func(rows []models.SalesLog) GroupColumns {
			var cash, card, pos, counted, diff, paid, deposit decimal.Decimal
			for _, r := range rows {
				cash = cash.Add(r.CashSales)
				card = card.Add(r.CardSales)
				pos = pos.Add(r.PosTotal)
				counted = counted.Add(r.CashCounted)
				diff = diff.Add(r.CashDifference)
				paid = paid.Add(r.ExpensesPaid)
				deposit = deposit.Add(r.CashDeposit)
			}
			return GroupColumns{
				"total_sales":     cash.Add(card),
				"cash_sales":      cash,
				"card_sales":      card,
				"pos_total":       pos,
				"cash_counted":    counted,
				"cash_difference": diff,
				"expenses_paid":   paid,
				"cash_deposit":    deposit,
				"days_recorded":   len(rows),
			}
		},
	}
}

func NewOperatingAggregator() *Aggregator[models.OperatingExpense] {
	return &Aggregator[models.OperatingExpense]{
		group:   GroupOperating,
		dateCol: "expense_date",
		fold: func(rows []models.OperatingExpense) GroupColumns {
			total := decimal.Zero
			breakdown := models.Breakdown{}
			for _, r := range rows {
				key := r.Category
				if key == "" {
					key = KeyUncategorized
				}
				total = total.Add(r.Amount)
				breakdown[key] = breakdown[key].Add(r.Amount)
			}
			return GroupColumns{
				"operating_expenses":          total,
				"operating_expense_breakdown": breakdown,
			}
		},
	}
}

func NewPayrollAggregator() *Aggregator[models.PayrollExpense] {
	return &Aggregator[models.PayrollExpense]{
		group:   GroupPayroll,
		dateCol: "payment_date",
		fold: func(rows []models.PayrollExpense) GroupColumns {
			total := decimal.Zero
			breakdown := models.Breakdown{}
			for _, r := range rows {
				key := r.Position
				if key == "" {
					key = KeyUnassigned
				}
				amount := r.EffectiveAmount()
				total = total.Add(amount)
				breakdown[key] = breakdown[key].Add(amount)
			}
			return GroupColumns{
				"payroll_expenses":          total,
				"payroll_expense_breakdown": breakdown,
			}
		},
	}
}
