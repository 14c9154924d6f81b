package summary

// Group names one ledger's exclusively-owned slice of the monthly summary
// row. A merge for one group must never touch another group's columns.
type Group string

const (
	GroupSales     Group = "sales"
	GroupOperating Group = "operating"
	GroupPayroll   Group = "payroll"
)

// ownedColumns is the authoritative column ownership map. MergeGroup refuses
// assignments outside the merging group's set.
var ownedColumns = map[Group]map[string]bool{
	GroupSales: {
		"total_sales":     true,
		"cash_sales":      true,
		"card_sales":      true,
		"pos_total":       true,
		"cash_counted":    true,
		"cash_difference": true,
		"expenses_paid":   true,
		"cash_deposit":    true,
		"days_recorded":   true,
	},
	GroupOperating: {
		"operating_expenses":          true,
		"operating_expense_breakdown": true,
	},
	GroupPayroll: {
		"payroll_expenses":          true,
		"payroll_expense_breakdown": true,
	},
}

func (g Group) owns(column string) bool {
	return ownedColumns[g][column]
}
