package summary

import (
	"fmt"
	"time"

	"backoffice-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store merges one group's recomputed columns into the summary row for a
// period. The merge is a single INSERT ... ON CONFLICT (year, month)
// DO UPDATE statement with an explicit column list, never a read-modify-write
// pair, so two groups landing on the same new row cannot lose each other's
// columns.
type Store struct{}

func (Store) MergeGroup(tx *gorm.DB, p Period, group Group, cols GroupColumns) error {
	now := time.Now()

	insert := map[string]any{
		"year":       p.Year,
		"month":      p.Month,
		"created_at": now,
		"updated_at": now,
	}
	assign := map[string]any{
		"updated_at": now,
	}
	for name, value := range cols {
		if !group.owns(name) {
			return fmt.Errorf("column %q is not owned by group %s", name, group)
		}
		insert[name] = value
		assign[name] = value
	}

	// Insert path: columns of the other groups are absent from the map and
	// take their schema defaults (zero / '{}'). Conflict path: only this
	// group's columns plus updated_at are assigned.
	return tx.Model(&models.MonthlySummary{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}, {Name: "month"}},
			DoUpdates: clause.Assignments(assign),
		}).
		Create(insert).Error
}
