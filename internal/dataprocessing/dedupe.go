package dataprocessing

import (
	"fmt"

	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// Deduplicate collapses rows that appear in both the historical file and
// the live feed for an overlapping period. Two rows are the same
// transaction when their natural key matches: contract date, building
// name, architectural area, price, and floor. First occurrence wins;
// input order is preserved.
func Deduplicate(records []domain.TransactionRecord) []domain.TransactionRecord {
	if len(records) == 0 {
		return records
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]domain.TransactionRecord, 0, len(records))
	for _, rec := range records {
		key := fmt.Sprintf("%s|%s|%.2f|%.4f|%t|%s",
			rec.ContractDate.Format("20060102"),
			rec.BuildingName,
			rec.ArchArea,
			rec.Price,
			rec.HasPrice,
			rec.Floor,
		)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}

	return out
}
