package dataprocessing

import (
	"math"
	"strings"

	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// DetailResult is the outcome of a single-complex extraction, including
// which unit size was actually used when the fallback applied.
type DetailResult struct {
	Records      []domain.TransactionRecord
	AreaUsed     int
	UsedFallback bool
}

// ExtractDetail selects the records of one complex at one marketed unit
// size. Areas are floored toward zero before comparison, so a 49.6㎡
// unit counts as the "49 type". When nothing matches, one fallback is
// tried at targetArea+1 (49→50, 59→60): marketed sizes sit on either
// side of the integer boundary and the "just under" labeling convention
// is common. An empty result after the fallback means the size genuinely
// has no trades in the dataset.
func ExtractDetail(records []domain.TransactionRecord, nameSubstring string, targetArea int) DetailResult {
	var complexRecords []domain.TransactionRecord
	for _, rec := range records {
		if strings.Contains(rec.BuildingName, nameSubstring) {
			complexRecords = append(complexRecords, rec)
		}
	}

	matched := filterByFlooredArea(complexRecords, targetArea)
	if len(matched) > 0 {
		return DetailResult{Records: matched, AreaUsed: targetArea}
	}

	alt := targetArea + 1
	matched = filterByFlooredArea(complexRecords, alt)
	if len(matched) > 0 {
		return DetailResult{Records: matched, AreaUsed: alt, UsedFallback: true}
	}

	return DetailResult{Records: []domain.TransactionRecord{}, AreaUsed: targetArea}
}

func filterByFlooredArea(records []domain.TransactionRecord, area int) []domain.TransactionRecord {
	var out []domain.TransactionRecord
	for _, rec := range records {
		if int(math.Floor(rec.ArchArea)) == area {
			out = append(out, rec)
		}
	}
	return out
}
