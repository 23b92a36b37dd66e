package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"github.com/junlife-hub/house-analysis/internal/config"
	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// contractDayLayout is the YYYYMMDD form both sources use.
const contractDayLayout = "20060102"

// amountScale converts the source unit (ten-thousand KRW) to eok.
const amountScale = 10000.0

// Normalize converts raw rows into transaction records:
//
//  1. parse the contract date; unparseable rows drop silently,
//  2. keep only dates on or after the analysis window start,
//  3. coerce the amount; failures become a null price marker
//     (the row itself is retained),
//  4. rescale the amount from ten-thousand KRW to eok.
//
// Empty input returns an empty slice unchanged.
func Normalize(rows []domain.RawRecord) []domain.TransactionRecord {
	if len(rows) == 0 {
		return []domain.TransactionRecord{}
	}

	out := make([]domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		date, err := time.ParseInLocation(contractDayLayout, strings.TrimSpace(row.ContractDay), time.UTC)
		if err != nil {
			continue
		}
		if date.Before(config.WindowStart) {
			continue
		}

		rec := domain.TransactionRecord{
			ContractDate: date,
			District:     row.District,
			Dong:         row.Dong,
			BuildingName: row.BuildingName,
			Floor:        row.Floor,
		}

		if area, err := parseNumber(row.ArchArea); err == nil {
			rec.ArchArea = area
		}

		if amount, err := parseNumber(row.Amount); err == nil {
			rec.Price = amount / amountScale
			rec.HasPrice = true
		}

		out = append(out, rec)
	}

	return out
}

// parseNumber parses a source numeric cell, tolerating thousands
// separators and surrounding whitespace.
func parseNumber(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}
