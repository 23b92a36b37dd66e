// Package exporter renders dashboard tables as downloadable CSV and
// xlsx files.
package exporter

import (
	"fmt"

	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// Table is a flat, pre-formatted view of one dashboard table.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

const dateFormat = "2006-01-02"

// MegaTable flattens the per-complex summary of the comparison view.
func MegaTable(view *domain.MegaView) Table {
	t := Table{
		Name:    "mega_complexes",
		Headers: []string{"Complex", "MainArea", "Count", "MeanEok", "MaxEok", "MinEok"},
	}
	for _, s := range view.Summaries {
		t.Rows = append(t.Rows, []string{
			s.Name,
			fmt.Sprintf("%.0f", s.MainArea),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.2f", s.MeanEok),
			fmt.Sprintf("%.2f", s.MaxEok),
			fmt.Sprintf("%.2f", s.MinEok),
		})
	}
	return t
}

// DetailTable flattens the transaction list of the drill-down view.
func DetailTable(view *domain.DetailView) Table {
	t := Table{
		Name:    fmt.Sprintf("%s_%d", view.Complex, view.AreaUsed),
		Headers: []string{"ContractDate", "PriceEok", "ArchArea", "Floor"},
	}
	for _, rec := range view.Records {
		price := ""
		if rec.HasPrice {
			price = fmt.Sprintf("%.2f", rec.Price)
		}
		t.Rows = append(t.Rows, []string{
			rec.ContractDate.Format(dateFormat),
			price,
			fmt.Sprintf("%.2f", rec.ArchArea),
			rec.Floor,
		})
	}
	return t
}
