package dataprocessing

import (
	"math"
	"sort"
	"strings"

	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// ExtractMegaComplexes classifies records into the tracked complexes and
// restricts each group to its representative unit size.
//
// The keyword list is a priority-ordered classifier: a record whose
// building name contains several keywords is attributed to the first
// match. Per group, the representative size is the statistical mode of
// the rounded area; ties break toward the smallest area so the result is
// deterministic. Groups come back in keyword order; empty input or no
// matches yields an empty slice.
func ExtractMegaComplexes(records []domain.TransactionRecord, keywords []string) []domain.ComplexGroup {
	if len(records) == 0 || len(keywords) == 0 {
		return []domain.ComplexGroup{}
	}

	grouped := make(map[string][]domain.TransactionRecord)
	for _, rec := range records {
		name, ok := classify(rec.BuildingName, keywords)
		if !ok {
			continue
		}
		grouped[name] = append(grouped[name], rec)
	}

	groups := make([]domain.ComplexGroup, 0, len(grouped))
	for _, keyword := range keywords {
		members, ok := grouped[keyword]
		if !ok {
			continue
		}

		mainArea := modalArea(members)
		kept := make([]domain.TransactionRecord, 0, len(members))
		for _, rec := range members {
			if math.Round(rec.ArchArea) == mainArea {
				kept = append(kept, rec)
			}
		}

		groups = append(groups, domain.ComplexGroup{
			Name:     keyword,
			MainArea: mainArea,
			Records:  kept,
		})
	}

	return groups
}

// classify returns the first keyword contained in the building name.
func classify(buildingName string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(buildingName, k) {
			return k, true
		}
	}
	return "", false
}

// modalArea computes the mode of the rounded areas, breaking frequency
// ties toward the smallest area.
func modalArea(records []domain.TransactionRecord) float64 {
	counts := make(map[float64]int)
	for _, rec := range records {
		counts[math.Round(rec.ArchArea)]++
	}

	areas := make([]float64, 0, len(counts))
	for area := range counts {
		areas = append(areas, area)
	}
	sort.Float64s(areas)

	var best float64
	bestCount := -1
	for _, area := range areas {
		if counts[area] > bestCount {
			best = area
			bestCount = counts[area]
		}
	}
	return best
}

// Flatten expands complex groups into grouped records sorted by contract
// date descending, the shape of the "recent trades" table.
func Flatten(groups []domain.ComplexGroup) []domain.GroupedRecord {
	var out []domain.GroupedRecord
	for _, g := range groups {
		for _, rec := range g.Records {
			out = append(out, domain.GroupedRecord{
				TransactionRecord: rec,
				GroupName:         g.Name,
				MainArea:          g.MainArea,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ContractDate.After(out[j].ContractDate)
	})

	return out
}

// Summarize computes the per-complex comparison table. Rows without a
// numeric price do not contribute to the statistics.
func Summarize(groups []domain.ComplexGroup) []domain.ComplexSummary {
	summaries := make([]domain.ComplexSummary, 0, len(groups))
	for _, g := range groups {
		s := domain.ComplexSummary{
			Name:     g.Name,
			MainArea: g.MainArea,
		}

		var sum float64
		var priced int
		for _, rec := range g.Records {
			s.Count++
			if !rec.HasPrice {
				continue
			}
			if priced == 0 || rec.Price > s.MaxEok {
				s.MaxEok = rec.Price
			}
			if priced == 0 || rec.Price < s.MinEok {
				s.MinEok = rec.Price
			}
			sum += rec.Price
			priced++
		}
		if priced > 0 {
			s.MeanEok = sum / float64(priced)
		}

		summaries = append(summaries, s)
	}
	return summaries
}

// GroupTrends computes per-complex monthly mean series, sorted by
// year-month then by keyword order of the input groups.
func GroupTrends(groups []domain.ComplexGroup) []domain.GroupTrendPoint {
	order := make(map[string]int, len(groups))
	var points []domain.GroupTrendPoint
	for i, g := range groups {
		order[g.Name] = i
		for _, p := range MonthlyMean(g.Records) {
			points = append(points, domain.GroupTrendPoint{
				YearMonth: p.YearMonth,
				GroupName: g.Name,
				MeanEok:   p.MeanEok,
			})
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		if points[i].YearMonth != points[j].YearMonth {
			return points[i].YearMonth < points[j].YearMonth
		}
		return order[points[i].GroupName] < order[points[j].GroupName]
	})

	return points
}
