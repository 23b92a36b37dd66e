package dataprocessing

import (
	"sort"

	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// MonthlyMean groups records by calendar year-month and averages the
// price, sorted ascending by month. Records without a numeric price are
// skipped. Empty input returns an empty slice.
func MonthlyMean(records []domain.TransactionRecord) []domain.MonthlyPoint {
	if len(records) == 0 {
		return []domain.MonthlyPoint{}
	}

	type acc struct {
		sum   float64
		count int
	}
	byMonth := make(map[string]*acc)
	for _, rec := range records {
		if !rec.HasPrice {
			continue
		}
		month := rec.YearMonth()
		if byMonth[month] == nil {
			byMonth[month] = &acc{}
		}
		byMonth[month].sum += rec.Price
		byMonth[month].count++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	points := make([]domain.MonthlyPoint, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		points = append(points, domain.MonthlyPoint{
			YearMonth: m,
			MeanEok:   a.sum / float64(a.count),
			Count:     a.count,
		})
	}

	return points
}

// FitTrend fits a degree-1 polynomial by ordinary least squares over the
// index sequence 0..n-1 against the monthly means and returns the fitted
// value at each point. Fitting needs at least two points; with fewer the
// trend line is omitted (nil).
func FitTrend(points []domain.MonthlyPoint) []float64 {
	n := len(points)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.MeanEok
		sumXY += x * p.MeanEok
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = intercept + slope*float64(i)
	}
	return fitted
}
