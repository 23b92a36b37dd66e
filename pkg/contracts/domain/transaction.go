package domain

import (
	"time"
)

// RawRecord is one transaction row as delivered by the Seoul open-data
// sources. The CSV columns and the JSON field names of the live API are
// identical, so both acquirers produce this type.
type RawRecord struct {
	ContractDay  string `json:"CTRT_DAY"`
	District     string `json:"CGG_NM"`
	Dong         string `json:"STDG_NM"`
	BuildingName string `json:"BLDG_NM"`
	ArchArea     string `json:"ARCH_AREA"`
	Amount       string `json:"THING_AMT"`
	Floor        string `json:"FLR"`
}

// TransactionRecord is one normalized apartment sale.
//
// Price is expressed in eok (100,000,000 KRW). Rows whose source amount
// could not be coerced to a number carry HasPrice=false and are excluded
// from aggregation means but retained for display counts.
type TransactionRecord struct {
	ContractDate time.Time `json:"contract_date"`
	District     string    `json:"district,omitempty"`
	Dong         string    `json:"dong,omitempty"`
	BuildingName string    `json:"building_name"`
	ArchArea     float64   `json:"arch_area"`
	Price        float64   `json:"price"`
	HasPrice     bool      `json:"has_price"`
	Floor        string    `json:"floor"`
}

// YearMonth returns the calendar year-month of the contract date in
// "2006-01" form, the grouping key for monthly trend series.
func (t TransactionRecord) YearMonth() string {
	return t.ContractDate.Format("2006-01")
}

// GroupedRecord is a transaction attributed to one of the tracked mega
// complexes, carrying the group it was classified into and that group's
// representative unit size.
type GroupedRecord struct {
	TransactionRecord
	GroupName string  `json:"group_name"`
	MainArea  float64 `json:"main_area"`
}

// ComplexGroup is the per-complex result of mega-complex extraction: the
// matched keyword, the modal rounded unit size, and only the records
// traded at that size.
type ComplexGroup struct {
	Name     string              `json:"name"`
	MainArea float64             `json:"main_area"`
	Records  []TransactionRecord `json:"records"`
}

// ComplexSummary aggregates one complex group for the comparison table.
type ComplexSummary struct {
	Name     string  `json:"name"`
	MainArea float64 `json:"main_area"`
	Count    int     `json:"count"`
	MeanEok  float64 `json:"mean_eok"`
	MaxEok   float64 `json:"max_eok"`
	MinEok   float64 `json:"min_eok"`
}

// MonthlyPoint is one point of a monthly mean price series.
type MonthlyPoint struct {
	YearMonth string  `json:"year_month"`
	MeanEok   float64 `json:"mean_eok"`
	Count     int     `json:"count"`
}

// GroupTrendPoint is one point of a per-complex monthly mean series,
// used by the mega comparison chart.
type GroupTrendPoint struct {
	YearMonth string  `json:"year_month"`
	GroupName string  `json:"group_name"`
	MeanEok   float64 `json:"mean_eok"`
}
