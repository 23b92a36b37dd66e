package domain

// DatasetMeta describes the merged dataset a view was computed from.
type DatasetMeta struct {
	Mode      string `json:"mode"`
	TotalRows int    `json:"total_rows"`
	LiveRows  int    `json:"live_rows"`
	AsOf      string `json:"as_of"`
	Warning   string `json:"warning,omitempty"`
}

// MegaView is the payload behind the ten-complex comparison tab: the most
// recent trades at each complex's representative unit size, per-complex
// summary statistics, and the per-complex monthly mean series.
type MegaView struct {
	Meta      DatasetMeta       `json:"meta"`
	Recent    []GroupedRecord   `json:"recent"`
	Summaries []ComplexSummary  `json:"summaries"`
	Trend     []GroupTrendPoint `json:"trend"`
}

// DetailView is the payload behind the single-complex drill-down tab.
// Records double as the floor scatter series (date, price, floor).
// TrendLine holds one fitted value per Monthly point and is empty when
// fewer than two months of data exist.
type DetailView struct {
	Meta          DatasetMeta         `json:"meta"`
	Complex       string              `json:"complex"`
	AreaRequested int                 `json:"area_requested"`
	AreaUsed      int                 `json:"area_used"`
	AreaFallback  bool                `json:"area_fallback"`
	Records       []TransactionRecord `json:"records"`
	Monthly       []MonthlyPoint      `json:"monthly"`
	TrendLine     []float64           `json:"trend_line,omitempty"`
}
