package config

import "time"

// Live API endpoint layout:
// http://openapi.seoul.go.kr:8088/{key}/json/{service}/{start}/{end}/{year}
const (
	// DefaultAPIBaseURL is the Seoul open-data portal endpoint.
	DefaultAPIBaseURL = "http://openapi.seoul.go.kr:8088"

	// RTMSServiceName is the apartment real-transaction service. The JSON
	// payload nests its rows under a top-level key of the same name.
	RTMSServiceName = "tbLnOpendataRtmsV"

	// APIKeyEnvName is the environment variable (and .env entry) holding
	// the Seoul open-data API key.
	APIKeyEnvName = "SEOUL_API_KEY"

	// APIPageSize is the fixed request window of the live API. Page p
	// covers the 1-based inclusive index range [1000p+1, 1000p+1000].
	APIPageSize = 1000

	// DefaultMaxPages bounds live pagination against the rate-limited
	// public API.
	DefaultMaxPages = 5

	// HistoricalYear is the year served by the local CSV; LiveYear is the
	// year fetched from the API.
	HistoricalYear = 2025
	LiveYear       = 2026

	// LiveCacheTTL bounds how long a live fetch is reused before the API
	// is consulted again. The historical CSV is cached until an explicit
	// refresh.
	LiveCacheTTL = time.Hour
)

// WindowStart is the earliest contract date retained after normalization.
var WindowStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// MegaComplexKeywords are the ten tracked complexes, in priority order:
// when a building name contains more than one keyword, the first match
// in this list names the group.
var MegaComplexKeywords = []string{
	"헬리오시티",
	"파크리오",
	"잠실엘스",
	"리센츠",
	"고덕그라시움",
	"고덕아르테온",
	"올림픽선수기자촌",
	"센트라스",
	"마포래미안푸르지오",
	"올림픽파크포레온",
}

// Detail view: the Taegang complex in Gongneung-dong, offered in two
// marketed unit sizes.
const DetailComplexKeyword = "태강"

var DetailAreaChoices = []int{49, 59}

// HistoricalCSVName is the historical transaction dump shipped alongside
// the binary; LiveYearCSVName is its current-year counterpart used by the
// all-local data mode when present.
const (
	HistoricalCSVName = "seoul_real_estate_2025_부동산실거래가.csv"
	LiveYearCSVName   = "seoul_real_estate_2026_부동산실거래가.csv"
)
