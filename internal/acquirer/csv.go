// Package acquirer loads raw transaction rows from the two Seoul data
// sources: the local historical CSV dump and the live open-data API.
package acquirer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/junlife-hub/house-analysis/internal/config"
	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

var (
	// ErrFileNotFound means no candidate path held the requested CSV.
	ErrFileNotFound = errors.New("transaction file not found")
	// ErrDecode means the file was neither valid UTF-8 nor valid CP949.
	ErrDecode = errors.New("transaction file decode failed")
)

// CSVLoader locates and parses the local transaction CSV dumps.
type CSVLoader struct {
	dataDir string
	// fallbackPaths are tried after the data-dir candidates.
	fallbackPaths []string
	logger        *slog.Logger
}

// NewCSVLoader creates a CSV loader rooted at the configured data
// directory.
func NewCSVLoader(dataDir string, logger *slog.Logger) *CSVLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVLoader{
		dataDir: dataDir,
		logger:  logger.With(slog.String("component", "csv_loader")),
	}
}

// LoadHistorical loads the historical-year CSV. Candidate locations are
// tried in order; the first existing file wins. Returns ErrFileNotFound
// when no candidate exists, which callers surface to the user rather
// than treating as fatal.
func (l *CSVLoader) LoadHistorical(ctx context.Context) ([]domain.RawRecord, error) {
	return l.load(ctx, config.HistoricalCSVName)
}

// LoadLiveYear loads the current-year CSV used by the all-local data
// mode. A missing file is not an error here: the mode simply proceeds
// with historical data only.
func (l *CSVLoader) LoadLiveYear(ctx context.Context) ([]domain.RawRecord, bool, error) {
	rows, err := l.load(ctx, config.LiveYearCSVName)
	if errors.Is(err, ErrFileNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (l *CSVLoader) load(ctx context.Context, filename string) ([]domain.RawRecord, error) {
	path, err := l.locate(filename)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "loading transaction CSV",
		slog.String("path", path))

	rows, err := l.parseFile(path)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "loaded transaction CSV",
		slog.String("path", path),
		slog.Int("rows", len(rows)))

	return rows, nil
}

// locate tries each candidate path in order and returns the first that
// exists.
func (l *CSVLoader) locate(filename string) (string, error) {
	candidates := []string{
		filepath.Join(l.dataDir, filename),
		filepath.Join(l.dataDir, "korea", "data", filename),
	}
	candidates = append(candidates, l.fallbackPaths...)

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s (tried %d locations)", ErrFileNotFound, filename, len(candidates))
}

// parseFile reads the file as UTF-8, falling back to CP949 when the
// bytes are not valid UTF-8 (the legacy encoding of Korean government
// exports).
func (l *CSVLoader) parseFile(path string) ([]domain.RawRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Strip a UTF-8 BOM if present; Excel-produced CSVs carry one.
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	var reader io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		l.logger.Warn("CSV is not valid UTF-8, retrying as CP949",
			slog.String("path", path))
		decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
		}
		reader = bytes.NewReader(decoded)
	}

	return parseCSV(reader)
}

// parseCSV maps CSV columns to RawRecord fields by header name, so the
// column order of the export does not matter.
func parseCSV(r io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []domain.RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		columnMap[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{"CTRT_DAY", "BLDG_NM", "ARCH_AREA", "THING_AMT", "FLR"} {
		if _, ok := columnMap[required]; !ok {
			return nil, fmt.Errorf("missing required CSV column: %s", required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := columnMap[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var rows []domain.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row drops; the batch continues.
			continue
		}

		rows = append(rows, domain.RawRecord{
			ContractDay:  cell(row, "CTRT_DAY"),
			District:     cell(row, "CGG_NM"),
			Dong:         cell(row, "STDG_NM"),
			BuildingName: cell(row, "BLDG_NM"),
			ArchArea:     cell(row, "ARCH_AREA"),
			Amount:       cell(row, "THING_AMT"),
			Floor:        cell(row, "FLR"),
		})
	}

	return rows, nil
}
