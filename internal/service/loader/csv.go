package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"BumpSlide/internal/domain/models"
	"BumpSlide/pkg/logger"
)

// timeLayouts are tried in order. The double space in the first layout is
// what the historical minute exports actually contain.
var timeLayouts = []string{
	"20060102  15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CSVLoader reads minute-bar CSV exports into an ordered, de-duplicated
// series ready for scanning.
type CSVLoader struct {
	log *logger.Logger
}

func NewCSVLoader(log *logger.Logger) *CSVLoader {
	return &CSVLoader{log: log}
}

// LoadFile opens path and loads its bars.
func (l *CSVLoader) LoadFile(path, symbol string) ([]models.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return l.Load(f, symbol)
}

// Load parses CSV from r. The header must name date, open, high, low, close
// and volume columns; extra columns (like a leading row index) are ignored.
// Rows are sorted by timestamp and duplicate timestamps keep the first row.
func (l *CSVLoader) Load(r io.Reader, symbol string) ([]models.Bar, error) {
	start := time.Now()
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var bars []models.Bar
	var skipped int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		bar, err := parseRow(rec, cols, symbol)
		if err != nil {
			skipped++
			l.log.Warn("skipping malformed row", logger.Error(err))
			continue
		}
		bars = append(bars, bar)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	bars, dups := dedupe(bars)

	l.log.Info("csv load complete",
		logger.Int("rows", len(bars)),
		logger.Int("duplicates_dropped", dups),
		logger.Int("rows_skipped", skipped),
		logger.Duration("took", time.Since(start)),
	)
	return bars, nil
}

type columns struct {
	date, open, high, low, closeCol, volume int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{date: -1, open: -1, high: -1, low: -1, closeCol: -1, volume: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "time", "timestamp":
			cols.date = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "close":
			cols.closeCol = i
		case "volume":
			cols.volume = i
		}
	}
	for name, idx := range map[string]int{
		"date": cols.date, "open": cols.open, "high": cols.high,
		"low": cols.low, "close": cols.closeCol, "volume": cols.volume,
	} {
		if idx < 0 {
			return columns{}, fmt.Errorf("csv header missing %q column", name)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols columns, symbol string) (models.Bar, error) {
	ts, err := parseTimestamp(rec[cols.date])
	if err != nil {
		return models.Bar{}, err
	}
	open, err := strconv.ParseFloat(rec[cols.open], 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("open: %w", err)
	}
	high, err := strconv.ParseFloat(rec[cols.high], 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("high: %w", err)
	}
	low, err := strconv.ParseFloat(rec[cols.low], 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("low: %w", err)
	}
	cls, err := strconv.ParseFloat(rec[cols.closeCol], 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("close: %w", err)
	}
	vol, err := strconv.ParseInt(strings.TrimSpace(rec[cols.volume]), 10, 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("volume: %w", err)
	}
	return models.Bar{
		Time: ts, Symbol: symbol,
		Open: open, High: high, Low: low, Close: cls,
		Volume: vol,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// dedupe drops rows sharing a timestamp with an earlier row. Input must be
// sorted.
func dedupe(bars []models.Bar) ([]models.Bar, int) {
	if len(bars) < 2 {
		return bars, 0
	}
	out := bars[:1]
	dropped := 0
	for _, b := range bars[1:] {
		if b.Time.Equal(out[len(out)-1].Time) {
			dropped++
			continue
		}
		out = append(out, b)
	}
	return out, dropped
}
