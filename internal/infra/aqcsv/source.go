// Package aqcsv loads sensor samples from the hourly air quality CSV export.
package aqcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
)

// The export uses day-first timestamps like "13/11/2024 14:00".
var timeLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// Source reads the CSV file on every Samples call so a replaced file is
// picked up by the next refresh.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource builds a CSV-backed sample source.
func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger.With("component", "aqcsv.source")}
}

// Samples parses the file and returns the most recent reading per station.
// Rows missing any crucial field (value, coordinates, timestamp) are skipped
// and counted, matching how the dataset was cleaned originally.
func (s *Source) Samples(ctx context.Context) ([]pollution.SensorSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open air quality csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		readings []pollution.Reading
		skipped  int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		reading, ok := parseRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		readings = append(readings, reading)
	}
	if skipped > 0 {
		s.logger.Warn("skipped rows with missing or unparseable fields", "skipped", skipped)
	}

	samples := pollution.LatestPerStation(readings)
	s.logger.Info("air quality csv loaded", "rows", len(readings), "stations", len(samples))
	return samples, nil
}

type columns struct {
	station, timestamp, value, lat, lon int
}

func resolveColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := columns{station: -1, timestamp: -1, value: -1, lat: -1, lon: -1}
	lookup := func(names ...string) int {
		for _, name := range names {
			if i, ok := index[name]; ok {
				return i
			}
		}
		return -1
	}
	cols.station = lookup("station_name", "station")
	cols.timestamp = lookup("local_time", "timestamp")
	cols.value = lookup("pm2_5", "pm2.5_corrected", "pm25")
	cols.lat = lookup("latitude", "lat")
	cols.lon = lookup("longitude", "lon", "lng")

	if cols.station < 0 || cols.timestamp < 0 || cols.value < 0 || cols.lat < 0 || cols.lon < 0 {
		return columns{}, fmt.Errorf("csv header missing required columns, got %v", header)
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (pollution.Reading, bool) {
	max := cols.station
	for _, c := range []int{cols.timestamp, cols.value, cols.lat, cols.lon} {
		if c > max {
			max = c
		}
	}
	if len(row) <= max {
		return pollution.Reading{}, false
	}

	station := strings.TrimSpace(row[cols.station])
	if station == "" {
		return pollution.Reading{}, false
	}
	recordedAt, ok := parseTime(row[cols.timestamp])
	if !ok {
		return pollution.Reading{}, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(row[cols.value]), 64)
	if err != nil || value < 0 {
		return pollution.Reading{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(row[cols.lat]), 64)
	if err != nil {
		return pollution.Reading{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[cols.lon]), 64)
	if err != nil {
		return pollution.Reading{}, false
	}

	return pollution.Reading{
		Station:    station,
		Latitude:   lat,
		Longitude:  lon,
		Value:      value,
		RecordedAt: recordedAt,
	}, true
}

func parseTime(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

var _ pollution.SampleSource = (*Source)(nil)
