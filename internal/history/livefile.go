// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// TimeLayout is the timestamp format of the Live history file.
const TimeLayout = "2006-01-02 15:04:05"

// parseLayout also accepts fractional seconds.
const parseLayout = "2006-01-02 15:04:05.999999999"

// ErrMalformedFile is returned when the Live history file cannot be parsed.
var ErrMalformedFile = errors.New("history: malformed live history file")

var liveHeader = []string{"userId", "movieId", "timestamp", "rating", "source"}

// ReadLiveFile reads Live records from path. A missing file yields no
// records and no error.
func ReadLiveFile(path string) ([]models.HistoryRecord, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open live history: %w", err)
	}
	defer f.Close()

	return ReadLive(f)
}

// ReadLive parses Live records from r. The header must name userId,
// movieId (or itemId) and timestamp. rating and source are optional.
func ReadLive(r io.Reader) ([]models.HistoryRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read header: %w", ErrMalformedFile, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	if _, ok := cols["movieId"]; !ok {
		if i, alias := cols["itemId"]; alias {
			cols["movieId"] = i
		}
	}
	for _, required := range []string{"userId", "movieId", "timestamp"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedFile, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []models.HistoryRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedFile, line, err)
		}

		rec, err := parseLiveRow(field, row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedFile, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseLiveRow(field func([]string, string) string, row []string) (models.HistoryRecord, error) {
	var rec models.HistoryRecord

	userID, err := strconv.Atoi(field(row, "userId"))
	if err != nil {
		return rec, fmt.Errorf("userId: %w", err)
	}
	movieID, err := strconv.Atoi(field(row, "movieId"))
	if err != nil {
		return rec, fmt.Errorf("movieId: %w", err)
	}
	ts, err := time.ParseInLocation(parseLayout, field(row, "timestamp"), time.UTC)
	if err != nil {
		return rec, fmt.Errorf("timestamp: %w", err)
	}

	// Every row in this file is Live; a Derived tag is tolerated but not kept.
	if raw := field(row, "source"); raw != "" && !models.Source(raw).Valid() {
		return rec, fmt.Errorf("source: unknown value %q", raw)
	}

	rec = models.HistoryRecord{
		UserID:    userID,
		MovieID:   movieID,
		Timestamp: ts,
		Source:    models.SourceLive,
	}

	if raw := field(row, "rating"); raw != "" && !strings.EqualFold(raw, "nan") {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, fmt.Errorf("rating: %w", err)
		}
		if math.IsInf(v, 0) {
			return rec, fmt.Errorf("rating: %q is not finite", raw)
		}
		rec.Rating = &v
	}
	return rec, nil
}

// WriteLive writes records to w with the Live file header.
func WriteLive(w io.Writer, records []models.HistoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(liveHeader); err != nil {
		return err
	}
	for _, r := range records {
		rating := ""
		if r.Rating != nil {
			rating = strconv.FormatFloat(*r.Rating, 'f', -1, 64)
		}
		row := []string{
			strconv.Itoa(r.UserID),
			strconv.Itoa(r.MovieID),
			r.Timestamp.UTC().Format(TimeLayout),
			rating,
			string(models.SourceLive),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLiveFile replaces path with records. The file is written to a
// temporary sibling and renamed into place.
func WriteLiveFile(path string, records []models.HistoryRecord) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()        //nolint:errcheck // already failing
			_ = os.Remove(tmpPath) //nolint:errcheck // best-effort cleanup
		}
	}()

	if err = WriteLive(tmp, records); err != nil {
		return fmt.Errorf("write live history: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync live history: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close live history: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename live history: %w", err)
	}
	return nil
}
