// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// ErrSourceTable marks a missing or malformed source table.
var ErrSourceTable = errors.New("source table unavailable or malformed")

// LoadMovies reads the movie catalog from path.
func LoadMovies(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceTable, err)
	}
	defer func() { _ = f.Close() }()

	movies, err := ReadMovies(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewCatalog(movies)
}

// LoadRatings reads the ratings corpus from path.
func LoadRatings(path string) ([]models.Rating, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceTable, err)
	}
	defer func() { _ = f.Close() }()

	ratings, err := ReadRatings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ratings, nil
}

// ReadMovies parses a movies table. The genres column is optional.
func ReadMovies(r io.Reader) ([]models.Movie, error) {
	cr := newReader(r)
	cols, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	idCol, err := cols.require("movieId", "itemId")
	if err != nil {
		return nil, err
	}
	titleCol, err := cols.require("title")
	if err != nil {
		return nil, err
	}
	genresCol, hasGenres := cols.find("genres")

	var movies []models.Movie
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSourceTable, line, err)
		}

		id, err := parseInt(rec, idCol)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: movie id: %w", ErrSourceTable, line, err)
		}
		m := models.Movie{ID: id, Title: field(rec, titleCol)}
		if hasGenres {
			m.Genres = field(rec, genresCol)
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// ReadRatings parses a ratings table.
func ReadRatings(r io.Reader) ([]models.Rating, error) {
	cr := newReader(r)
	cols, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	userCol, err := cols.require("userId")
	if err != nil {
		return nil, err
	}
	movieCol, err := cols.require("movieId", "itemId")
	if err != nil {
		return nil, err
	}
	ratingCol, err := cols.require("rating")
	if err != nil {
		return nil, err
	}
	tsCol, err := cols.require("timestamp")
	if err != nil {
		return nil, err
	}

	var ratings []models.Rating
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSourceTable, line, err)
		}

		var rt models.Rating
		if rt.UserID, err = parseInt(rec, userCol); err != nil {
			return nil, fmt.Errorf("%w: line %d: user id: %w", ErrSourceTable, line, err)
		}
		if rt.MovieID, err = parseInt(rec, movieCol); err != nil {
			return nil, fmt.Errorf("%w: line %d: movie id: %w", ErrSourceTable, line, err)
		}
		if rt.Value, err = parseFloat(rec, ratingCol); err != nil {
			return nil, fmt.Errorf("%w: line %d: rating: %w", ErrSourceTable, line, err)
		}
		if rt.Timestamp, err = parseFloat(rec, tsCol); err != nil {
			return nil, fmt.Errorf("%w: line %d: timestamp: %w", ErrSourceTable, line, err)
		}
		ratings = append(ratings, rt)
	}
	return ratings, nil
}

// UserIDs returns the distinct users in ratings, ascending.
func UserIDs(ratings []models.Rating) []int {
	seen := make(map[int]struct{})
	for _, r := range ratings {
		seen[r.UserID] = struct{}{}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// columns maps header names to positions.
type columns map[string]int

func readHeader(cr *csv.Reader) (columns, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrSourceTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrSourceTable, err)
	}
	cols := make(columns, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cols[name] = i
	}
	return cols, nil
}

func (c columns) find(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := c[n]; ok {
			return i, true
		}
	}
	return 0, false
}

func (c columns) require(names ...string) (int, error) {
	if i, ok := c.find(names...); ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: missing column %s", ErrSourceTable, strings.Join(names, " or "))
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseInt(rec []string, i int) (int, error) {
	return strconv.Atoi(field(rec, i))
}

// errNotFinite rejects NaN and Inf, which ParseFloat accepts.
var errNotFinite = errors.New("value is not a finite number")

func parseFloat(rec []string, i int) (float64, error) {
	v, err := strconv.ParseFloat(field(rec, i), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", field(rec, i), errNotFinite)
	}
	return v, nil
}
