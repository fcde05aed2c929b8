// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/models"
)

// Catalog is the ordered, immutable list of movies. Position in the catalog
// is the item index used by the similarity matrix and as the final tie-break
// when ranking.
type Catalog struct {
	movies []models.Movie
	index  map[int]int
}

// NewCatalog builds a Catalog preserving the order of movies.
func NewCatalog(movies []models.Movie) (*Catalog, error) {
	c := &Catalog{
		movies: make([]models.Movie, len(movies)),
		index:  make(map[int]int, len(movies)),
	}
	copy(c.movies, movies)
	for i, m := range c.movies {
		if _, dup := c.index[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate movie id %d", ErrSourceTable, m.ID)
		}
		c.index[m.ID] = i
	}
	return c, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// At returns the movie at position i.
func (c *Catalog) At(i int) models.Movie {
	return c.movies[i]
}

// IndexOf returns the position of movieID.
func (c *Catalog) IndexOf(movieID int) (int, bool) {
	i, ok := c.index[movieID]
	return i, ok
}

// Movie returns the movie with the given ID.
func (c *Catalog) Movie(movieID int) (models.Movie, bool) {
	i, ok := c.index[movieID]
	if !ok {
		return models.Movie{}, false
	}
	return c.movies[i], true
}

// Movies returns a copy of the catalog in order.
func (c *Catalog) Movies() []models.Movie {
	out := make([]models.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}
