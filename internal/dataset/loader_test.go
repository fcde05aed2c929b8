// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func TestReadMovies(t *testing.T) {
	t.Parallel()

	input := "movieId,title,genres\n" +
		"1,Toy Story (1995),Adventure|Animation|Children\n" +
		"2,\"American President, The (1995)\",Comedy|Drama|Romance\n"

	movies, err := ReadMovies(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMovies() error = %v", err)
	}
	want := []models.Movie{
		{ID: 1, Title: "Toy Story (1995)", Genres: "Adventure|Animation|Children"},
		{ID: 2, Title: "American President, The (1995)", Genres: "Comedy|Drama|Romance"},
	}
	if !reflect.DeepEqual(movies, want) {
		t.Errorf("ReadMovies() = %+v, want %+v", movies, want)
	}
}

func TestReadMovies_ItemIDAliasAndColumnOrder(t *testing.T) {
	t.Parallel()

	movies, err := ReadMovies(strings.NewReader("title,itemId\nA,7\n"))
	if err != nil {
		t.Fatalf("ReadMovies() error = %v", err)
	}
	if len(movies) != 1 || movies[0].ID != 7 || movies[0].Title != "A" || movies[0].Genres != "" {
		t.Errorf("ReadMovies() = %+v", movies)
	}
}

func TestReadRatings(t *testing.T) {
	t.Parallel()

	input := "userId,movieId,rating,timestamp\n1,1,4.0,964982703\n1,3,4.5,964981247.5\n"
	ratings, err := ReadRatings(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRatings() error = %v", err)
	}
	want := []models.Rating{
		{UserID: 1, MovieID: 1, Value: 4.0, Timestamp: 964982703},
		{UserID: 1, MovieID: 3, Value: 4.5, Timestamp: 964981247.5},
	}
	if !reflect.DeepEqual(ratings, want) {
		t.Errorf("ReadRatings() = %+v, want %+v", ratings, want)
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		read  func(string) error
		input string
	}{
		{"movies empty", readMovies, ""},
		{"movies missing title", readMovies, "movieId,genres\n1,Drama\n"},
		{"movies bad id", readMovies, "movieId,title\nx,A\n"},
		{"ratings missing rating", readRatings, "userId,movieId,timestamp\n1,1,0\n"},
		{"ratings bad value", readRatings, "userId,movieId,rating,timestamp\n1,1,five,0\n"},
		{"ratings bad timestamp", readRatings, "userId,movieId,rating,timestamp\n1,1,5,yesterday\n"},
		{"ratings NaN value", readRatings, "userId,movieId,rating,timestamp\n1,1,NaN,0\n"},
		{"ratings Inf value", readRatings, "userId,movieId,rating,timestamp\n1,2,+Inf,0\n"},
		{"ratings NaN timestamp", readRatings, "userId,movieId,rating,timestamp\n1,2,4,NaN\n"},
		{"ratings Inf timestamp", readRatings, "userId,movieId,rating,timestamp\n1,2,4,-Inf\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.read(tt.input); !errors.Is(err, ErrSourceTable) {
				t.Errorf("error = %v, want ErrSourceTable", err)
			}
		})
	}
}

func readMovies(s string) error {
	_, err := ReadMovies(strings.NewReader(s))
	return err
}

func readRatings(s string) error {
	_, err := ReadRatings(strings.NewReader(s))
	return err
}

func TestLoadMovies_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadMovies(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrSourceTable) {
		t.Errorf("LoadMovies() error = %v, want ErrSourceTable", err)
	}
}

func TestLoadMovies_Duplicate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte("movieId,title\n1,A\n1,B\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMovies(path); !errors.Is(err, ErrSourceTable) {
		t.Errorf("LoadMovies() error = %v, want ErrSourceTable", err)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog([]models.Movie{{ID: 10, Title: "A"}, {ID: 5, Title: "B"}})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if i, ok := c.IndexOf(5); !ok || i != 1 {
		t.Errorf("IndexOf(5) = (%d, %v), want (1, true)", i, ok)
	}
	if _, ok := c.Movie(99); ok {
		t.Error("Movie(99) ok = true, want false")
	}
	if m, _ := c.Movie(10); m.Title != "A" {
		t.Errorf("Movie(10).Title = %q, want A", m.Title)
	}
}

func TestUserIDs(t *testing.T) {
	t.Parallel()

	got := UserIDs([]models.Rating{{UserID: 3}, {UserID: 1}, {UserID: 3}, {UserID: 2}})
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("UserIDs() = %v, want [1 2 3]", got)
	}
}
