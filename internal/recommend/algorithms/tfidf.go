// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"errors"
	"math"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrIndexOutOfRange is returned for an item position outside the matrix.
var ErrIndexOutOfRange = errors.New("tfidf: item index out of range")

// TFIDFConfig contains configuration for the TF-IDF similarity model.
type TFIDFConfig struct {
	// NumWorkers is the number of goroutines computing matrix rows.
	// If <= 0, defaults to runtime.NumCPU().
	NumWorkers int
}

// TFIDF holds a dense, symmetric item-by-item cosine similarity matrix over
// TF-IDF weighted documents.
//
// Weights use raw term counts and smoothed inverse document frequency
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and each document vector is L2-normalized, so similarity is a plain dot
// product. A document with no terms has similarity 0 with everything,
// including itself.
type TFIDF struct {
	BaseAlgorithm
	config TFIDFConfig

	n          int
	sim        []float32
	vocabulary map[string]int
}

// NewTFIDF creates an untrained TF-IDF model.
func NewTFIDF(cfg TFIDFConfig) *TFIDF {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	return &TFIDF{
		BaseAlgorithm: NewBaseAlgorithm("tfidf"),
		config:        cfg,
	}
}

// sparseVec is an L2-normalized vector with ascending term indices.
type sparseVec struct {
	terms   []int
	weights []float64
}

// Train builds the similarity matrix for docs. Position k in docs becomes
// item index k.
func (t *TFIDF) Train(ctx context.Context, docs []string) error {
	t.acquireTrainLock()
	defer t.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	n := len(docs)
	vocab := make(map[string]int)
	counts := make([]map[int]int, n)
	var df []int

	for k, doc := range docs {
		counts[k] = make(map[int]int)
		for _, tok := range Tokenize(doc) {
			id, ok := vocab[tok]
			if !ok {
				id = len(vocab)
				vocab[tok] = id
				df = append(df, 0)
			}
			if counts[k][id] == 0 {
				df[id]++
			}
			counts[k][id]++
		}
	}

	idf := make([]float64, len(df))
	for id, d := range df {
		idf[id] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	vecs := make([]sparseVec, n)
	for k, c := range counts {
		vecs[k] = newSparseVec(c, idf)
	}

	sim := make([]float32, n*n)
	workers := t.config.NumWorkers
	if workers > n && n > 0 {
		workers = n
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Strided rows balance the upper-triangle work across workers.
			for i := w; i < n; i += workers {
				if ContextCancelled(gctx) {
					return gctx.Err()
				}
				if len(vecs[i].terms) == 0 {
					continue
				}
				sim[i*n+i] = float32(dot(vecs[i], vecs[i]))
				for j := i + 1; j < n; j++ {
					s := float32(dot(vecs[i], vecs[j]))
					sim[i*n+j] = s
					sim[j*n+i] = s
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	t.n = n
	t.sim = sim
	t.vocabulary = vocab
	t.markTrained()
	return nil
}

// Len returns the number of items in the matrix.
func (t *TFIDF) Len() int {
	t.acquirePredictLock()
	defer t.releasePredictLock()
	return t.n
}

// Row returns a copy of row i of the matrix.
func (t *TFIDF) Row(i int) ([]float64, error) {
	t.acquirePredictLock()
	defer t.releasePredictLock()

	if i < 0 || i >= t.n {
		return nil, ErrIndexOutOfRange
	}
	row := make([]float64, t.n)
	for j, v := range t.sim[i*t.n : (i+1)*t.n] {
		row[j] = float64(v)
	}
	return row, nil
}

// VocabularySize returns the number of distinct terms seen in training.
func (t *TFIDF) VocabularySize() int {
	t.acquirePredictLock()
	defer t.releasePredictLock()
	return len(t.vocabulary)
}

func newSparseVec(counts map[int]int, idf []float64) sparseVec {
	v := sparseVec{terms: make([]int, 0, len(counts))}
	for id := range counts {
		v.terms = append(v.terms, id)
	}
	sort.Ints(v.terms)

	v.weights = make([]float64, len(v.terms))
	var norm float64
	for k, id := range v.terms {
		w := float64(counts[id]) * idf[id]
		v.weights[k] = w
		norm += w * w
	}
	if norm == 0 {
		return sparseVec{}
	}
	norm = math.Sqrt(norm)
	for k := range v.weights {
		v.weights[k] /= norm
	}
	return v
}

// dot merges two sorted sparse vectors.
func dot(a, b sparseVec) float64 {
	var s float64
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		switch {
		case a.terms[i] == b.terms[j]:
			s += a.weights[i] * b.weights[j]
			i++
			j++
		case a.terms[i] < b.terms[j]:
			i++
		default:
			j++
		}
	}
	return s
}

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Tokenize lowercases doc, treats "|" as a separator, keeps runs of two or
// more word characters, and drops English stop words.
func Tokenize(doc string) []string {
	doc = strings.ToLower(strings.ReplaceAll(doc, "|", " "))
	raw := tokenPattern.FindAllString(doc, -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := stopWords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}

// stopWords is a common English stop word list.
var stopWords = func() map[string]struct{} {
	words := strings.Fields(`
		a about above after again against all almost alone along already also although always am among
		an and another any anyhow anyone anything anyway anywhere are around as at be became because
		become becomes been before behind being below beside besides between beyond both but by can
		cannot could did do does done down during each either else elsewhere enough etc even ever every
		everyone everything everywhere except few for former from further get give had has have he her
		here hers herself him himself his how however i ie if in indeed into is it its itself just last
		least less many may me meanwhile might mine more moreover most mostly much must my myself neither
		never nevertheless next no nobody none noone nor not nothing now nowhere of off often on once one
		only onto or other others otherwise our ours ourselves out over own per perhaps please rather re
		same seem seemed seeming seems several she should since so some somehow someone something
		sometime sometimes somewhere still such than that the their them themselves then thence there
		thereafter thereby therefore therein these they this those though through throughout thru thus to
		together too toward towards under until up upon us very via was we well were what whatever when
		whence whenever where whereafter whereas whereby wherein whether which while who whoever whole
		whom whose why will with within without would yet you your yours yourself yourselves`)
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
