package storage

import (
	"slices"

	"github.com/poiesic/doctrina/core"
)

// Match is one nearest-neighbor hit: a passage and its inner-product
// similarity to the query vector.
type Match struct {
	Score   float32
	Passage *core.Passage
}

// Snapshot is one immutable generation of the vector index: the passage
// records and their L2-normalized embedding vectors, loaded into memory.
//
// A snapshot is never mutated after construction. Concurrent queries may
// share one snapshot freely; a rebuild produces a new snapshot and the
// owner swaps a single reference.
type Snapshot struct {
	Manifest core.IndexManifest
	Passages []*core.Passage
}

// Len returns the number of indexed passages.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Passages)
}

// Dim returns the vector dimensionality of the snapshot.
func (s *Snapshot) Dim() int {
	if s == nil {
		return 0
	}
	return s.Manifest.Dim
}

// Search returns the k highest inner-product matches for the query vector,
// sorted descending. Scores live in [-1, 1]; they are not re-normalized at
// this layer. Returns fewer than k matches when the snapshot holds fewer
// passages, and returns nothing on a cold (nil or empty) snapshot rather
// than failing.
func (s *Snapshot) Search(queryVector []float32, k int) []Match {
	if s == nil || len(s.Passages) == 0 || len(queryVector) == 0 || k <= 0 {
		return nil
	}

	matches := make([]Match, 0, len(s.Passages))
	for _, passage := range s.Passages {
		if len(passage.Vector) == 0 {
			continue
		}
		matches = append(matches, Match{
			Score:   Dot(queryVector, passage.Vector),
			Passage: passage,
		})
	}

	// Sort by similarity descending; ties break on passage ID so repeated
	// searches return identical orderings.
	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Passage.Id < b.Passage.Id {
			return -1
		}
		if a.Passage.Id > b.Passage.Id {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
