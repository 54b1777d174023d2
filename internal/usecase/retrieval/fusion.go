package retrieval

import (
	"sort"

	"github.com/corvid-labs/ragdex/internal/domain/search/result"
)

// Weights controls the blend of vector and lexical signals in hybrid
// fusion. Vector similarity is the stronger relevance signal, so it
// carries the larger share by default.
type Weights struct {
	Vector  float64
	Lexical float64
}

// DefaultWeights is the standard 70/30 vector/lexical blend.
var DefaultWeights = Weights{Vector: 0.7, Lexical: 0.3}

// fuse merges vector and lexical result lists into a single ranking.
//
// Each list is min-max normalized independently, which puts unbounded
// BM25 scores and cosine similarities on the same [0,1] scale. A document
// present in both lists gets the full weighted blend and the fused
// signal; a document seen by only one signal keeps its original signal
// and contributes only that side of the blend, so it ranks below an
// equally-scored document confirmed by both.
//
// Ties are broken by id ascending. Input lists are not mutated.
func fuse(vector, lexical []result.Result, w Weights) []result.Result {
	vecNorm := minMaxNormalize(vector)
	lexNorm := minMaxNormalize(lexical)

	type scored struct {
		res    result.Result
		score  float64
		inBoth bool
	}

	merged := make(map[string]*scored, len(vector)+len(lexical))

	for i, r := range vector {
		merged[r.ID()] = &scored{res: r, score: w.Vector * vecNorm[i]}
	}

	for i, r := range lexical {
		contribution := w.Lexical * lexNorm[i]
		if existing, ok := merged[r.ID()]; ok {
			existing.score += contribution
			existing.inBoth = true
		} else {
			merged[r.ID()] = &scored{res: r, score: contribution}
		}
	}

	fused := make([]result.Result, 0, len(merged))
	for _, s := range merged {
		signal := s.res.Signal()
		if s.inBoth {
			signal = result.SignalFused
		}
		fused = append(fused, s.res.WithScore(s.score, signal))
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score() != fused[j].Score() {
			return fused[i].Score() > fused[j].Score()
		}
		return fused[i].ID() < fused[j].ID()
	})

	return fused
}

// minMaxNormalize maps scores onto [0,1] positionally. A single-element
// list normalizes to 1.0, as does a list where every score is equal:
// with no spread there is nothing to rank against, and the element
// should not be zeroed out.
func minMaxNormalize(rs []result.Result) []float64 {
	if len(rs) == 0 {
		return nil
	}

	norm := make([]float64, len(rs))
	if len(rs) == 1 {
		norm[0] = 1.0
		return norm
	}

	lo, hi := rs[0].Score(), rs[0].Score()
	for _, r := range rs[1:] {
		if s := r.Score(); s < lo {
			lo = s
		} else if s > hi {
			hi = s
		}
	}

	if hi == lo {
		for i := range norm {
			norm[i] = 1.0
		}
		return norm
	}

	spread := hi - lo
	for i, r := range rs {
		norm[i] = (r.Score() - lo) / spread
	}
	return norm
}
