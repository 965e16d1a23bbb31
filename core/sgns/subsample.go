package sgns

import (
	"math"
	"math/rand/v2"

	"github.com/wangkuiyi/skipgram/core/hist"
)

const DefaultSubsampleThreshold = 1e-5

// KeepProbability is the chance that an occurrence of a token seen
// count times in a corpus of total tokens survives subsampling.  It
// is at least 1 for tokens not more frequent than threshold.
func KeepProbability(count, total int64, threshold float64) float64 {
	if threshold <= 0 || count <= 0 {
		return 1
	}
	return math.Sqrt(threshold * float64(total) / float64(count))
}

// Subsample drops frequent tokens at random.  Every occurrence is
// filtered by an independent draw from rng, and the survivors keep
// their relative order.  A non-positive threshold disables
// subsampling.
func Subsample(tokens []string, threshold float64, rng *rand.Rand) []string {
	if threshold <= 0 {
		return append(make([]string, 0, len(tokens)), tokens...)
	}

	counts := hist.CountWords(tokens)
	total := int64(len(tokens))
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		p := KeepProbability(counts.At(t), total, threshold)
		if p >= 1 || rng.Float64() < p {
			kept = append(kept, t)
		}
	}
	return kept
}
