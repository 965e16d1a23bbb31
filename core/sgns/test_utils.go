package sgns

import (
	"math/rand/v2"
	"strings"
)

const (
	testingCorpus    = "a b a b a c a"
	testingWindow    = 1
	testingNegative  = 2
	testingCacheSize = 16
	testingSeed      = 42
)

// CreateTestingRand returns a generator with a fixed seed.
func CreateTestingRand() *rand.Rand {
	return rand.New(rand.NewPCG(testingSeed, 0))
}

// CreateTestingTokens returns the tokens of "a b a b a c a".
func CreateTestingTokens() []string {
	return strings.Fields(testingCorpus)
}

// CreateTestingVocabulary builds a vocabulary with ids:
//
//	<unk>: 0
//	    a: 1
//	    b: 2
//	    c: 3
func CreateTestingVocabulary() *Vocabulary {
	v := NewVocabulary()
	v.Build(CreateTestingTokens())
	return v
}

// CreateTestingSampler builds a negative sampler over the encoded
// testing corpus.
func CreateTestingSampler() (*NegativeSampler, []int32) {
	ids := CreateTestingVocabulary().Encode(CreateTestingTokens())
	table, e := NewUnigramTable(ids)
	if e != nil {
		panic("CreateTestingSampler failed at NewUnigramTable")
	}
	return NewNegativeSampler(table, testingCacheSize, CreateTestingRand()), ids
}
