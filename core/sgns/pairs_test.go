package sgns

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testingPositives are the positive examples of the testing corpus
// with window size 1, as (centre, context) ids.
var testingPositives = []Example{
	{2, 1, 1}, {2, 1, 1},
	{1, 2, 1}, {1, 2, 1},
	{2, 1, 1}, {2, 1, 1},
	{1, 2, 1}, {1, 3, 1},
	{3, 1, 1}, {3, 1, 1},
}

func drain(t *testing.T, p *PairStream) []Example {
	var out []Example
	for {
		ex, ok, e := p.Next()
		require.NoError(t, e)
		if !ok {
			return out
		}
		out = append(out, ex)
	}
}

func positives(examples []Example) []Example {
	var out []Example
	for _, ex := range examples {
		if ex.Label == 1 {
			out = append(out, ex)
		}
	}
	return out
}

func TestPairStream(t *testing.T) {
	s, ids := CreateTestingSampler()
	windows := Windows(ids, testingWindow)
	examples := drain(t, NewPairStream(windows, s, testingNegative))

	require.Len(t, examples,
		NumExamples(len(windows), testingWindow, testingNegative))
	assert.Equal(t, testingPositives, positives(examples))

	// Each positive is followed by its negatives, which share the
	// centre and avoid the window's contexts.
	perSlot := 1 + testingNegative
	for i, ex := range examples {
		win := windows[i/(2*testingWindow*perSlot)]
		assert.Equal(t, win.Centre, ex.Centre)
		if i%perSlot == 0 {
			assert.Equal(t, int8(1), ex.Label)
		} else {
			assert.Equal(t, int8(0), ex.Label)
			assert.False(t, slices.Contains(win.Contexts, ex.Other))
		}
	}
}

func TestPairStreamReset(t *testing.T) {
	s, ids := CreateTestingSampler()
	p := NewPairStream(Windows(ids, testingWindow), s, testingNegative)
	first := drain(t, p)
	p.Reset()
	second := drain(t, p)
	assert.Equal(t, positives(first), positives(second))
	assert.Len(t, second, len(first))
}

func TestPairStreamWithoutNegatives(t *testing.T) {
	s, ids := CreateTestingSampler()
	examples := drain(t, NewPairStream(Windows(ids, testingWindow), s, 0))
	assert.Equal(t, testingPositives, examples)
}

func TestPairStreamEmpty(t *testing.T) {
	s, _ := CreateTestingSampler()
	assert.Empty(t, drain(t, NewPairStream(nil, s, testingNegative)))
}

func TestPairStreamSurfacesSamplerErrors(t *testing.T) {
	s, _ := CreateTestingSampler()
	p := NewPairStream([]Window{{Centre: 1, Contexts: []int32{1, 2, 3, 2}}},
		s, 1)
	_, _, e := p.Next()
	assert.ErrorIs(t, e, ErrExhaustedVocabulary)
}
