package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", " \n\t ", []string{}},
		{"simple", "The cat sat.", []string{"the", "cat", "sat"}},
		{"punctuation only words are dropped", "a , b -- c @-@ d",
			[]string{"a", "b", "c", "d"}},
		{"inner punctuation is kept", "Don't stop-gap (U.S.A.)",
			[]string{"don't", "stop-gap", "u.s.a"}},
		{"unicode", "ÉCOLE  Straße ÇA!", []string{"école", "straße", "ça"}},
		{"wikitext header", " = Valkyria Chronicles III = \n",
			[]string{"valkyria", "chronicles", "iii"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Preprocess(tc.in))
		})
	}
}

func TestPreprocessSteps(t *testing.T) {
	words := SplitWords("Hello, World!")
	assert.Equal(t, []string{"Hello,", "World!"}, words)
	words = RemovePunctuation(words)
	assert.Equal(t, []string{"Hello", "World"}, words)
	assert.Equal(t, []string{"hello", "world"}, Lower(words))
}
