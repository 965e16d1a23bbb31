package hist

import "sort"

// Words counts surface tokens.  Subsampling calibrates keep
// probabilities on these counts, before tokens are mapped to ids.
type Words map[string]int64

func NewWords() Words {
	return make(Words)
}

// CountWords returns the histogram of tokens.
func CountWords(tokens []string) Words {
	w := NewWords()
	for _, t := range tokens {
		w.Inc(t, 1)
	}
	return w
}

func (w Words) At(token string) int64 {
	return w[token]
}

func (w Words) Inc(token string, count int) {
	w[token] += int64(count)
}

func (w Words) Len() int {
	return len(w)
}

func (w Words) Total() int64 {
	var sum int64
	for _, c := range w {
		sum += c
	}
	return sum
}

// Top returns at most n tokens with the largest counts, ties broken
// lexically.
func (w Words) Top(n int) []string {
	tokens := make([]string, 0, len(w))
	for t := range w {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		ci, cj := w[tokens[i]], w[tokens[j]]
		return ci > cj || (ci == cj && tokens[i] < tokens[j])
	})
	if n >= 0 && n < len(tokens) {
		tokens = tokens[:n]
	}
	return tokens
}
