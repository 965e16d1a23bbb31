package sgns

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrWindowSize = errors.New("window size must be at least 1")

// Window is a centre word and the 2*w words around it, left ones
// first.
type Window struct {
	Centre   int32
	Contexts []int32
}

// NumWindows returns the number of windows of size w in a sequence
// of length n.
func NumWindows(n, w int) int {
	if m := n - 2*w; m > 0 {
		return m
	}
	return 0
}

// Windows extracts a Window for every position at least w tokens away
// from both ends of seq.  Positions closer to the ends are skipped,
// never truncated, so every window has exactly 2*w contexts.
func Windows(seq []int32, w int) []Window {
	if w < 1 {
		panic(fmt.Sprintf("window size (%d) < 1", w))
	}
	ws := make([]Window, 0, NumWindows(len(seq), w))
	for i := w; i < len(seq)-w; i++ {
		contexts := make([]int32, 0, 2*w)
		contexts = append(contexts, seq[i-w:i]...)
		contexts = append(contexts, seq[i+1:i+w+1]...)
		ws = append(ws, Window{Centre: seq[i], Contexts: contexts})
	}
	return ws
}

// NewWindows is Windows with an error instead of a panic on invalid
// window sizes.
func NewWindows(seq []int32, w int) ([]Window, error) {
	if w < 1 {
		return nil, errors.Wrapf(ErrWindowSize, "got %d", w)
	}
	return Windows(seq, w), nil
}
