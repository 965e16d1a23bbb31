package sgns

import "fmt"

// Example is one labeled training pair.  Label is 1 if Other is a
// context word of Centre and 0 if Other was drawn as a negative.
type Example struct {
	Centre int32
	Other  int32
	Label  int8
}

func (e Example) String() string {
	return fmt.Sprintf("(%d, %d, %d)", e.Centre, e.Other, e.Label)
}

// NumExamples returns the number of examples a PairStream emits over
// numWindows windows of size w.
func NumExamples(numWindows, w, negativePerContext int) int {
	return numWindows * w * 2 * (1 + negativePerContext)
}

// PairStream lazily expands windows into examples.  For every context
// word of every window, in order, it emits the positive example
// followed by negativePerContext negatives drawn against that
// window's contexts.
type PairStream struct {
	windows  []Window
	sampler  *NegativeSampler
	negative int

	w, c    int     // current window and context slot
	pending []int32 // negatives of the current context slot
}

func NewPairStream(windows []Window, sampler *NegativeSampler,
	negativePerContext int) *PairStream {
	if negativePerContext < 0 {
		panic(fmt.Sprintf("negativePerContext (%d) < 0", negativePerContext))
	}
	return &PairStream{
		windows:  windows,
		sampler:  sampler,
		negative: negativePerContext,
	}
}

// Reset rewinds the stream to the first window.
func (p *PairStream) Reset() {
	p.w, p.c, p.pending = 0, 0, nil
}

// Next returns the next example, or false after the last window.
func (p *PairStream) Next() (Example, bool, error) {
	for p.w < len(p.windows) {
		win := p.windows[p.w]
		if p.pending != nil {
			if len(p.pending) > 0 {
				neg := p.pending[0]
				p.pending = p.pending[1:]
				return Example{win.Centre, neg, 0}, true, nil
			}
			p.pending = nil
			p.c++
		}
		if p.c >= len(win.Contexts) {
			p.w, p.c = p.w+1, 0
			continue
		}

		negatives, e := p.sampler.Sample(win.Contexts, p.negative)
		if e != nil {
			return Example{}, false, e
		}
		p.pending = negatives
		return Example{win.Centre, win.Contexts[p.c], 1}, true, nil
	}
	return Example{}, false, nil
}
