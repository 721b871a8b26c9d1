package chain

import "strings"

// DefaultMaxWords is the sentence word ceiling guarding against cyclic
// transition graphs that would otherwise walk forever.
const DefaultMaxWords = 1000

type genOptions struct {
	maxWords int
}

// GenerateOption configures a single generation walk.
type GenerateOption func(*genOptions)

// WithMaxWords overrides the word ceiling for one walk.
// Default: DefaultMaxWords.
func WithMaxWords(n int) GenerateOption {
	return func(o *genOptions) { o.maxWords = n }
}

func applyOptions(opts []GenerateOption) *genOptions {
	o := &genOptions{maxWords: DefaultMaxWords}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// table is the node-id view of a model that the walk runs on. All three
// representations expose it, so the sequence of random draws, and therefore
// the generated text, is identical across representations of an equivalent
// model.
type table interface {
	Order() int
	Starters() int
	starter(i int) int
	stateText(id int) string
	lastWord(id int) string
	succLen(id int) int
	succ(id, i int) int
}

// generate walks the model: one uniform draw over the starters, then one
// uniform draw over the successor list at each step, emitting only the
// newly revealed final word of each successor state. A state with no
// recorded successors is a natural sentence end.
func generate(t table, rng RandomSource, opts []GenerateOption) (string, error) {
	o := applyOptions(opts)

	if t.Starters() == 0 {
		return "", ErrNotBuilt
	}

	var b strings.Builder
	cur := t.starter(rng.Next(t.Starters()))
	b.WriteString(t.stateText(cur))
	words := t.Order()

	for t.succLen(cur) > 0 {
		words++
		if words >= o.maxWords {
			return "", &OverflowError{Words: words, Partial: b.String()}
		}
		cur = t.succ(cur, rng.Next(t.succLen(cur)))
		b.WriteByte(' ')
		b.WriteString(t.lastWord(cur))
	}

	return b.String(), nil
}
