package chain

import (
	"context"
	"log/slog"
	"strings"
)

// WordsChain copies each state as a slice of its words. It sits between the
// string and span representations: word text is copied once per state, but
// the final word of a state is shared with its slice instead of being
// stored again.
type WordsChain struct {
	order    int
	states   [][]string // id -> copied word window
	starters []int
	trans    [][]int
	logger   *slog.Logger
}

// BuildWords normalizes the corpus and indexes it into a WordsChain of the
// given order.
func BuildWords(corpus string, order int) (*WordsChain, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	text := Normalize(corpus)

	c := &WordsChain{
		order:  order,
		logger: discardLogger(),
	}
	index := make(map[string]int)

	win := newRing[string](order)
	scratch := make([]string, 0, order)
	seen := make(map[int]struct{})
	count := 0
	prev := -1

	for _, word := range strings.Split(text, " ") {
		if word == "" {
			continue
		}
		win.set(count, word)
		count++
		if count < order {
			if terminator(word) {
				prev = -1
				count = 0
			}
			continue
		}

		scratch = win.window(count, scratch)
		key := strings.Join(scratch, " ")
		id, ok := index[key]
		if !ok {
			id = len(c.states)
			index[key] = id
			c.states = append(c.states, append([]string(nil), scratch...))
			c.trans = append(c.trans, nil)
		}

		if prev < 0 {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				c.starters = append(c.starters, id)
			}
		} else {
			c.trans[prev] = append(c.trans[prev], id)
		}
		prev = id

		if terminator(word) {
			prev = -1
			count = 0
		}
	}

	if len(c.starters) == 0 {
		return nil, &InsufficientCorpusError{Order: order, CorpusLen: len(text), Excerpt: excerpt(text)}
	}
	return c, nil
}

// Order returns the number of consecutive words forming one state.
func (c *WordsChain) Order() int { return c.order }

// Starters returns the number of distinct sentence-starter states.
func (c *WordsChain) Starters() int { return len(c.starters) }

// Stats summarizes the shape of the model.
func (c *WordsChain) Stats() Stats { return tableStats(c, len(c.states)) }

// Generate performs one random walk over the model.
func (c *WordsChain) Generate(rng RandomSource, opts ...GenerateOption) (string, error) {
	return generate(c, rng, opts)
}

// GenerateStream performs one random walk, emitting each word on the
// returned channel.
func (c *WordsChain) GenerateStream(ctx context.Context, rng RandomSource, opts ...GenerateOption) <-chan Token {
	return generateStream(ctx, c, rng, c.logger, opts)
}

// SetLogger sets the logger used for generation diagnostics. By default,
// all logs are discarded.
func (c *WordsChain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

func (c *WordsChain) starter(i int) int { return c.starters[i] }

func (c *WordsChain) stateText(id int) string { return strings.Join(c.states[id], " ") }

func (c *WordsChain) lastWord(id int) string {
	w := c.states[id]
	return w[len(w)-1]
}

func (c *WordsChain) succLen(id int) int { return len(c.trans[id]) }

func (c *WordsChain) succ(id, i int) int { return c.trans[id][i] }
