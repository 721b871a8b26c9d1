package chain

import (
	"context"
	"log/slog"
	"strings"
)

// StringChain is the simplest representation: every state is copied into its
// own phrase string, and a content-keyed map provides the canonical-identity
// guarantee the interning contract requires. It trades memory for
// simplicity; it exists as the baseline the span representation is measured
// against.
type StringChain struct {
	order    int
	states   []string // id -> copied phrase
	last     []string // id -> copied final word
	starters []int
	trans    [][]int
	logger   *slog.Logger
}

// BuildString normalizes the corpus and indexes it into a StringChain of
// the given order.
func BuildString(corpus string, order int) (*StringChain, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	text := Normalize(corpus)

	c := &StringChain{
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
		phrase := strings.Join(scratch, " ")
		id, ok := index[phrase]
		if !ok {
			id = len(c.states)
			index[phrase] = id
			c.states = append(c.states, phrase)
			c.last = append(c.last, word)
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
func (c *StringChain) Order() int { return c.order }

// Starters returns the number of distinct sentence-starter states.
func (c *StringChain) Starters() int { return len(c.starters) }

// Stats summarizes the shape of the model.
func (c *StringChain) Stats() Stats { return tableStats(c, len(c.states)) }

// Generate performs one random walk over the model.
func (c *StringChain) Generate(rng RandomSource, opts ...GenerateOption) (string, error) {
	return generate(c, rng, opts)
}

// GenerateStream performs one random walk, emitting each word on the
// returned channel.
func (c *StringChain) GenerateStream(ctx context.Context, rng RandomSource, opts ...GenerateOption) <-chan Token {
	return generateStream(ctx, c, rng, c.logger, opts)
}

// SetLogger sets the logger used for generation diagnostics. By default,
// all logs are discarded.
func (c *StringChain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

func (c *StringChain) starter(i int) int { return c.starters[i] }

func (c *StringChain) stateText(id int) string { return c.states[id] }

func (c *StringChain) lastWord(id int) string { return c.last[id] }

func (c *StringChain) succLen(id int) int { return len(c.trans[id]) }

func (c *StringChain) succ(id, i int) int { return c.trans[id][i] }
