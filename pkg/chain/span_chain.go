package chain

import (
	"context"
	"log/slog"
)

// SpanChain is the zero-copy representation. It exclusively owns the
// normalized corpus buffer; every state is a non-owning byte span into that
// buffer, collapsed to a canonical id by content interning. No state text is
// ever copied, and no lookup after a state's first occurrence compares
// characters.
type SpanChain struct {
	corpus   string
	order    int
	states   []span  // id -> canonical state span
	last     []span  // id -> span of the state's final word
	starters []int   // distinct starter ids, insertion order
	trans    [][]int // id -> successor ids, insertion order, duplicates kept
	logger   *slog.Logger
}

// BuildSpan normalizes the corpus and indexes it into a SpanChain of the
// given order.
func BuildSpan(corpus string, order int) (*SpanChain, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	text := Normalize(corpus)

	c := &SpanChain{
		corpus: text,
		order:  order,
		logger: discardLogger(),
	}
	in := newInterner(text)

	win := newRing[span](order)
	scratch := make([]span, 0, order)
	seen := make(map[int]struct{})
	count := 0
	prev := -1

	for w := range wordSpans(text) {
		win.set(count, w)
		count++
		if count < order {
			// A sentence shorter than the window contributes nothing.
			if terminator(text[w.start:w.end]) {
				prev = -1
				count = 0
			}
			continue
		}

		scratch = win.window(count, scratch)
		id, fresh := in.intern(span{start: scratch[0].start, end: scratch[order-1].end})
		if fresh {
			c.trans = append(c.trans, nil)
			c.last = append(c.last, scratch[order-1])
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

		if terminator(text[w.start:w.end]) {
			prev = -1
			count = 0
		}
	}

	c.states = in.spans
	if len(c.starters) == 0 {
		return nil, &InsufficientCorpusError{Order: order, CorpusLen: len(text), Excerpt: excerpt(text)}
	}
	return c, nil
}

// Order returns the number of consecutive words forming one state.
func (c *SpanChain) Order() int { return c.order }

// Starters returns the number of distinct sentence-starter states.
func (c *SpanChain) Starters() int { return len(c.starters) }

// Stats summarizes the shape of the model.
func (c *SpanChain) Stats() Stats { return tableStats(c, len(c.states)) }

// Generate performs one random walk over the model.
func (c *SpanChain) Generate(rng RandomSource, opts ...GenerateOption) (string, error) {
	return generate(c, rng, opts)
}

// GenerateStream performs one random walk, emitting each word on the
// returned channel.
func (c *SpanChain) GenerateStream(ctx context.Context, rng RandomSource, opts ...GenerateOption) <-chan Token {
	return generateStream(ctx, c, rng, c.logger, opts)
}

// SetLogger sets the logger used for generation diagnostics. By default,
// all logs are discarded.
func (c *SpanChain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

func (c *SpanChain) starter(i int) int { return c.starters[i] }

func (c *SpanChain) stateText(id int) string {
	s := c.states[id]
	return c.corpus[s.start:s.end]
}

func (c *SpanChain) lastWord(id int) string {
	s := c.last[id]
	return c.corpus[s.start:s.end]
}

func (c *SpanChain) succLen(id int) int { return len(c.trans[id]) }

func (c *SpanChain) succ(id, i int) int { return c.trans[id][i] }
