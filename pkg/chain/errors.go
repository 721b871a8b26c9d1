package chain

import (
	"errors"
	"fmt"
)

// ErrNotBuilt is returned by Generate when the model has no starter states,
// meaning it was never built or was built from an empty corpus. This is a
// programming error at the call site, not a recoverable condition.
var ErrNotBuilt = errors.New("chain: model not built")

// InsufficientCorpusError is returned by the builders when the corpus
// contains no sentence of at least `order` words, so no starter state could
// be formed. The caller must supply a larger corpus or lower the order.
type InsufficientCorpusError struct {
	Order     int
	CorpusLen int
	Excerpt   string
}

func (e *InsufficientCorpusError) Error() string {
	return fmt.Sprintf("chain: no states of order %d could be formed from the corpus (%d bytes): %q",
		e.Order, e.CorpusLen, e.Excerpt)
}

// OverflowError is returned by Generate when a walk reaches the word
// ceiling. It signals a cyclic transition graph, not a bug; the caller may
// retry with a different random source or accept the failure.
type OverflowError struct {
	Words   int
	Partial string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("chain: word limit %d reached for sentence: %s", e.Words, e.Partial)
}

const excerptLen = 64

// excerpt trims the normalized corpus to a short diagnostic snippet.
func excerpt(text string) string {
	if len(text) <= excerptLen {
		return text
	}
	return text[:excerptLen] + "..."
}
