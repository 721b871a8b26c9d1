package chain

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// Representation selects the internal state encoding a Build call uses. All
// representations implement the same contract and generate identical text
// for identical inputs; they differ only in how state text is stored.
type Representation int

const (
	// SpanStates keeps zero-copy offset ranges into one owned corpus
	// buffer, with canonical identities assigned by content interning.
	SpanStates Representation = iota
	// StringStates copies each state into its own phrase string.
	StringStates
	// WordStates copies each state as a slice of its words.
	WordStates
)

func (r Representation) String() string {
	switch r {
	case SpanStates:
		return "span"
	case StringStates:
		return "string"
	case WordStates:
		return "words"
	}
	return fmt.Sprintf("Representation(%d)", int(r))
}

// ParseRepresentation maps the textual names used in config and flags back
// onto a Representation.
func ParseRepresentation(s string) (Representation, error) {
	switch s {
	case "span":
		return SpanStates, nil
	case "string":
		return StringStates, nil
	case "words":
		return WordStates, nil
	}
	return 0, fmt.Errorf("chain: unknown representation %q", s)
}

// Chain is a built Markov model. It is immutable after construction and may
// be read concurrently by any number of Generate calls, each with its own
// RandomSource. SetLogger must not be called concurrently with generation.
type Chain interface {
	// Order returns the number of consecutive words forming one state.
	Order() int
	// Starters returns the number of distinct sentence-starter states.
	Starters() int
	// Stats summarizes the shape of the model.
	Stats() Stats
	// Generate performs one random walk and returns the sentence, or
	// ErrNotBuilt / an *OverflowError.
	Generate(rng RandomSource, opts ...GenerateOption) (string, error)
	// GenerateStream performs one random walk, emitting each word on the
	// returned channel. The channel is closed on completion, overflow, or
	// context cancellation.
	GenerateStream(ctx context.Context, rng RandomSource, opts ...GenerateOption) <-chan Token
	// SetLogger enables logging for generation diagnostics. By default,
	// all logs are discarded.
	SetLogger(logger *slog.Logger)
}

// Build normalizes the corpus and indexes it into a Chain of the requested
// order using the given representation.
func Build(corpus string, order int, rep Representation) (Chain, error) {
	switch rep {
	case SpanStates:
		return BuildSpan(corpus, order)
	case StringStates:
		return BuildString(corpus, order)
	case WordStates:
		return BuildWords(corpus, order)
	}
	return nil, fmt.Errorf("chain: unknown representation %d", int(rep))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// terminator reports whether a word ends a sentence. Transitions never
// cross a terminator.
func terminator(word string) bool {
	switch word[len(word)-1] {
	case '.', '?', '!':
		return true
	}
	return false
}

func checkOrder(order int) error {
	if order < 1 {
		return fmt.Errorf("chain: order must be at least 1, got %d", order)
	}
	return nil
}

// wordSpans iterates the spans of space-separated words in normalized text,
// skipping empty tokens.
func wordSpans(text string) iter.Seq[span] {
	return func(yield func(span) bool) {
		start := -1
		for i := 0; i < len(text); i++ {
			if text[i] != ' ' {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 && !yield(span{start, i}) {
				return
			}
			start = -1
		}
		if start >= 0 {
			yield(span{start, len(text)})
		}
	}
}
