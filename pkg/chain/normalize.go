package chain

import (
	"regexp"
	"strings"
)

// Normalizer rewrites raw corpus text into the single-spaced form the
// indexer expects: line breaks become spaces so hyphen-wrapped lines rejoin,
// bracketed editorial annotations and quote/parenthesis marks are removed,
// and runs of whitespace collapse to one space. Normalization is pure and
// idempotent.
type Normalizer struct {
	strip  *regexp.Regexp
	spaces *regexp.Regexp
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithStripPattern overrides the regex used to delete annotations and
// punctuation marks from the corpus.
// Default: `\[.+?\]|["()'_“”’]|\r`
func WithStripPattern(pattern string) NormalizerOption {
	return func(n *Normalizer) {
		n.strip = regexp.MustCompile(pattern)
	}
}

// NewNormalizer creates a Normalizer with default settings, which can be
// overridden by providing one or more NormalizerOption functions.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		// Bracketed editorial annotations, quotation and parenthesis
		// marks (straight and typographic), and stray carriage returns.
		strip:  regexp.MustCompile(`\[.+?\]|["()'_“”’]|\r`),
		spaces: regexp.MustCompile(`\s+`),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Normalize applies the normalization contract to text.
func (n *Normalizer) Normalize(text string) string {
	s := strings.ReplaceAll(text, "\n", " ")
	s = n.strip.ReplaceAllString(s, "")
	s = n.spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var defaultNormalizer = NewNormalizer()

// Normalize rewrites raw corpus text using the default Normalizer. The
// builders call this on every corpus before indexing it.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}
