package chain

import "github.com/cespare/xxhash/v2"

// span is a half-open byte range within the normalized corpus buffer. Spans
// never own text; they are valid only as long as the chain that owns the
// buffer lives.
type span struct {
	start, end int
}

// interner collapses equal-content state spans to one canonical integer
// identity, so the transition tables key on small ids instead of copied
// text and lookups after the first occurrence never compare characters.
// Buckets are keyed by a 64-bit content hash; entries within a bucket are
// resolved by exact ordinal comparison, so a hash collision costs a linear
// scan of the bucket but never a wrong identity.
type interner struct {
	corpus  string
	hash    func(string) uint64
	buckets map[uint64][]int
	spans   []span
}

func newInterner(corpus string) *interner {
	return &interner{
		corpus:  corpus,
		hash:    xxhash.Sum64String,
		buckets: make(map[uint64][]int),
	}
}

// intern resolves the candidate span to its canonical state id, registering
// it as a new state if this exact text has not been seen before. The boolean
// reports whether the id was newly created.
func (in *interner) intern(s span) (int, bool) {
	text := in.corpus[s.start:s.end]
	h := in.hash(text)
	for _, id := range in.buckets[h] {
		c := in.spans[id]
		if in.corpus[c.start:c.end] == text {
			return id, false
		}
	}
	id := len(in.spans)
	in.spans = append(in.spans, s)
	in.buckets[h] = append(in.buckets[h], id)
	return id, true
}
