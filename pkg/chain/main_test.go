package chain

import (
	"strings"
	"sync"
)

// builders lists every representation so behavioral tests can run the same
// assertions against all of them.
var builders = []struct {
	name  string
	build func(corpus string, order int) (Chain, error)
}{
	{"span", func(c string, o int) (Chain, error) { return BuildSpan(c, o) }},
	{"string", func(c string, o int) (Chain, error) { return BuildString(c, o) }},
	{"words", func(c string, o int) (Chain, error) { return BuildWords(c, o) }},
}

// scriptSource replays a fixed list of draws, reducing each modulo the
// requested bound. It makes walk decisions explicit in test cases.
type scriptSource struct {
	draws []int
	i     int
}

func (s *scriptSource) Next(n int) int {
	d := s.draws[s.i%len(s.draws)]
	s.i++
	return d % n
}

// fixedSource always returns the same draw modulo the bound, which pins the
// walk to one branch at every fork.
type fixedSource int

func (s fixedSource) Next(n int) int { return int(s) % n }

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus synthesizes a corpus with enough repeated structure
// to give every order a dense transition table.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		subjects := []string{"the fox", "a raven", "the miller", "an old sailor", "the queen"}
		verbs := []string{"watched", "followed", "forgot", "remembered", "praised"}
		objects := []string{"the river", "a distant fire", "the harvest", "her shadow", "the storm"}

		var sb strings.Builder
		for i := 0; i < 2000; i++ {
			sb.WriteString(subjects[i%len(subjects)])
			sb.WriteByte(' ')
			sb.WriteString(verbs[(i/3)%len(verbs)])
			sb.WriteByte(' ')
			sb.WriteString(objects[(i/7)%len(objects)])
			sb.WriteString(". ")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
