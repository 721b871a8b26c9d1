package chain

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateScenarioThreeSentences(t *testing.T) {
	corpus := "The first sentence. The second sentence. The third sentence."
	wants := []string{"The first sentence.", "The second sentence.", "The third sentence."}

	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			c, err := b.build(corpus, 2)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			for draw, want := range wants {
				got, err := c.Generate(&scriptSource{draws: []int{draw, 0}})
				if err != nil {
					t.Fatalf("Generate with starter draw %d failed: %v", draw, err)
				}
				if got != want {
					t.Errorf("starter draw %d: Generate() = %q, want %q", draw, got, want)
				}
			}
		})
	}
}

func TestGenerateScenarioBranch(t *testing.T) {
	corpus := "The big dog was happy but the small dog was very sad."

	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			c, err := b.build(corpus, 2)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}

			// Always taking the second successor exits the "dog was" cycle.
			got, err := c.Generate(fixedSource(1))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			want := "The big dog was very sad."
			if got != want {
				t.Errorf("Generate() = %q, want %q", got, want)
			}

			// Always taking the first successor loops through "dog was"
			// forever, so the walk must overflow.
			_, err = c.Generate(fixedSource(0))
			var ovErr *OverflowError
			if !errors.As(err, &ovErr) {
				t.Fatalf("cyclic walk error = %v, want *OverflowError", err)
			}
			if ovErr.Words != DefaultMaxWords {
				t.Errorf("overflow at %d words, want %d", ovErr.Words, DefaultMaxWords)
			}
		})
	}
}

func TestGenerateScenarioSingleWord(t *testing.T) {
	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			c, err := b.build("Word.", 1)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			got, err := c.Generate(fixedSource(0))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got != "Word." {
				t.Errorf("Generate() = %q, want %q", got, "Word.")
			}
		})
	}
}

func TestGenerateScenarioShortSentenceStarter(t *testing.T) {
	// At order 1 the one-word sentence is itself a reachable starter.
	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			c, err := b.build("Skip. Word sentence.", 1)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if c.Starters() != 2 {
				t.Fatalf("Starters() = %d, want 2", c.Starters())
			}
			got, err := c.Generate(&scriptSource{draws: []int{0}})
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got != "Skip." {
				t.Errorf("Generate() = %q, want %q", got, "Skip.")
			}
		})
	}
}

func TestGenerateNotBuilt(t *testing.T) {
	models := []Chain{&SpanChain{}, &StringChain{}, &WordsChain{}}
	for _, m := range models {
		if _, err := m.Generate(fixedSource(0)); !errors.Is(err, ErrNotBuilt) {
			t.Errorf("Generate on zero-value %T error = %v, want ErrNotBuilt", m, err)
		}
	}
}

func TestGenerateWithMaxWords(t *testing.T) {
	corpus := "The big dog was happy but the small dog was very sad."
	c, err := BuildSpan(corpus, 2)
	if err != nil {
		t.Fatalf("BuildSpan failed: %v", err)
	}
	_, err = c.Generate(fixedSource(0), WithMaxWords(10))
	var ovErr *OverflowError
	if !errors.As(err, &ovErr) {
		t.Fatalf("error = %v, want *OverflowError", err)
	}
	if ovErr.Words != 10 {
		t.Errorf("overflow at %d words, want 10", ovErr.Words)
	}
	if ovErr.Partial == "" {
		t.Error("overflow error carries no partial sentence")
	}
}

func TestGenerateDeterminismAcrossRepresentations(t *testing.T) {
	corpus := createBenchmarkCorpus()

	for _, order := range []int{1, 2, 3} {
		var reference string
		for i, b := range builders {
			c, err := b.build(corpus, order)
			if err != nil {
				t.Fatalf("%s order %d: build failed: %v", b.name, order, err)
			}
			got, err := c.Generate(NewSource(42))
			if err != nil {
				// An overflow is a legal outcome on a cyclic walk; it
				// must still be identical across representations.
				var ovErr *OverflowError
				if !errors.As(err, &ovErr) {
					t.Fatalf("%s order %d: Generate failed: %v", b.name, order, err)
				}
				got = "overflow: " + ovErr.Partial
			}
			if i == 0 {
				reference = got
				continue
			}
			if got != reference {
				t.Errorf("%s order %d diverged:\n got %q\nwant %q", b.name, order, got, reference)
			}
		}
	}
}

func TestGenerateRepeatable(t *testing.T) {
	c, err := BuildSpan(createBenchmarkCorpus(), 2)
	if err != nil {
		t.Fatalf("BuildSpan failed: %v", err)
	}
	first, err := c.Generate(NewSeedSource("stable seed"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := c.Generate(NewSeedSource("stable seed"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different sentences:\n%q\n%q", first, second)
	}
}

func TestGenerateTermination(t *testing.T) {
	c, err := BuildSpan(createBenchmarkCorpus(), 2)
	if err != nil {
		t.Fatalf("BuildSpan failed: %v", err)
	}
	for seed := uint64(0); seed < 50; seed++ {
		out, err := c.Generate(NewSource(seed))
		if err != nil {
			var ovErr *OverflowError
			if errors.As(err, &ovErr) {
				continue
			}
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}
		last := out[len(out)-1]
		if last != '.' && last != '?' && last != '!' {
			t.Errorf("seed %d: sentence does not end with a terminator: %q", seed, out)
		}
	}
}

func TestGenerateNoCrossSentenceTransitions(t *testing.T) {
	corpus := createBenchmarkCorpus()

	// Every adjacent word pair inside one corpus sentence.
	valid := make(map[string]struct{})
	prev := ""
	for _, word := range strings.Split(Normalize(corpus), " ") {
		if prev != "" {
			valid[prev+" "+word] = struct{}{}
		}
		if terminator(word) {
			prev = ""
		} else {
			prev = word
		}
	}

	c, err := BuildSpan(corpus, 2)
	if err != nil {
		t.Fatalf("BuildSpan failed: %v", err)
	}
	for seed := uint64(0); seed < 20; seed++ {
		out, err := c.Generate(NewSource(seed))
		if err != nil {
			continue
		}
		words := strings.Split(out, " ")
		for i := 1; i < len(words); i++ {
			pair := words[i-1] + " " + words[i]
			if _, ok := valid[pair]; !ok {
				t.Errorf("seed %d: generated pair %q never occurs within one corpus sentence", seed, pair)
			}
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()
	for _, builder := range builders {
		b.Run(builder.name, func(b *testing.B) {
			c, err := builder.build(corpus, 2)
			if err != nil {
				b.Fatalf("build failed: %v", err)
			}
			rng := NewSource(42)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s, err := c.Generate(rng)
				if err != nil {
					var ovErr *OverflowError
					if errors.As(err, &ovErr) {
						continue
					}
					b.Fatalf("Generate failed: %v", err)
				}
				b.SetBytes(int64(len(s)))
			}
		})
	}
}
