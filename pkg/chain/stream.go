package chain

import (
	"context"
	"log/slog"
)

// Token is one unit of streamed generation output.
type Token struct {
	// Text is the word, including its leading separator after the first
	// token, so that concatenating all tokens rebuilds the sentence.
	Text string
	// Final marks the last token of a completed sentence. A stream that
	// closes without a Final token was cancelled, overflowed, or ran
	// against an unbuilt model.
	Final bool
}

// generateStream is the channel-based twin of generate. It makes the same
// random draws in the same order, so a stream and a Generate call with
// equal sources emit the same sentence.
func generateStream(ctx context.Context, t table, rng RandomSource, logger *slog.Logger, opts []GenerateOption) <-chan Token {
	o := applyOptions(opts)
	// Zero-value chains have no logger yet.
	if logger == nil {
		logger = discardLogger()
	}
	out := make(chan Token)

	go func() {
		defer close(out)

		if t.Starters() == 0 {
			logger.ErrorContext(ctx, "stream requested on unbuilt model")
			return
		}

		cur := t.starter(rng.Next(t.Starters()))
		words := t.Order()

		select {
		case <-ctx.Done():
			logger.DebugContext(ctx, "generation stream cancelled", slog.Int("words_emitted", 0))
			return
		case out <- Token{Text: t.stateText(cur), Final: t.succLen(cur) == 0}:
		}

		for t.succLen(cur) > 0 {
			words++
			if words >= o.maxWords {
				logger.DebugContext(ctx, "generation stream overflowed",
					slog.Int("word_limit", o.maxWords),
				)
				return
			}
			cur = t.succ(cur, rng.Next(t.succLen(cur)))

			select {
			case <-ctx.Done():
				logger.DebugContext(ctx, "generation stream cancelled", slog.Int("words_emitted", words))
				return
			case out <- Token{Text: " " + t.lastWord(cur), Final: t.succLen(cur) == 0}:
			}
		}
	}()

	return out
}
