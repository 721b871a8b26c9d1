package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sample is one generated sentence recorded against a stored corpus,
// together with the model parameters that produced it.
type Sample struct {
	Id             int
	CorpusId       int
	Order          int
	Representation string
	Seed           string
	Sentence       string
	CreatedAt      time.Time
}

// RecordSample logs a generated sentence for a stored corpus.
func (s *Store) RecordSample(ctx context.Context, info Info, order int, representation, seed, sentence string) error {
	_, err := s.stmtInsertSample.ExecContext(ctx,
		info.Id, order, representation, seed, sentence, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("could not record sample for corpus %q: %w", info.Name, err)
	}
	return nil
}

// Samples returns up to limit of the most recently recorded samples for a
// corpus, newest first.
func (s *Store) Samples(ctx context.Context, info Info, limit int) ([]Sample, error) {
	rows, err := s.stmtSamples.QueryContext(ctx, info.Id, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var samples []Sample
	for rows.Next() {
		var (
			sample    Sample
			createdAt string
		)
		if err = rows.Scan(&sample.Id, &sample.CorpusId, &sample.Order,
			&sample.Representation, &sample.Seed, &sample.Sentence, &createdAt); err != nil {
			return nil, err
		}
		sample.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		samples = append(samples, sample)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// PruneSamples removes all but the newest `keep` samples of a corpus. This
// keeps the sample log from growing without bound on long-lived stores.
func (s *Store) PruneSamples(ctx context.Context, info Info, keep int) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM samples WHERE corpus_id = ? AND sample_id NOT IN (
			SELECT sample_id FROM samples WHERE corpus_id = ? ORDER BY sample_id DESC LIMIT ?
		);
	`, info.Id, info.Id, keep)
	if err != nil {
		return fmt.Errorf("could not prune samples for corpus %q: %w", info.Name, err)
	}
	rowsAffected, _ := res.RowsAffected()

	s.logger.InfoContext(ctx, "Samples pruned",
		slog.String("corpus_name", info.Name),
		slog.Int("corpus_id", info.Id),
		slog.Int("kept", keep),
		slog.Int64("samples_removed", rowsAffected),
	)
	return nil
}
