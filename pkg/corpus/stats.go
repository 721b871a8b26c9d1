package corpus

import "context"

// StoreStats holds aggregated statistics for the entire store.
type StoreStats struct {
	Corpora    int // number of stored corpora
	Samples    int // number of recorded samples across all corpora
	TotalWords int // sum of word counts across all corpora
}

// Stats returns a snapshot of statistics for the entire store.
func (s *Store) Stats(ctx context.Context) (StoreStats, error) {
	var stats StoreStats
	if err := s.stmtCountCorpora.QueryRowContext(ctx).Scan(&stats.Corpora); err != nil {
		return StoreStats{}, err
	}
	if err := s.stmtCountSamples.QueryRowContext(ctx).Scan(&stats.Samples); err != nil {
		return StoreStats{}, err
	}
	if err := s.stmtSumWords.QueryRowContext(ctx).Scan(&stats.TotalWords); err != nil {
		return StoreStats{}, err
	}
	return stats, nil
}
