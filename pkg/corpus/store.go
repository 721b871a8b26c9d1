package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ErrNotFound is returned when a named corpus does not exist in the store.
var ErrNotFound = errors.New("corpus: not found")

// Info holds the metadata for one stored corpus.
type Info struct {
	Id        int
	Name      string
	WordCount int
	AddedAt   time.Time
}

// SetupSchema initializes the corpus tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaCorpora = `
CREATE TABLE IF NOT EXISTS corpora (
    corpus_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    word_count INTEGER NOT NULL,
    added_at TEXT NOT NULL
);
`
		schemaSamples = `
CREATE TABLE IF NOT EXISTS samples (
    sample_id INTEGER PRIMARY KEY,
    corpus_id INTEGER NOT NULL,
    model_order INTEGER NOT NULL,
    representation TEXT NOT NULL,
    seed TEXT NOT NULL,
    sentence TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaCorpora); err != nil {
		return fmt.Errorf("could not create corpora schema: %w", err)
	}
	if _, err = tx.Exec(schemaSamples); err != nil {
		return fmt.Errorf("could not create samples schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store is the entry point for the corpus library. It holds the database
// connection and prepared SQL statements for efficient access.
type Store struct {
	db               *sql.DB
	stmtInsert       *sql.Stmt
	stmtGetByName    *sql.Stmt
	stmtContent      *sql.Stmt
	stmtList         *sql.Stmt
	stmtInsertSample *sql.Stmt
	stmtSamples      *sql.Stmt
	stmtCountCorpora *sql.Stmt
	stmtCountSamples *sql.Stmt
	stmtSumWords     *sql.Stmt
	logger           *slog.Logger
}

// NewStore creates a Store over an initialized database, pre-compiling all
// necessary SQL statements.
func NewStore(db *sql.DB) (*Store, error) {
	stmtInsert, err := db.Prepare(`INSERT INTO corpora (name, content, word_count, added_at) VALUES (?, ?, ?, ?) RETURNING corpus_id;`)
	if err != nil {
		return nil, err
	}

	stmtGetByName, err := db.Prepare(`SELECT corpus_id, word_count, added_at FROM corpora WHERE name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtContent, err := db.Prepare(`SELECT content FROM corpora WHERE name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtList, err := db.Prepare(`SELECT corpus_id, name, word_count, added_at FROM corpora ORDER BY name;`)
	if err != nil {
		return nil, err
	}

	stmtInsertSample, err := db.Prepare(`INSERT INTO samples (corpus_id, model_order, representation, seed, sentence, created_at) VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtSamples, err := db.Prepare(`SELECT sample_id, corpus_id, model_order, representation, seed, sentence, created_at FROM samples WHERE corpus_id = ? ORDER BY sample_id DESC LIMIT ?;`)
	if err != nil {
		return nil, err
	}

	stmtCountCorpora, err := db.Prepare(`SELECT COUNT(*) FROM corpora;`)
	if err != nil {
		return nil, err
	}

	stmtCountSamples, err := db.Prepare(`SELECT COUNT(*) FROM samples;`)
	if err != nil {
		return nil, err
	}

	stmtSumWords, err := db.Prepare(`SELECT coalesce(SUM(word_count), 0) FROM corpora;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:               db,
		stmtInsert:       stmtInsert,
		stmtGetByName:    stmtGetByName,
		stmtContent:      stmtContent,
		stmtList:         stmtList,
		stmtInsertSample: stmtInsertSample,
		stmtSamples:      stmtSamples,
		stmtCountCorpora: stmtCountCorpora,
		stmtCountSamples: stmtCountSamples,
		stmtSumWords:     stmtSumWords,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtInsert.Close()
	_ = s.stmtGetByName.Close()
	_ = s.stmtContent.Close()
	_ = s.stmtList.Close()
	_ = s.stmtInsertSample.Close()
	_ = s.stmtSamples.Close()
	_ = s.stmtCountCorpora.Close()
	_ = s.stmtCountSamples.Close()
	_ = s.stmtSumWords.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Insert stores a corpus under a unique name and returns its metadata.
func (s *Store) Insert(ctx context.Context, name, content string) (Info, error) {
	wordCount := len(strings.Fields(content))
	addedAt := time.Now().UTC()

	var id int
	err := s.stmtInsert.QueryRowContext(ctx, name, content, wordCount, addedAt.Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return Info{}, fmt.Errorf("could not insert corpus %q: %w", name, err)
	}

	s.logger.InfoContext(ctx, "Corpus stored",
		slog.String("corpus_name", name),
		slog.Int("corpus_id", id),
		slog.Int("word_count", wordCount),
	)

	return Info{Id: id, Name: name, WordCount: wordCount, AddedAt: addedAt}, nil
}

// Get retrieves the metadata for a single corpus by name.
func (s *Store) Get(ctx context.Context, name string) (Info, error) {
	var (
		info    Info
		addedAt string
	)
	err := s.stmtGetByName.QueryRowContext(ctx, name).Scan(&info.Id, &info.WordCount, &addedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, fmt.Errorf("corpus %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Info{}, err
	}
	info.Name = name
	info.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
	return info, nil
}

// Content retrieves the raw text of a stored corpus by name.
func (s *Store) Content(ctx context.Context, name string) (string, error) {
	var content string
	err := s.stmtContent.QueryRowContext(ctx, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("corpus %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// List returns metadata for all stored corpora, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []Info
	for rows.Next() {
		var (
			info    Info
			addedAt string
		)
		if err = rows.Scan(&info.Id, &info.Name, &info.WordCount, &addedAt); err != nil {
			return nil, err
		}
		info.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes a corpus and all of its recorded samples. The operation is
// performed within a transaction.
func (s *Store) Remove(ctx context.Context, info Info) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM samples WHERE corpus_id = ?", info.Id); err != nil {
		return fmt.Errorf("failed to remove samples for corpus %d: %w", info.Id, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM corpora WHERE corpus_id = ?", info.Id); err != nil {
		return fmt.Errorf("failed to remove corpus %d: %w", info.Id, err)
	}

	s.logger.InfoContext(ctx, "Corpus removed",
		slog.String("corpus_name", info.Name),
		slog.Int("corpus_id", info.Id),
	)

	return tx.Commit()
}
