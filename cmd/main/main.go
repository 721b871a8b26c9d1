package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lbekman/prattle/pkg/chain"
	"github.com/lbekman/prattle/pkg/corpus"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "./config.json", "path to the JSON config file")
		addName    = flag.String("add", "", "store the corpus from -file under this name")
		removeName = flag.String("remove", "", "remove the named corpus and its samples")
		list       = flag.Bool("list", false, "list stored corpora")
		stats      = flag.Bool("stats", false, "print store statistics")
		samplesOf  = flag.String("samples", "", "print recorded samples for the named corpus")
		corpusName = flag.String("corpus", "", "generate from the named stored corpus")
		filePath   = flag.String("file", "", "corpus text file (source for -add, or generate directly from it)")
		order      = flag.Int("order", 0, "words per state (default from config)")
		rep        = flag.String("rep", "", "state representation: span, string, or words (default from config)")
		seed       = flag.String("seed", "", "textual seed for deterministic generation")
		count      = flag.Int("n", 0, "number of sentences to generate (default from config)")
		maxWords   = flag.Int("max-words", 0, "per-sentence word ceiling (default from config)")
		version    = flag.Bool("version", false, "print version information")
	)
	flag.Parse()

	if *version {
		fmt.Printf("prattle %s (%s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(config.LogLevel)

	if err := run(config, logger, options{
		addName:    *addName,
		removeName: *removeName,
		list:       *list,
		stats:      *stats,
		samplesOf:  *samplesOf,
		corpusName: *corpusName,
		filePath:   *filePath,
		order:      *order,
		rep:        *rep,
		seed:       *seed,
		count:      *count,
		maxWords:   *maxWords,
	}); err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	addName    string
	removeName string
	list       bool
	stats      bool
	samplesOf  string
	corpusName string
	filePath   string
	order      int
	rep        string
	seed       string
	count      int
	maxWords   int
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func run(config *Config, logger *slog.Logger, opts options) error {
	ctx := context.Background()

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := initDB(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	if err = corpus.SetupSchema(db); err != nil {
		return fmt.Errorf("failed to set up corpus schema: %w", err)
	}

	store, err := corpus.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create corpus store: %w", err)
	}
	defer store.Close()
	store.SetLogger(logger)

	switch {
	case opts.addName != "":
		return addCorpus(ctx, store, opts.addName, opts.filePath)
	case opts.removeName != "":
		return removeCorpus(ctx, store, opts.removeName)
	case opts.list:
		return listCorpora(ctx, store)
	case opts.stats:
		return printStats(ctx, store)
	case opts.samplesOf != "":
		return printSamples(ctx, store, opts.samplesOf)
	case opts.corpusName != "" || opts.filePath != "":
		return generateSentences(ctx, config, logger, store, opts)
	}

	flag.Usage()
	return errors.New("no operation requested")
}

func addCorpus(ctx context.Context, store *corpus.Store, name, filePath string) error {
	if filePath == "" {
		return errors.New("-add requires -file")
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read corpus file: %w", err)
	}
	info, err := store.Insert(ctx, name, string(content))
	if err != nil {
		return err
	}
	fmt.Printf("stored corpus %q (%d words)\n", info.Name, info.WordCount)
	return nil
}

func removeCorpus(ctx context.Context, store *corpus.Store, name string) error {
	info, err := store.Get(ctx, name)
	if err != nil {
		return err
	}
	return store.Remove(ctx, info)
}

func listCorpora(ctx context.Context, store *corpus.Store) error {
	infos, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no corpora stored")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%-24s %8d words  added %s\n", info.Name, info.WordCount, info.AddedAt.Format(time.DateOnly))
	}
	return nil
}

func printStats(ctx context.Context, store *corpus.Store) error {
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("corpora: %d\nsamples: %d\ntotal words: %d\n", stats.Corpora, stats.Samples, stats.TotalWords)
	return nil
}

func printSamples(ctx context.Context, store *corpus.Store, name string) error {
	info, err := store.Get(ctx, name)
	if err != nil {
		return err
	}
	samples, err := store.Samples(ctx, info, 50)
	if err != nil {
		return err
	}
	for _, sample := range samples {
		fmt.Printf("[%s order=%d rep=%s seed=%q] %s\n",
			sample.CreatedAt.Format(time.DateTime), sample.Order, sample.Representation, sample.Seed, sample.Sentence)
	}
	return nil
}

func generateSentences(ctx context.Context, config *Config, logger *slog.Logger, store *corpus.Store, opts options) error {
	order := opts.order
	if order == 0 {
		order = config.DefaultOrder
	}
	repName := opts.rep
	if repName == "" {
		repName = config.DefaultRepresentation
	}
	count := opts.count
	if count == 0 {
		count = config.SentenceCount
	}
	maxWords := opts.maxWords
	if maxWords == 0 {
		maxWords = config.MaxWords
	}

	rep, err := chain.ParseRepresentation(repName)
	if err != nil {
		return err
	}

	// A stored corpus is preferred; -file generates without storing.
	var (
		text string
		info corpus.Info
	)
	stored := opts.corpusName != ""
	if stored {
		if info, err = store.Get(ctx, opts.corpusName); err != nil {
			return err
		}
		if text, err = store.Content(ctx, opts.corpusName); err != nil {
			return err
		}
	} else {
		content, err := os.ReadFile(opts.filePath)
		if err != nil {
			return fmt.Errorf("failed to read corpus file: %w", err)
		}
		text = string(content)
	}

	start := time.Now()
	model, err := chain.Build(text, order, rep)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	model.SetLogger(logger)

	modelStats := model.Stats()
	logger.Info("Model built",
		slog.Int("order", order),
		slog.String("representation", rep.String()),
		slog.Int("states", modelStats.States),
		slog.Int("starters", modelStats.Starters),
		slog.Int("transitions", modelStats.Transitions),
		slog.Int("terminals", modelStats.Terminals),
		slog.Duration("elapsed", time.Since(start)),
	)

	var rng chain.RandomSource
	if opts.seed != "" {
		rng = chain.NewSeedSource(opts.seed)
	} else {
		rng = chain.NewSource(uint64(time.Now().UnixNano()))
	}

	for i := 0; i < count; i++ {
		sentence, err := model.Generate(rng, chain.WithMaxWords(maxWords))
		if err != nil {
			var ovErr *chain.OverflowError
			if errors.As(err, &ovErr) {
				logger.Warn("Sentence overflowed word ceiling",
					slog.Int("word_limit", maxWords),
				)
				continue
			}
			return err
		}
		fmt.Println(sentence)

		if stored {
			if err := store.RecordSample(ctx, info, order, rep.String(), opts.seed, sentence); err != nil {
				logger.Warn("Failed to record sample", "error", err)
			}
		}
	}

	if stored && config.SampleHistory > 0 {
		if err := store.PruneSamples(ctx, info, config.SampleHistory); err != nil {
			logger.Warn("Failed to prune samples", "error", err)
		}
	}

	return nil
}
