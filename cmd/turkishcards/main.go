package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/avodyanin-ux/turkish-cards/pkg/config"
	"github.com/avodyanin-ux/turkish-cards/pkg/history"
	"github.com/avodyanin-ux/turkish-cards/pkg/ingest"
	"github.com/avodyanin-ux/turkish-cards/pkg/study"
	"github.com/avodyanin-ux/turkish-cards/pkg/words"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	configFlag := flag.String("config", "", "Path to YAML config file")
	dataFlag := flag.String("data", "", "Path to the words JSON file (overrides config)")
	seedFlag := flag.String("seed", "", "Path to a bundled seed file copied on first run (overrides config)")
	historyFlag := flag.String("history", "", "Path to the SQLite review log (overrides config; empty string in config disables it)")
	importFlag := flag.String("import", "", "Tab-separated vocabulary file to merge into the word store")
	importURLFlag := flag.String("import-url", "", "Article URL to scan for new vocabulary candidates")
	candidatesFlag := flag.Int("candidates", 30, "Maximum candidates to print for -import-url")
	statsFlag := flag.Bool("stats", false, "Print statistics and exit")
	flag.Parse()

	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()

	// Setup context for graceful shutdown of network fetches.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatal("loading config failed", zap.Error(err))
	}
	if *dataFlag != "" {
		cfg.DataFile = *dataFlag
	}
	if *seedFlag != "" {
		cfg.SeedFile = *seedFlag
	}
	if *historyFlag != "" {
		cfg.HistoryDB = *historyFlag
	}

	store := words.NewStore(cfg.DataFile, cfg.SeedFile, logger)

	if *importFlag != "" {
		runImport(store, *importFlag, logger)
		return
	}
	if *importURLFlag != "" {
		runImportURL(ctx, store, *importURLFlag, *candidatesFlag, logger)
		return
	}

	tuning, err := cfg.Tuning.StudyConfig()
	if err != nil {
		logger.Fatal("invalid tuning config", zap.Error(err))
	}

	engine, err := study.NewEngine(store, tuning)
	if err != nil {
		logger.Fatal("creating engine failed", zap.Error(err))
	}
	engine.Logger = logger

	var historyDB *sql.DB
	if cfg.HistoryDB != "" {
		historyDB = openHistory(cfg.HistoryDB, logger)
		if historyDB != nil {
			defer historyDB.Close()
			engine.Sink = history.Sink{DB: historyDB}
		}
	}

	if *statsFlag {
		printStats(engine, historyDB)
		return
	}

	runSession(engine, historyDB)
}

// openHistory opens and migrates the review log. The log is optional, so
// failures only cost the session summary.
func openHistory(path string, logger *zap.Logger) *sql.DB {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		logger.Warn("opening review log failed", zap.String("path", path), zap.Error(err))
		return nil
	}
	if err := history.Init(conn); err != nil {
		logger.Warn("migrating review log failed", zap.String("path", path), zap.Error(err))
		conn.Close()
		return nil
	}
	return conn
}

func runImport(store *words.Store, path string, logger *zap.Logger) {
	additions, err := ingest.ParseTranslations(path)
	if err != nil {
		logger.Fatal("reading vocabulary file failed", zap.Error(err))
	}

	collection := store.Load()
	merged, added := words.MergeNew(collection, additions)
	if added > 0 {
		if err := store.Save(merged); err != nil {
			logger.Fatal("saving words failed", zap.Error(err))
		}
	}
	fmt.Printf("Imported %d new words (%d already present).\n", added, len(additions)-added)
}

func runImportURL(ctx context.Context, store *words.Store, rawURL string, limit int, logger *zap.Logger) {
	fmt.Printf("Fetching %s...\n", rawURL)
	article, err := ingest.FetchArticle(ctx, rawURL)
	if err != nil {
		logger.Fatal("fetching article failed", zap.Error(err))
	}
	fmt.Printf("Title: %s\n", article.Title)
	fmt.Printf("Extracted text length: %d chars\n", len(article.TextContent))

	known := make(map[string]bool)
	for _, w := range store.Load() {
		known[strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(w.SourceText))] = true
	}

	candidates := ingest.ExtractCandidates(article.TextContent, known, limit)
	if len(candidates) == 0 {
		fmt.Println("No new vocabulary candidates found.")
		return
	}

	fmt.Printf("Top %d candidates (add translations and merge with -import):\n", len(candidates))
	for _, c := range candidates {
		fmt.Printf("  %-24s %d\n", c.Term, c.Count)
	}
}

func printStats(engine *study.Engine, historyDB *sql.DB) {
	s := engine.Stats()
	fmt.Printf("Learned: %d | Cooling down: %d | Total: %d | Remaining: %d\n",
		s.Learned, s.Cooldown, s.Total, s.Remaining)

	if historyDB != nil {
		total, known, err := history.Counts(historyDB)
		if err == nil && total > 0 {
			fmt.Printf("Reviews logged: %d (%d known, %d missed)\n", total, known, total-known)
		}
	}
}

// runSession is the interactive study loop: Enter reveals the back of the
// card, then y/n answers it and q quits.
func runSession(engine *study.Engine, historyDB *sql.DB) {
	in := bufio.NewScanner(os.Stdin)
	answered := 0

	for {
		s := engine.Stats()
		fmt.Printf("\nLearned: %d | Cooling down: %d | Total: %d | Remaining: %d\n",
			s.Learned, s.Cooldown, s.Total, s.Remaining)

		card, ok := engine.NextCard()
		if !ok {
			if due, onCooldown := engine.NextDue(); onCooldown {
				hours := max(0, (due-time.Now().Unix())/3600)
				fmt.Printf("No words available right now. The next one returns in about %d h.\n", hours)
			} else {
				fmt.Println("All words are learned or the word list is empty.")
			}
			break
		}

		fmt.Printf("\n  %s\n\n", card.Front)
		fmt.Print("Press Enter to reveal... ")
		if !in.Scan() {
			break
		}
		fmt.Printf("\n  %s\n\n", card.Back)

		done := false
		for !done {
			fmt.Print("Did you know it? [y/n/q]: ")
			if !in.Scan() {
				return
			}
			switch strings.ToLower(strings.TrimSpace(in.Text())) {
			case "y":
				engine.AnswerKnow()
				answered++
				done = true
			case "n":
				engine.AnswerDontKnow()
				answered++
				done = true
			case "q":
				printSummary(historyDB, answered)
				return
			}
		}
	}

	printSummary(historyDB, answered)
}

func printSummary(historyDB *sql.DB, answered int) {
	fmt.Printf("\nSession over: %d cards answered.\n", answered)
	if historyDB == nil {
		return
	}
	total, known, err := history.Counts(historyDB)
	if err != nil || total == 0 {
		return
	}
	fmt.Printf("All time: %d reviews, %d known (%.0f%%).\n",
		total, known, float64(known)/float64(total)*100)
}
