// Command scanall scans several subreddits in one run. A failing subreddit
// is logged and skipped; the aggregate report covers the rest.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/threadlens/threadlens/config"
	"github.com/threadlens/threadlens/internal/clients"
	"github.com/threadlens/threadlens/internal/export"
	"github.com/threadlens/threadlens/internal/logging"
	"github.com/threadlens/threadlens/internal/pipeline"
	"github.com/threadlens/threadlens/internal/sentiment"
	"github.com/threadlens/threadlens/internal/store"
	"github.com/threadlens/threadlens/internal/topics"
)

func main() {
	os.Exit(run())
}

func run() int {
	subreddits := flag.String("subreddits", "", "comma-separated subreddits to scan")
	top := flag.Int("top", 25, "number of top posts to scan per subreddit")
	timeFilter := flag.String("time", "week", "time filter: hour, day, week, month, year or all")
	minUpvotes := flag.Int("min-upvotes", 10, "minimum score for posts")
	keywords := flag.String("keywords", "", "comma-separated keywords to filter posts")
	doExport := flag.Bool("export", false, "export results after scanning")
	outputDir := flag.String("output-dir", "./content", "directory for exported content")
	format := flag.String("format", "markdown", "export format: markdown, csv, json or all")
	summary := flag.Bool("summary", false, "also write a summary report")
	dbPath := flag.String("db", "reddit_content.db", "path to the content database")
	configPath := flag.String("config", "reddit.env", "path to the credentials file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logging.InitLogger(*debug)

	subs := splitList(*subreddits)
	if len(subs) == 0 {
		fmt.Fprintln(os.Stderr, "missing required flag: -subreddits")
		flag.Usage()
		return 2
	}
	if !clients.ValidTimeFilters[*timeFilter] {
		fmt.Fprintf(os.Stderr, "invalid -time %q (want hour, day, week, month, year or all)\n", *timeFilter)
		return 2
	}
	if !validFormat(*format) {
		fmt.Fprintf(os.Stderr, "invalid -format %q (want markdown, csv, json or all)\n", *format)
		return 2
	}

	creds, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Startup failed", slog.String("error", err.Error()))
		return 1
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		slog.Error("Startup failed", slog.String("error", err.Error()))
		return 1
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pl := pipeline.New(clients.NewRedditClient(creds), st, sentiment.NewScorer())
	posts := pl.ScanAll(ctx, subs, pipeline.Options{
		Limit:      *top,
		TimeFilter: *timeFilter,
		MinScore:   *minUpvotes,
		Keywords:   splitList(*keywords),
		Delay:      pipeline.DefaultDelay,
	})

	fmt.Printf("Total posts found across %d subreddits: %d\n", len(subs), len(posts))
	if len(posts) == 0 {
		return 0
	}

	if len(posts) >= 5 {
		fmt.Println("\nTrending Topics Across All Subreddits:")
		for _, tc := range topics.Trending(posts, 5) {
			fmt.Printf("- %s (%d mentions)\n", tc.Topic, tc.Count)
		}
	}

	if *doExport {
		if err := export.Write(posts, *outputDir, *format, export.DefaultName); err != nil {
			slog.Warn("Some exports failed", slog.String("error", err.Error()))
		}
	}
	if *summary {
		if err := export.WriteSummary(posts, *outputDir, 5); err != nil {
			slog.Warn("Summary export failed", slog.String("error", err.Error()))
		}
	}

	return 0
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validFormat(f string) bool {
	switch f {
	case "markdown", "csv", "json", "all":
		return true
	}
	return false
}
