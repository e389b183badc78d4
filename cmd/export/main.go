// Command export renders previously persisted content from the database.
// It needs no credentials and makes no network calls; comment sentiment is
// recomputed locally since it is never persisted.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/threadlens/threadlens/internal/export"
	"github.com/threadlens/threadlens/internal/logging"
	"github.com/threadlens/threadlens/internal/sentiment"
	"github.com/threadlens/threadlens/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	subreddit := flag.String("subreddit", "", "filter by subreddit (optional)")
	minUpvotes := flag.Int("min-upvotes", 0, "filter by minimum score (optional)")
	keywords := flag.String("keywords", "", "comma-separated keywords to filter posts (optional)")
	outputDir := flag.String("output-dir", "./content", "directory for exported content")
	format := flag.String("format", "markdown", "export format: markdown, csv, json or all")
	summary := flag.Bool("summary", false, "also write a summary report")
	dbPath := flag.String("db", "reddit_content.db", "path to the content database")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logging.InitLogger(*debug)

	switch *format {
	case "markdown", "csv", "json", "all":
	default:
		fmt.Fprintf(os.Stderr, "invalid -format %q (want markdown, csv, json or all)\n", *format)
		return 2
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		slog.Error("Startup failed", slog.String("error", err.Error()))
		return 1
	}
	defer st.Close()

	posts, err := st.Query(store.QueryFilter{
		Subreddit: *subreddit,
		MinScore:  *minUpvotes,
		Keywords:  splitList(*keywords),
	})
	if err != nil {
		slog.Error("Query failed", slog.String("error", err.Error()))
		return 1
	}

	if len(posts) == 0 {
		fmt.Println("No stored posts matched your criteria")
		return 0
	}

	// Sentiment is transient and not in the database; score the stored
	// comments before rendering.
	scorer := sentiment.NewScorer()
	for i := range posts {
		for j := range posts[i].TopComments {
			c := &posts[i].TopComments[j]
			s := scorer.Score(c.Body)
			c.Sentiment = &s
		}
	}

	if err := export.Write(posts, *outputDir, *format, export.DefaultName); err != nil {
		slog.Warn("Some exports failed", slog.String("error", err.Error()))
	}
	if *summary {
		if err := export.WriteSummary(posts, *outputDir, 5); err != nil {
			slog.Warn("Summary export failed", slog.String("error", err.Error()))
		}
	}

	fmt.Printf("Exported %d posts in %s format to %s\n", len(posts), *format, *outputDir)
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
