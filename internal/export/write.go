package export

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/threadlens/threadlens/internal/models"
)

// DefaultName is the base filename for the CSV and JSON artifacts.
const DefaultName = "reddit_content"

// Write renders posts in the requested format ("markdown", "csv", "json" or
// "all") into dir. A failing format is logged and does not stop the others;
// the joined error reports every failure.
func Write(posts []models.Post, dir, format, name string) error {
	var targets []string
	switch format {
	case "all":
		targets = []string{"markdown", "csv", "json"}
	case "markdown", "csv", "json":
		targets = []string{format}
	default:
		return fmt.Errorf("[Export] unknown format %q (want markdown, csv, json or all)", format)
	}

	var errs []error
	for _, target := range targets {
		var err error
		switch target {
		case "markdown":
			err = WriteMarkdown(posts, dir)
		case "csv":
			err = WriteCSV(posts, dir, name)
		case "json":
			err = WriteJSON(posts, dir, name)
		}
		if err != nil {
			slog.Error("[Export] Format failed", slog.String("format", target), slog.String("error", err.Error()))
			errs = append(errs, err)
			continue
		}
		slog.Info("[Export] Wrote output", slog.String("format", target), slog.Int("posts", len(posts)), slog.String("dir", dir))
	}

	return errors.Join(errs...)
}
