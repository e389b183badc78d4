package export

import (
	"strings"
	"testing"
	"time"

	"github.com/threadlens/threadlens/internal/models"
)

func TestRenderSummary(t *testing.T) {
	posts := []models.Post{
		{ID: "a", Title: "tooling tooling tooling", Selftext: "tooling compilers", Subreddit: "golang", Author: "u1", Score: 100, CreatedUTC: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC).Unix(), URL: "https://x/a"},
		{ID: "b", Title: "hats", Selftext: "", Subreddit: "golang", Author: "u2", Score: 50, CreatedUTC: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC).Unix(), URL: "https://x/b"},
		{ID: "c", Title: "borrow checker", Selftext: "lifetimes", Subreddit: "rust", Author: "u3", Score: 30, CreatedUTC: time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC).Unix(), URL: "https://x/c"},
	}

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	got := renderSummary(posts, 5, now)

	for _, want := range []string{
		"Generated on 2026-08-28 12:00:00",
		"**Total posts:** 3",
		"**Date range:** 2026-01-10 to 2026-02-20",
		"**Mean score:** 60.0",
		"- r/golang: 2",
		"- r/rust: 1",
		"tooling (4 mentions)",
		"1. **tooling tooling tooling** (100 points in r/golang by u/u1)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q\n%s", want, got)
		}
	}

	// Subreddit breakdown is count-descending.
	if strings.Index(got, "- r/golang: 2") > strings.Index(got, "- r/rust: 1") {
		t.Error("subreddit counts should be ordered descending")
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	got := renderSummary(nil, 5, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	if !strings.Contains(got, "**Total posts:** 0") {
		t.Error("empty summary should still report zero posts")
	}
	if strings.Contains(got, "Mean score") {
		t.Error("empty summary should omit statistics sections")
	}
}

func TestWriteSummaryTopPostsCapped(t *testing.T) {
	var posts []models.Post
	for i := 0; i < 8; i++ {
		posts = append(posts, models.Post{
			ID: string(rune('a' + i)), Title: "post", Subreddit: "golang",
			Score: 10 * (i + 1), CreatedUTC: 1700000000,
		})
	}

	got := renderSummary(posts, 5, time.Now())
	if strings.Contains(got, "6. **") {
		t.Error("top posts list should cap at 5 entries")
	}
	if !strings.Contains(got, "(80 points in r/golang") {
		t.Error("top post should be the highest score")
	}
}
