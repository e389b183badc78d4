package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/threadlens/threadlens/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return rows
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()

	sentimentValue := models.Sentiment{Negative: 0.0, Neutral: 0.3, Positive: 0.7, Compound: 0.8}
	posts := []models.Post{
		{
			ID: "p1", Title: "first", Subreddit: "golang", Score: 10,
			CollectedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			TopComments: []models.Comment{
				{ID: "c1", PostID: "p1", Author: "alice", Body: "hi", Score: 3, CreatedUTC: 1700000000, Sentiment: &sentimentValue},
			},
		},
		{ID: "p2", Title: "second", Subreddit: "rust", Score: 20},
	}

	if err := WriteCSV(posts, dir, "out"); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	postRows := readCSV(t, filepath.Join(dir, "out.csv"))
	if len(postRows) != 3 {
		t.Fatalf("posts file: got %d rows, want header + 2 data rows", len(postRows))
	}
	if len(postRows[0]) != 11 {
		t.Errorf("posts header has %d columns, want 11", len(postRows[0]))
	}
	if postRows[1][0] != "p1" || postRows[2][0] != "p2" {
		t.Error("post rows should keep input order")
	}

	commentRows := readCSV(t, filepath.Join(dir, "out_comments.csv"))
	if len(commentRows) != 2 {
		t.Fatalf("comments file: got %d rows, want header + 1 data row", len(commentRows))
	}

	header := commentRows[0]
	row := commentRows[1]
	col := func(name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("comments header missing column %q", name)
		return ""
	}

	if col("post_title") != "first" || col("post_id") != "p1" {
		t.Error("comment rows should carry the owning post's title and id")
	}
	if col("sentiment_compound") != "0.8" {
		t.Errorf("sentiment_compound = %q, want flattened 0.8", col("sentiment_compound"))
	}
}
