package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/threadlens/threadlens/internal/models"
)

// WriteCSV writes <name>.csv with one row per post (comments dropped) and
// <name>_comments.csv with one row per comment, sentiment flattened into its
// own columns and the owning post's title and id attached for joins.
func WriteCSV(posts []models.Post, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("[Export] creating output dir %s: %w", dir, err)
	}

	if err := writePostsCSV(posts, filepath.Join(dir, name+".csv")); err != nil {
		return err
	}
	return writeCommentsCSV(posts, filepath.Join(dir, name+"_comments.csv"))
}

func writePostsCSV(posts []models.Post, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[Export] creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{
		"id", "title", "author", "subreddit", "url", "selftext",
		"upvote_ratio", "score", "created_utc", "num_comments", "collected_at",
	})

	for _, p := range posts {
		w.Write([]string{
			p.ID,
			p.Title,
			p.Author,
			p.Subreddit,
			p.URL,
			p.Selftext,
			strconv.FormatFloat(p.UpvoteRatio, 'g', -1, 64),
			strconv.Itoa(p.Score),
			strconv.FormatInt(p.CreatedUTC, 10),
			strconv.Itoa(p.NumComments),
			p.CollectedAt.UTC().Format(time.RFC3339),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("[Export] writing %s: %w", path, err)
	}
	return nil
}

func writeCommentsCSV(posts []models.Post, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[Export] creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{
		"id", "post_id", "post_title", "author", "body", "score", "created_utc",
		"sentiment_negative", "sentiment_neutral", "sentiment_positive", "sentiment_compound",
	})

	for _, p := range posts {
		for _, c := range p.TopComments {
			var s models.Sentiment
			if c.Sentiment != nil {
				s = *c.Sentiment
			}
			w.Write([]string{
				c.ID,
				p.ID,
				p.Title,
				c.Author,
				c.Body,
				strconv.Itoa(c.Score),
				strconv.FormatInt(c.CreatedUTC, 10),
				strconv.FormatFloat(s.Negative, 'g', -1, 64),
				strconv.FormatFloat(s.Neutral, 'g', -1, 64),
				strconv.FormatFloat(s.Positive, 'g', -1, 64),
				strconv.FormatFloat(s.Compound, 'g', -1, 64),
			})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("[Export] writing %s: %w", path, err)
	}
	return nil
}
