package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/threadlens/threadlens/internal/models"
)

// PostJSON mirrors models.Post with epoch timestamps rendered as ISO-8601
// strings, which is the only field-level difference between an in-memory
// collection and its JSON export.
type PostJSON struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Subreddit   string        `json:"subreddit"`
	URL         string        `json:"url"`
	Selftext    string        `json:"selftext"`
	UpvoteRatio float64       `json:"upvote_ratio"`
	Score       int           `json:"score"`
	CreatedUTC  string        `json:"created_utc"`
	NumComments int           `json:"num_comments"`
	CollectedAt string        `json:"collected_at"`
	TopComments []CommentJSON `json:"top_comments"`
}

type CommentJSON struct {
	ID         string            `json:"id"`
	PostID     string            `json:"post_id"`
	Author     string            `json:"author"`
	Body       string            `json:"body"`
	Score      int               `json:"score"`
	CreatedUTC string            `json:"created_utc"`
	Sentiment  *models.Sentiment `json:"sentiment,omitempty"`
}

// WriteJSON dumps the full post collection, comments nested, into
// <name>.json.
func WriteJSON(posts []models.Post, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("[Export] creating output dir %s: %w", dir, err)
	}

	out := make([]PostJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, toJSONPost(p))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("[Export] encoding JSON: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("[Export] writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a previously exported collection.
func ReadJSON(path string) ([]PostJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Export] reading %s: %w", path, err)
	}

	var posts []PostJSON
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("[Export] decoding %s: %w", path, err)
	}
	return posts, nil
}

func toJSONPost(p models.Post) PostJSON {
	comments := make([]CommentJSON, 0, len(p.TopComments))
	for _, c := range p.TopComments {
		comments = append(comments, CommentJSON{
			ID:         c.ID,
			PostID:     c.PostID,
			Author:     c.Author,
			Body:       c.Body,
			Score:      c.Score,
			CreatedUTC: isoTime(c.CreatedUTC),
			Sentiment:  c.Sentiment,
		})
	}

	return PostJSON{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Subreddit:   p.Subreddit,
		URL:         p.URL,
		Selftext:    p.Selftext,
		UpvoteRatio: p.UpvoteRatio,
		Score:       p.Score,
		CreatedUTC:  isoTime(p.CreatedUTC),
		NumComments: p.NumComments,
		CollectedAt: p.CollectedAt.UTC().Format(time.RFC3339),
		TopComments: comments,
	}
}

func isoTime(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(time.RFC3339)
}
