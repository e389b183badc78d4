package models

import "time"

// Post is a Reddit submission captured during a scan. TopComments is
// populated in memory by the pipeline; comments live in their own table and
// are joined back by PostID on query.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Subreddit   string    `json:"subreddit"`
	URL         string    `json:"url"`
	Selftext    string    `json:"selftext"`
	UpvoteRatio float64   `json:"upvote_ratio"`
	Score       int       `json:"score"`
	CreatedUTC  int64     `json:"created_utc"`
	NumComments int       `json:"num_comments"`
	CollectedAt time.Time `json:"collected_at"`
	TopComments []Comment `json:"top_comments"`
}

// Comment is a single comment on a post. Sentiment is transient: attached
// after scoring, never persisted.
type Comment struct {
	ID         string     `json:"id"`
	PostID     string     `json:"post_id"`
	Author     string     `json:"author"`
	Body       string     `json:"body"`
	Score      int        `json:"score"`
	CreatedUTC int64      `json:"created_utc"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
}

// Sentiment is a VADER polarity distribution. Negative, Neutral and Positive
// sum to roughly 1.0; Compound is in [-1, 1].
type Sentiment struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}
