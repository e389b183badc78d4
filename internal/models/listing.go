package models

// Wire types for the Reddit JSON API. Listings share the same envelope shape
// for posts and comments; only the child payload differs.

type PostListing struct {
	Kind string          `json:"kind"`
	Data PostListingData `json:"data"`
}

type PostListingData struct {
	After    string             `json:"after"`
	Children []PostListingChild `json:"children"`
}

type PostListingChild struct {
	Kind string   `json:"kind"`
	Data PostData `json:"data"`
}

type PostData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	URL         string  `json:"url"`
	Selftext    string  `json:"selftext"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
}

type CommentListing struct {
	Kind string             `json:"kind"`
	Data CommentListingData `json:"data"`
}

type CommentListingData struct {
	After    string                `json:"after"`
	Children []CommentListingChild `json:"children"`
}

type CommentListingChild struct {
	Kind string      `json:"kind"`
	Data CommentData `json:"data"`
}

type CommentData struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}
