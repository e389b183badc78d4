package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/threadlens/threadlens/config"
	"github.com/threadlens/threadlens/internal/models"
)

// ValidTimeFilters are the lookback windows the Reddit top listing accepts.
var ValidTimeFilters = map[string]bool{
	"hour":  true,
	"day":   true,
	"week":  true,
	"month": true,
	"year":  true,
	"all":   true,
}

// RedditClient talks to the Reddit JSON API using the client-credentials
// flow. It owns auth refresh, pagination and rate-limit backoff; callers get
// decoded posts and comments or an error.
type RedditClient struct {
	conf      *clientcredentials.Config
	client    *http.Client
	userAgent string
	mu        sync.Mutex
}

func NewRedditClient(creds config.Credentials) *RedditClient {
	conf := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     REDDIT_AUTH_URL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	return &RedditClient{
		conf:      conf,
		client:    conf.Client(context.Background()),
		userAgent: creds.UserAgent,
	}
}

// refresh rebuilds the underlying HTTP client, forcing a new token on the
// next request.
func (rc *RedditClient) refresh() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.client = rc.conf.Client(context.Background())
}

func (rc *RedditClient) httpClient() *http.Client {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.client
}

// TopPosts fetches up to limit top posts from a subreddit within the given
// time filter, following the listing's `after` cursor across pages.
func (rc *RedditClient) TopPosts(ctx context.Context, subreddit, timeFilter string, limit int) ([]models.Post, error) {
	if !ValidTimeFilters[timeFilter] {
		return nil, fmt.Errorf("[RedditClient] invalid time filter %q (want hour, day, week, month, year or all)", timeFilter)
	}
	if limit <= 0 {
		return nil, nil
	}

	var posts []models.Post
	after := ""

	for len(posts) < limit {
		pageSize := limit - len(posts)
		if pageSize > 100 {
			pageSize = 100
		}

		listingURL := fmt.Sprintf("%s/r/%s/top", REDDIT_API_URL, url.PathEscape(subreddit))
		params := url.Values{}
		params.Set("t", timeFilter)
		params.Set("limit", strconv.Itoa(pageSize))
		if after != "" {
			params.Set("after", after)
		}

		body, err := rc.get(ctx, listingURL+"?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("[RedditClient] fetching r/%s top posts: %w", subreddit, err)
		}

		var listing models.PostListing
		if err := json.Unmarshal(body, &listing); err != nil {
			return nil, fmt.Errorf("[RedditClient] decoding r/%s listing: %w", subreddit, err)
		}

		for _, child := range listing.Data.Children {
			posts = append(posts, postFromWire(child.Data))
			if len(posts) == limit {
				break
			}
		}

		after = listing.Data.After
		if after == "" || len(listing.Data.Children) == 0 {
			break
		}
	}

	return posts, nil
}

// Comments fetches up to limit top-sorted comments for a post. The comments
// endpoint returns a two-element array: the post listing, then the comment
// tree. Only top-level comments are taken.
func (rc *RedditClient) Comments(ctx context.Context, postID string, limit int) ([]models.Comment, error) {
	if limit <= 0 {
		return nil, nil
	}

	commentsURL := fmt.Sprintf("%s/comments/%s", REDDIT_API_URL, url.PathEscape(postID))
	params := url.Values{}
	params.Set("sort", "top")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("depth", "1")

	body, err := rc.get(ctx, commentsURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] fetching comments for %s: %w", postID, err)
	}

	var listings []models.CommentListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("[RedditClient] decoding comments for %s: %w", postID, err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []models.Comment
	for _, child := range listings[1].Data.Children {
		// The tree ends with a "more" stub; only t1 children are comments.
		if child.Kind != "t1" {
			continue
		}
		comments = append(comments, models.Comment{
			ID:         child.Data.ID,
			PostID:     postID,
			Author:     child.Data.Author,
			Body:       child.Data.Body,
			Score:      child.Data.Score,
			CreatedUTC: int64(child.Data.CreatedUTC),
		})
		if len(comments) == limit {
			break
		}
	}

	return comments, nil
}

func (rc *RedditClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	return rc.getWithRetry(ctx, rawURL, true)
}

func (rc *RedditClient) getWithRetry(ctx context.Context, rawURL string, allowRefresh bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusUnauthorized:
		if !allowRefresh {
			return nil, fmt.Errorf("unauthorized after token refresh")
		}
		slog.Warn("[RedditClient] Token expired - refreshing and retrying")
		rc.refresh()
		return rc.getWithRetry(ctx, rawURL, false)
	case http.StatusTooManyRequests:
		return rc.retryWithBackoff(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

func (rc *RedditClient) retryWithBackoff(ctx context.Context, rawURL string) ([]byte, error) {
	backoff := INITIAL_BACKOFF
	for attempt := 1; attempt < MAX_RETRIES; attempt++ {
		slog.Warn("[RedditClient] 429 Too Many Requests - retrying",
			slog.Int("attempt", attempt), slog.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}

		data, err := rc.getWithRetry(ctx, rawURL, true)
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("max retries reached, request failed")
}

func postFromWire(d models.PostData) models.Post {
	author := d.Author
	if author == "" {
		author = "[deleted]"
	}
	return models.Post{
		ID:          d.ID,
		Title:       d.Title,
		Author:      author,
		Subreddit:   d.Subreddit,
		URL:         d.URL,
		Selftext:    d.Selftext,
		UpvoteRatio: d.UpvoteRatio,
		Score:       d.Score,
		CreatedUTC:  int64(d.CreatedUTC),
		NumComments: d.NumComments,
	}
}
