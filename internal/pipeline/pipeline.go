// Package pipeline sequences a scan: fetch top posts, filter, persist,
// enrich comments with sentiment. Dependencies come in through interfaces so
// tests can substitute fakes for the Reddit client and the store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/threadlens/threadlens/internal/filter"
	"github.com/threadlens/threadlens/internal/models"
)

const (
	// DefaultDelay paces post-detail requests to stay under Reddit's rate
	// limits without any concurrency control.
	DefaultDelay = 500 * time.Millisecond

	// DefaultCommentLimit caps how many top comments are pulled per post.
	DefaultCommentLimit = 10
)

// SourceClient yields raw posts and comments for a subreddit.
type SourceClient interface {
	TopPosts(ctx context.Context, subreddit, timeFilter string, limit int) ([]models.Post, error)
	Comments(ctx context.Context, postID string, limit int) ([]models.Comment, error)
}

// ContentStore persists posts and comments by id.
type ContentStore interface {
	UpsertPost(p models.Post) error
	UpsertComment(postID string, c models.Comment) error
}

// SentimentScorer maps text to a polarity distribution.
type SentimentScorer interface {
	Score(text string) models.Sentiment
}

// Options controls a scan.
type Options struct {
	Limit        int
	TimeFilter   string
	MinScore     int
	Keywords     []string
	CommentLimit int
	Delay        time.Duration
}

// Pipeline composes the client, store and scorer for one invocation.
type Pipeline struct {
	client SourceClient
	store  ContentStore
	scorer SentimentScorer
}

func New(client SourceClient, store ContentStore, scorer SentimentScorer) *Pipeline {
	return &Pipeline{client: client, store: store, scorer: scorer}
}

// ScanSubreddit fetches, filters, persists and enriches one subreddit's top
// posts. Persistence is best effort: a failed upsert is logged and the post
// still flows forward in memory so exports never lose data to a durability
// failure. Returned posts keep fetch order.
func (pl *Pipeline) ScanSubreddit(ctx context.Context, subreddit string, opts Options) ([]models.Post, error) {
	slog.Info("[Pipeline] Scanning subreddit",
		slog.String("subreddit", subreddit),
		slog.String("time_filter", opts.TimeFilter),
		slog.Int("limit", opts.Limit))

	raw, err := pl.client.TopPosts(ctx, subreddit, opts.TimeFilter, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("scanning r/%s: %w", subreddit, err)
	}

	kept := filter.Apply(raw, opts.MinScore, opts.Keywords)
	slog.Info("[Pipeline] Filtered posts",
		slog.String("subreddit", subreddit),
		slog.Int("fetched", len(raw)),
		slog.Int("kept", len(kept)))

	commentLimit := opts.CommentLimit
	if commentLimit == 0 {
		commentLimit = DefaultCommentLimit
	}

	for i := range kept {
		p := &kept[i]
		p.CollectedAt = time.Now().UTC()

		if err := pl.store.UpsertPost(*p); err != nil {
			slog.Warn("[Pipeline] Failed to persist post, continuing in memory",
				slog.String("post_id", p.ID), slog.String("error", err.Error()))
		}

		comments, err := pl.client.Comments(ctx, p.ID, commentLimit)
		if err != nil {
			slog.Warn("[Pipeline] Failed to fetch comments",
				slog.String("post_id", p.ID), slog.String("error", err.Error()))
		} else {
			for j := range comments {
				c := &comments[j]
				c.PostID = p.ID

				s := pl.scorer.Score(c.Body)
				c.Sentiment = &s

				if err := pl.store.UpsertComment(p.ID, *c); err != nil {
					slog.Warn("[Pipeline] Failed to persist comment, continuing in memory",
						slog.String("comment_id", c.ID), slog.String("error", err.Error()))
				}
			}
			p.TopComments = comments
		}

		if opts.Delay > 0 && i < len(kept)-1 {
			select {
			case <-ctx.Done():
				return kept[:i+1], ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	return kept, nil
}

// ScanAll scans each subreddit in request order. One subreddit's failure is
// logged and contributes nothing; the rest still run. The aggregate keeps
// request order across subreddits and fetch order within one.
func (pl *Pipeline) ScanAll(ctx context.Context, subreddits []string, opts Options) []models.Post {
	var all []models.Post

	for _, sub := range subreddits {
		posts, err := pl.ScanSubreddit(ctx, sub, opts)
		if err != nil {
			slog.Error("[Pipeline] Subreddit scan failed",
				slog.String("subreddit", sub), slog.String("error", err.Error()))
			continue
		}
		slog.Info("[Pipeline] Subreddit scan complete",
			slog.String("subreddit", sub), slog.Int("posts", len(posts)))
		all = append(all, posts...)
	}

	return all
}
