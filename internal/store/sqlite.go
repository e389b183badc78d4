// Package store persists posts and comments in SQLite. The only write
// primitive is an upsert keyed by id: re-capturing a post replaces the prior
// row, so repeated scans never duplicate content.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/threadlens/threadlens/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	title TEXT,
	author TEXT,
	subreddit TEXT,
	url TEXT,
	selftext TEXT,
	upvote_ratio REAL,
	score INTEGER,
	created_utc INTEGER,
	num_comments INTEGER,
	collected_at TEXT
);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	post_id TEXT,
	author TEXT,
	body TEXT,
	score INTEGER,
	created_utc INTEGER,
	FOREIGN KEY (post_id) REFERENCES posts (id)
);

CREATE INDEX IF NOT EXISTS idx_posts_subreddit ON posts(subreddit);
CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
`

// ContentStore is a SQLite-backed store for scanned posts and comments.
type ContentStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*ContentStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("[Store] opening %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("[Store] initializing schema: %w", err)
	}

	return &ContentStore{db: db}, nil
}

// UpsertPost inserts or fully replaces the row for p.ID. CollectedAt is
// stamped by the caller and only moves forward across re-captures.
func (s *ContentStore) UpsertPost(p models.Post) error {
	query := `
	INSERT INTO posts (id, title, author, subreddit, url, selftext,
		upvote_ratio, score, created_utc, num_comments, collected_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		author = excluded.author,
		subreddit = excluded.subreddit,
		url = excluded.url,
		selftext = excluded.selftext,
		upvote_ratio = excluded.upvote_ratio,
		score = excluded.score,
		created_utc = excluded.created_utc,
		num_comments = excluded.num_comments,
		collected_at = excluded.collected_at
	`

	_, err := s.db.Exec(query,
		p.ID, p.Title, p.Author, p.Subreddit, p.URL, p.Selftext,
		p.UpvoteRatio, p.Score, p.CreatedUTC, p.NumComments,
		p.CollectedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("[Store] upserting post %s: %w", p.ID, err)
	}
	return nil
}

// UpsertComment inserts or fully replaces the row for c.ID. Orphan comments
// (postID never captured) are accepted; the foreign key is declarative only.
func (s *ContentStore) UpsertComment(postID string, c models.Comment) error {
	query := `
	INSERT INTO comments (id, post_id, author, body, score, created_utc)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		post_id = excluded.post_id,
		author = excluded.author,
		body = excluded.body,
		score = excluded.score,
		created_utc = excluded.created_utc
	`

	_, err := s.db.Exec(query, c.ID, postID, c.Author, c.Body, c.Score, c.CreatedUTC)
	if err != nil {
		return fmt.Errorf("[Store] upserting comment %s: %w", c.ID, err)
	}
	return nil
}

// QueryFilter selects posts on retrieval. Categories combine with AND;
// keywords combine with OR across title and selftext, matching the filter
// engine's substring semantics (SQLite LIKE is case-insensitive for ASCII).
type QueryFilter struct {
	Subreddit string
	MinScore  int
	Keywords  []string
}

// Query returns matching posts, highest score first, each with its comments
// attached ordered by comment score.
func (s *ContentStore) Query(f QueryFilter) ([]models.Post, error) {
	query := `SELECT id, title, author, subreddit, url, selftext,
		upvote_ratio, score, created_utc, num_comments, collected_at FROM posts`

	var conditions []string
	var args []any

	if f.Subreddit != "" {
		conditions = append(conditions, "subreddit = ?")
		args = append(args, f.Subreddit)
	}
	if f.MinScore > 0 {
		conditions = append(conditions, "score >= ?")
		args = append(args, f.MinScore)
	}
	if len(f.Keywords) > 0 {
		var keywordConds []string
		for _, kw := range f.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			keywordConds = append(keywordConds, "(title LIKE ? OR selftext LIKE ?)")
			args = append(args, "%"+kw+"%", "%"+kw+"%")
		}
		if len(keywordConds) > 0 {
			conditions = append(conditions, "("+strings.Join(keywordConds, " OR ")+")")
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY score DESC, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("[Store] querying posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var collectedAt string

		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.Subreddit, &p.URL,
			&p.Selftext, &p.UpvoteRatio, &p.Score, &p.CreatedUTC,
			&p.NumComments, &collectedAt); err != nil {
			return nil, fmt.Errorf("[Store] scanning post row: %w", err)
		}
		p.CollectedAt, _ = time.Parse(time.RFC3339, collectedAt)

		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("[Store] iterating post rows: %w", err)
	}

	for i := range posts {
		comments, err := s.commentsFor(posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].TopComments = comments
	}

	return posts, nil
}

func (s *ContentStore) commentsFor(postID string) ([]models.Comment, error) {
	rows, err := s.db.Query(`SELECT id, post_id, author, body, score, created_utc
		FROM comments WHERE post_id = ? ORDER BY score DESC, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("[Store] querying comments for %s: %w", postID, err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Body, &c.Score, &c.CreatedUTC); err != nil {
			return nil, fmt.Errorf("[Store] scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Close releases the database handle.
func (s *ContentStore) Close() error {
	return s.db.Close()
}
