package store

import (
	"testing"
	"time"

	"github.com/threadlens/threadlens/internal/models"
)

func openTestStore(t *testing.T) *ContentStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPost(id string) models.Post {
	return models.Post{
		ID:          id,
		Title:       "a post about golang",
		Author:      "gopher",
		Subreddit:   "golang",
		URL:         "https://reddit.com/r/golang/" + id,
		Selftext:    "generics are nice",
		UpvoteRatio: 0.97,
		Score:       100,
		CreatedUTC:  1700000000,
		NumComments: 3,
		CollectedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUpsertPostIdempotent(t *testing.T) {
	s := openTestStore(t)

	p := testPost("p1")
	if err := s.UpsertPost(p); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	p.Score = 250
	p.CollectedAt = p.CollectedAt.Add(time.Hour)
	if err := s.UpsertPost(p); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.Query(QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want exactly 1 after re-capture", len(got))
	}
	if got[0].Score != 250 {
		t.Errorf("score = %d, want 250 (last write wins)", got[0].Score)
	}
	if !got[0].CollectedAt.After(time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("collected_at = %v, want the later capture time", got[0].CollectedAt)
	}
}

func TestUpsertCommentIdempotentAndOrphanTolerated(t *testing.T) {
	s := openTestStore(t)

	// No post row exists for this post_id; the store must accept it anyway.
	c := models.Comment{ID: "c1", Author: "alice", Body: "nice", Score: 5, CreatedUTC: 1700000100}
	if err := s.UpsertComment("ghost", c); err != nil {
		t.Fatalf("orphan comment upsert: %v", err)
	}

	c.Score = 9
	if err := s.UpsertComment("ghost", c); err != nil {
		t.Fatalf("comment re-upsert: %v", err)
	}

	comments, err := s.commentsFor("ghost")
	if err != nil {
		t.Fatalf("commentsFor: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Score != 9 {
		t.Errorf("score = %d, want 9", comments[0].Score)
	}
}

func TestQueryFilters(t *testing.T) {
	s := openTestStore(t)

	posts := []models.Post{
		{ID: "a", Title: "DataOps pipelines", Subreddit: "devops", Score: 50, CollectedAt: time.Now()},
		{ID: "b", Title: "gardening tips", Selftext: "my tomato data", Subreddit: "gardening", Score: 5, CollectedAt: time.Now()},
		{ID: "c", Title: "weekly thread", Subreddit: "devops", Score: 8, CollectedAt: time.Now()},
	}
	for _, p := range posts {
		if err := s.UpsertPost(p); err != nil {
			t.Fatalf("UpsertPost(%s): %v", p.ID, err)
		}
	}

	tests := []struct {
		name    string
		filter  QueryFilter
		wantIDs []string
	}{
		{"no filter returns all", QueryFilter{}, []string{"a", "c", "b"}},
		{"subreddit equality", QueryFilter{Subreddit: "devops"}, []string{"a", "c"}},
		{"min score inclusive", QueryFilter{MinScore: 8}, []string{"a", "c"}},
		{"keyword matches title or selftext", QueryFilter{Keywords: []string{"data"}}, []string{"a", "b"}},
		{"filters AND together", QueryFilter{Subreddit: "devops", MinScore: 10, Keywords: []string{"data"}}, []string{"a"}},
		{"keywords OR together", QueryFilter{Keywords: []string{"tomato", "weekly"}}, []string{"c", "b"}},
		{"zero min score admits all", QueryFilter{MinScore: 0}, []string{"a", "c", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d posts, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestQueryAttachesNestedComments(t *testing.T) {
	s := openTestStore(t)

	p := testPost("p1")
	if err := s.UpsertPost(p); err != nil {
		t.Fatalf("UpsertPost: %v", err)
	}

	comments := []models.Comment{
		{ID: "c1", Author: "alice", Body: "first", Score: 2, CreatedUTC: 1700000100},
		{ID: "c2", Author: "bob", Body: "second", Score: 10, CreatedUTC: 1700000200},
	}
	for _, c := range comments {
		if err := s.UpsertComment(p.ID, c); err != nil {
			t.Fatalf("UpsertComment(%s): %v", c.ID, err)
		}
	}

	got, err := s.Query(QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d posts, want 1", len(got))
	}
	if len(got[0].TopComments) != 2 {
		t.Fatalf("got %d comments, want 2", len(got[0].TopComments))
	}
	if got[0].TopComments[0].ID != "c2" {
		t.Errorf("comments should be ordered by score desc, got %s first", got[0].TopComments[0].ID)
	}
	if got[0].TopComments[0].PostID != p.ID {
		t.Errorf("comment post_id = %s, want %s", got[0].TopComments[0].PostID, p.ID)
	}
}
