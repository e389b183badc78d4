package clients

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/threadlens/threadlens/config"
	"github.com/threadlens/threadlens/internal/models"
)

func testClient() *RedditClient {
	return NewRedditClient(config.Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		UserAgent:    "test-agent/1.0",
	})
}

func TestTopPostsRejectsInvalidTimeFilter(t *testing.T) {
	rc := testClient()

	if _, err := rc.TopPosts(context.Background(), "golang", "fortnight", 10); err == nil {
		t.Error("expected an error for an unknown time filter")
	}

	for filter := range ValidTimeFilters {
		// Zero limit short-circuits before any request is made.
		if _, err := rc.TopPosts(context.Background(), "golang", filter, 0); err != nil {
			t.Errorf("time filter %q should validate: %v", filter, err)
		}
	}
}

func TestPostFromWire(t *testing.T) {
	wire := models.PostData{
		ID:          "abc",
		Title:       "a title",
		Author:      "",
		Subreddit:   "golang",
		UpvoteRatio: 0.91,
		Score:       -3,
		CreatedUTC:  1700000000.0,
		NumComments: 7,
	}

	got := postFromWire(wire)
	if got.Author != "[deleted]" {
		t.Errorf("missing author should map to the deleted sentinel, got %q", got.Author)
	}
	if got.CreatedUTC != 1700000000 {
		t.Errorf("created_utc = %d, want 1700000000", got.CreatedUTC)
	}
	if got.Score != -3 {
		t.Errorf("negative scores must survive the mapping, got %d", got.Score)
	}
}

func TestCommentListingDecode(t *testing.T) {
	// The comments endpoint returns two listings: the post, then the tree.
	// The tree may end with a "more" stub which is not a comment.
	payload := `[
		{"kind": "Listing", "data": {"children": [{"kind": "t3", "data": {"id": "post1"}}]}},
		{"kind": "Listing", "data": {"children": [
			{"kind": "t1", "data": {"id": "c1", "author": "alice", "body": "hi", "score": 4, "created_utc": 1700000100.0}},
			{"kind": "more", "data": {"id": "stub"}}
		]}}
	]`

	var listings []models.CommentListing
	if err := json.Unmarshal([]byte(payload), &listings); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2", len(listings))
	}

	children := listings[1].Data.Children
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0].Kind != "t1" || children[0].Data.Author != "alice" {
		t.Errorf("first child should be alice's comment, got %+v", children[0])
	}
	if children[1].Kind != "more" {
		t.Errorf("stub child should keep its kind, got %q", children[1].Kind)
	}
}
