// Package filter applies the scan's popularity and keyword predicates to a
// fetched post stream.
//
// Keyword matching is plain case-insensitive substring containment, not
// word-boundary matching: a keyword "data" matches a post titled "DataOps".
// That imprecision is intentional and mirrored by the store's query layer so
// live scans and historical exports select the same posts.
package filter

import (
	"strings"

	"github.com/threadlens/threadlens/internal/models"
)

// Apply returns the posts that pass both predicates, preserving input order.
// A minScore <= 0 admits every score, including negative ones. An empty
// keyword list admits every post; otherwise any single keyword matching the
// title or selftext keeps the post. An empty selftext never matches.
func Apply(posts []models.Post, minScore int, keywords []string) []models.Post {
	kept := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if minScore > 0 && p.Score < minScore {
			continue
		}
		if len(keywords) > 0 && !matchesAny(p, keywords) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func matchesAny(p models.Post, keywords []string) bool {
	title := strings.ToLower(p.Title)
	body := strings.ToLower(p.Selftext)

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) {
			return true
		}
		if body != "" && strings.Contains(body, kw) {
			return true
		}
	}
	return false
}
