// Package topics derives trending topics from a post collection by raw token
// frequency. There is no curated stop-word list: dropping tokens of length
// three or less and non-alphabetic tokens removes most noise by construction.
package topics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/threadlens/threadlens/internal/models"
)

// TopicCount pairs a token with its occurrence count.
type TopicCount struct {
	Topic string
	Count int
}

var tokenPattern = regexp.MustCompile(`[a-z']+`)

// Trending returns the topN most frequent tokens across the combined title
// and selftext of posts that have a selftext. Ordering is count-descending;
// ties keep first-occurrence order in the combined text, so results are
// deterministic for a given input order.
func Trending(posts []models.Post, topN int) []TopicCount {
	if topN <= 0 {
		return nil
	}

	var b strings.Builder
	for _, p := range posts {
		if p.Selftext == "" {
			continue
		}
		b.WriteString(p.Title)
		b.WriteString(" ")
		b.WriteString(p.Selftext)
		b.WriteString(" ")
	}

	counts := make(map[string]int)
	var order []string

	for _, tok := range tokenPattern.FindAllString(strings.ToLower(b.String()), -1) {
		tok = strings.Trim(tok, "'")
		if len(tok) <= 3 || !isAlphabetic(tok) {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}

	result := make([]TopicCount, 0, len(order))
	for _, tok := range order {
		result = append(result, TopicCount{Topic: tok, Count: counts[tok]})
	}
	return result
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
