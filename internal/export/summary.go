package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/threadlens/threadlens/internal/models"
	"github.com/threadlens/threadlens/internal/topics"
)

// WriteSummary renders a single summary.md over the whole collection:
// counts, date range, mean score, per-subreddit breakdown, trending topics
// and the top posts by score. The generated-on line is the one part of any
// export expected to differ between otherwise identical runs.
func WriteSummary(posts []models.Post, dir string, topN int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("[Export] creating output dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, "summary.md")
	if err := os.WriteFile(path, []byte(renderSummary(posts, topN, time.Now())), 0o644); err != nil {
		return fmt.Errorf("[Export] writing %s: %w", path, err)
	}
	return nil
}

func renderSummary(posts []models.Post, topN int, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Reddit Content Summary\n\n")
	fmt.Fprintf(&b, "Generated on %s\n\n", now.UTC().Format(dateFormat))
	fmt.Fprintf(&b, "**Total posts:** %d  \n", len(posts))

	if len(posts) == 0 {
		return b.String()
	}

	minCreated, maxCreated := posts[0].CreatedUTC, posts[0].CreatedUTC
	scoreSum := 0
	bySubreddit := make(map[string]int)
	for _, p := range posts {
		if p.CreatedUTC < minCreated {
			minCreated = p.CreatedUTC
		}
		if p.CreatedUTC > maxCreated {
			maxCreated = p.CreatedUTC
		}
		scoreSum += p.Score
		bySubreddit[p.Subreddit]++
	}

	fmt.Fprintf(&b, "**Date range:** %s to %s  \n",
		time.Unix(minCreated, 0).UTC().Format("2006-01-02"),
		time.Unix(maxCreated, 0).UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "**Mean score:** %.1f  \n\n", float64(scoreSum)/float64(len(posts)))

	b.WriteString("## Posts by Subreddit\n\n")
	subs := make([]string, 0, len(bySubreddit))
	for sub := range bySubreddit {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if bySubreddit[subs[i]] != bySubreddit[subs[j]] {
			return bySubreddit[subs[i]] > bySubreddit[subs[j]]
		}
		return subs[i] < subs[j]
	})
	for _, sub := range subs {
		fmt.Fprintf(&b, "- r/%s: %d\n", sub, bySubreddit[sub])
	}

	trending := topics.Trending(posts, topN)
	if len(trending) > 0 {
		b.WriteString("\n## Trending Topics\n\n")
		for _, tc := range trending {
			fmt.Fprintf(&b, "- %s (%d mentions)\n", tc.Topic, tc.Count)
		}
	}

	b.WriteString("\n## Top Posts\n\n")
	ranked := make([]models.Post, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	for i, p := range ranked {
		fmt.Fprintf(&b, "%d. **%s** (%d points in r/%s by u/%s)  \n   %s\n",
			i+1, p.Title, p.Score, p.Subreddit, p.Author, p.URL)
	}

	return b.String()
}
