// Package export renders enriched post collections to files. All exporters
// are pure functions of their input: re-running with the same posts rewrites
// byte-identical files, except the summary's generated-on line.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/threadlens/threadlens/internal/models"
	"github.com/threadlens/threadlens/internal/sentiment"
)

const dateFormat = "2006-01-02 15:04:05"

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[\s-]+`)
)

// MarkdownFilename builds the per-post filename: a slug of the title (non
// word/space/hyphen runes stripped, whitespace and hyphen runs collapsed,
// capped at 50 bytes) joined with the post id.
func MarkdownFilename(p models.Post) string {
	slug := slugStripPattern.ReplaceAllString(p.Title, "")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return fmt.Sprintf("%s-%s.md", slug, p.ID)
}

// WriteMarkdown writes one markdown file per post into dir.
func WriteMarkdown(posts []models.Post, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("[Export] creating output dir %s: %w", dir, err)
	}

	for _, p := range posts {
		path := filepath.Join(dir, MarkdownFilename(p))
		if err := os.WriteFile(path, []byte(renderPost(p)), 0o644); err != nil {
			return fmt.Errorf("[Export] writing %s: %w", path, err)
		}
	}
	return nil
}

func renderPost(p models.Post) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Author:** u/%s  \n", p.Author)
	fmt.Fprintf(&b, "**Subreddit:** r/%s  \n", p.Subreddit)
	fmt.Fprintf(&b, "**Date:** %s  \n", time.Unix(p.CreatedUTC, 0).UTC().Format(dateFormat))
	fmt.Fprintf(&b, "**Score:** %d (upvote ratio: %s)  \n", p.Score, formatRatio(p.UpvoteRatio))
	fmt.Fprintf(&b, "**URL:** %s  \n\n", p.URL)

	b.WriteString("## Content\n\n")
	if p.Selftext != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Selftext)
	} else {
		b.WriteString("*[Link post - no text content]*\n\n")
	}

	b.WriteString("## Top Comments\n\n")
	for i, c := range p.TopComments {
		var compound float64
		if c.Sentiment != nil {
			compound = c.Sentiment.Compound
		}

		fmt.Fprintf(&b, "### Comment %d by u/%s\n", i+1, c.Author)
		fmt.Fprintf(&b, "**Score:** %d  \n", c.Score)
		fmt.Fprintf(&b, "**Date:** %s  \n", time.Unix(c.CreatedUTC, 0).UTC().Format(dateFormat))
		fmt.Fprintf(&b, "**Sentiment:** %s (%.2f)  \n\n", sentiment.Classify(compound), compound)
		fmt.Fprintf(&b, "%s\n\n", c.Body)
		b.WriteString("---\n\n")
	}

	return b.String()
}

func formatRatio(r float64) string {
	return strconv.FormatFloat(r, 'g', -1, 64)
}
