package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/threadlens/threadlens/internal/models"
)

// classifyThreshold is the compound cutoff for labeling. A compound of
// exactly 0.05 is still Neutral.
const classifyThreshold = 0.05

var (
	mdLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// Scorer wraps a VADER analyzer. Scoring is deterministic and local: same
// text, same distribution, no network.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity distribution for text. Comment bodies are
// markdown, so they are flattened to plain text first; bare URLs are dropped
// since the lexicon has nothing to say about them. Empty input yields the
// zero distribution, which classifies as Neutral.
func (s *Scorer) Score(text string) models.Sentiment {
	plain := normalize(text)
	if plain == "" {
		return models.Sentiment{}
	}

	scores := s.analyzer.PolarityScores(plain)
	return models.Sentiment{
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
		Positive: scores.Positive,
		Compound: scores.Compound,
	}
}

// Classify buckets a compound score for display.
func Classify(compound float64) string {
	switch {
	case compound > classifyThreshold:
		return "Positive"
	case compound < -classifyThreshold:
		return "Negative"
	default:
		return "Neutral"
	}
}

func normalize(input string) string {
	input = mdLinkPattern.ReplaceAllString(input, "$1")

	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(rendered), " ")
	plain = urlPattern.ReplaceAllString(plain, "")

	return strings.Join(strings.Fields(plain), " ")
}
