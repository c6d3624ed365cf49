package service

import (
	"strings"
	"time"

	"mood-journal/pkg/utils"

	"github.com/jonreiter/govader"
	"github.com/patrickmn/go-cache"
)

// Scorer rates a text's polarity in [-1, 1] and subjectivity in [0, 1].
// Implementations must return the same scores for the same text.
type Scorer interface {
	Score(text string) (polarity, subjectivity float64)
}

// VaderScorer scores text with the VADER lexicon. Polarity is the compound
// score; subjectivity is the share of non-neutral sentiment.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a VaderScorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements Scorer. Blank text scores (0, 0).
func (s *VaderScorer) Score(text string) (float64, float64) {
	if strings.TrimSpace(text) == "" {
		return 0, 0
	}
	scores := s.analyzer.PolarityScores(text)
	return clamp(scores.Compound, -1, 1), clamp(1-scores.Neutral, 0, 1)
}

type cachedScore struct {
	polarity     float64
	subjectivity float64
}

// CachedScorer memoizes another Scorer by content hash.
type CachedScorer struct {
	next  Scorer
	cache *cache.Cache
}

// NewCachedScorer wraps next with an in-memory cache.
func NewCachedScorer(next Scorer, ttl, cleanupInterval time.Duration) *CachedScorer {
	return &CachedScorer{
		next:  next,
		cache: cache.New(ttl, cleanupInterval),
	}
}

// Score implements Scorer.
func (s *CachedScorer) Score(text string) (float64, float64) {
	key := utils.HashIdentifier(text)
	if v, ok := s.cache.Get(key); ok {
		hit := v.(cachedScore)
		return hit.polarity, hit.subjectivity
	}

	polarity, subjectivity := s.next.Score(text)
	s.cache.SetDefault(key, cachedScore{polarity: polarity, subjectivity: subjectivity})
	return polarity, subjectivity
}

// Len returns the number of cached scores.
func (s *CachedScorer) Len() int {
	return s.cache.ItemCount()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
