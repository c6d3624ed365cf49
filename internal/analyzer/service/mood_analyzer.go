package service

import (
	"strings"

	"mood-journal/internal/config"
	"mood-journal/internal/dto"
)

// Categorize buckets a polarity. Each bound is inclusive on its upper side.
func Categorize(polarity float64) dto.MoodCategory {
	switch {
	case polarity <= -0.5:
		return dto.MoodVeryNegative
	case polarity <= -0.1:
		return dto.MoodNegative
	case polarity <= 0.1:
		return dto.MoodNeutral
	case polarity <= 0.5:
		return dto.MoodPositive
	default:
		return dto.MoodVeryPositive
	}
}

// ExtractKeywords returns the lowercase alphabetic tokens of text that are at
// least minLength long and not stop words, in order of appearance, cut to the
// first maxWords.
func ExtractKeywords(text string, minLength, maxWords int) []string {
	keywords := []string{}
	if maxWords <= 0 {
		return keywords
	}

	for _, word := range strings.Fields(strings.ToLower(text)) {
		clean := lettersOnly(word)
		if clean == "" || len(clean) < minLength || IsStopWord(clean) {
			continue
		}
		keywords = append(keywords, clean)
		if len(keywords) == maxWords {
			break
		}
	}
	return keywords
}

func lettersOnly(word string) string {
	var b strings.Builder
	for _, r := range word {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MoodAnalyzer scores, categorizes and extracts keywords from entries. It
// holds no mutable state of its own.
type MoodAnalyzer interface {
	Analyze(entry dto.JournalEntry) dto.AnalyzedEntry
	AnalyzeAll(entries []dto.JournalEntry) []dto.AnalyzedEntry
	ExtractKeywords(text string) []string
}

// NewMoodAnalyzer creates a MoodAnalyzer using scorer for polarity and subjectivity.
func NewMoodAnalyzer(cfg config.Analyzer, scorer Scorer) MoodAnalyzer {
	return &moodAnalyzer{cfg: cfg, scorer: scorer}
}

type moodAnalyzer struct {
	cfg    config.Analyzer
	scorer Scorer
}

func (a *moodAnalyzer) Analyze(entry dto.JournalEntry) dto.AnalyzedEntry {
	polarity, subjectivity := a.scorer.Score(entry.Content)
	return dto.AnalyzedEntry{
		JournalEntry:      entry,
		SentimentScore:    polarity,
		SubjectivityScore: subjectivity,
		MoodCategory:      Categorize(polarity),
		Keywords:          a.ExtractKeywords(entry.Content),
	}
}

func (a *moodAnalyzer) AnalyzeAll(entries []dto.JournalEntry) []dto.AnalyzedEntry {
	analyzed := make([]dto.AnalyzedEntry, 0, len(entries))
	for _, e := range entries {
		analyzed = append(analyzed, a.Analyze(e))
	}
	return analyzed
}

func (a *moodAnalyzer) ExtractKeywords(text string) []string {
	return ExtractKeywords(text, a.cfg.MinKeywordLength, a.cfg.MaxKeywords)
}
