package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantDate  string
		wantTitle string
	}{
		{
			name:      "weekday prefixed with two digit year",
			filename:  "Friday 1 10 25 Gratitude.md",
			wantDate:  "2025-01-10",
			wantTitle: "Gratitude",
		},
		{
			name:      "weekday prefixed with four digit year and no title",
			filename:  "Wednesday 1 8 2025.md",
			wantDate:  "2025-01-08",
			wantTitle: "",
		},
		{
			name:      "bare numeric",
			filename:  "2 27 2022 Job Grateful List.md",
			wantDate:  "2022-02-27",
			wantTitle: "Job Grateful List",
		},
		{
			name:      "export hash and hyphen separator stripped",
			filename:  "Monday 3 31 25 - Therapy notes 0123456789abcdef0123456789abcdef.md",
			wantDate:  "2025-03-31",
			wantTitle: "Therapy notes",
		},
		{
			name:      "only the first run of hyphens is a separator",
			filename:  "Friday 1 10 25 - - Gratitude.md",
			wantDate:  "2025-01-10",
			wantTitle: "- Gratitude",
		},
		{
			name:      "hyphenated export hash",
			filename:  "Sunday 2 2 25 Walk-0123456789abcdef0123456789abcdef.md",
			wantDate:  "2025-02-02",
			wantTitle: "Walk",
		},
		{
			name:      "month name keeps the whole name as title",
			filename:  "Colonoscopy Friday August 5th 2022.md",
			wantDate:  "2022-08-05",
			wantTitle: "Colonoscopy Friday August 5th 2022",
		},
		{
			name:      "month name with comma and long form",
			filename:  "Trip sept 3, 2021.md",
			wantDate:  "2021-09-03",
			wantTitle: "Trip sept 3, 2021",
		},
		{
			name:      "month and day are not range checked",
			filename:  "Friday 13 40 25.md",
			wantDate:  "2025-13-40",
			wantTitle: "",
		},
		{
			name:      "no pattern",
			filename:  "notes.md",
			wantDate:  "",
			wantTitle: "notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilename(tt.filename)
			assert.Equal(t, tt.wantDate, got.Date)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantDate != "", got.HasDate())
		})
	}
}

func TestParseFilename_PatternPriority(t *testing.T) {
	// both numeric and month-name forms present: the numeric one wins
	got := ParseFilename("Friday 1 10 25 since March 3 2020.md")
	assert.Equal(t, "2025-01-10", got.Date)
	assert.Equal(t, "since March 3 2020", got.Title)
}

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "Friday 1 10 25 Gratitude", CleanFilename("Friday 1 10 25 Gratitude.md"))
	assert.Equal(t, "Entry", CleanFilename("Entry 0123456789abcdef0123456789abcdef.html"))
	// uppercase hex is not an export hash
	assert.Equal(t, "Entry 0123456789ABCDEF0123456789ABCDEF", CleanFilename("Entry 0123456789ABCDEF0123456789ABCDEF.md"))
}
