package service

import (
	"errors"
	"testing"

	"mood-journal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryExtractor_Markdown(t *testing.T) {
	extractor := NewDefaultEntryExtractor()

	tests := []struct {
		name        string
		doc         Document
		wantDate    string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "heading becomes title",
			doc:         Document{Name: "Friday 1 10 25 Gratitude.md", Body: []byte("# Morning thoughts\n\nToday was wonderful and I feel happy.")},
			wantDate:    "2025-01-10",
			wantTitle:   "Morning thoughts",
			wantContent: "Today was wonderful and I feel happy.",
		},
		{
			name:        "metadata lines dropped anywhere",
			doc:         Document{Name: "Friday 1 10 25.md", Body: []byte("Created: January 10, 2025 8:00 AM\n# Title\n\nLine one\nUpdated: January 11, 2025\n\nLine two\n")},
			wantDate:    "2025-01-10",
			wantTitle:   "Title",
			wantContent: "Line one\n\nLine two",
		},
		{
			name:        "filename title when no heading",
			doc:         Document{Name: "2 27 2022 Job Grateful List.md", Body: []byte("Grateful for my team.\r\n")},
			wantDate:    "2022-02-27",
			wantTitle:   "Job Grateful List",
			wantContent: "Grateful for my team.",
		},
		{
			name:        "placeholder title",
			doc:         Document{Name: "Friday 1 10 25.md", Body: []byte("Just text")},
			wantDate:    "2025-01-10",
			wantTitle:   common.UntitledEntry,
			wantContent: "Just text",
		},
		{
			name:        "only the first heading is the title",
			doc:         Document{Name: "Friday 1 10 25.md", Body: []byte("# One\n# Two\nbody")},
			wantDate:    "2025-01-10",
			wantTitle:   "One",
			wantContent: "# Two\nbody",
		},
		{
			name:        "front matter title used without heading",
			doc:         Document{Name: "Friday 1 10 25 File title.md", Body: []byte("---\ntitle: From front matter\ntags: [calm]\n---\nBody text\n")},
			wantDate:    "2025-01-10",
			wantTitle:   "From front matter",
			wantContent: "Body text",
		},
		{
			name:        "heading beats front matter",
			doc:         Document{Name: "Friday 1 10 25.md", Body: []byte("---\ntitle: Meta\n---\n# Heading\n\nBody")},
			wantDate:    "2025-01-10",
			wantTitle:   "Heading",
			wantContent: "Body",
		},
		{
			name:        "no date in filename",
			doc:         Document{Name: "notes.md", Body: []byte("random")},
			wantDate:    "",
			wantTitle:   "notes",
			wantContent: "random",
		},
		{
			name:        "plain text file",
			doc:         Document{Name: "3 1 2024 Plain.txt", Body: []byte("Plain day.")},
			wantDate:    "2024-03-01",
			wantTitle:   "Plain",
			wantContent: "Plain day.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.Extract(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, got.Date)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantContent, got.Content)
		})
	}
}

func TestEntryExtractor_HTML(t *testing.T) {
	body := `<html><head><title>ignored</title></head><body>
<article>
<header><h1 class="page-title">Evening walk</h1>
<table class="properties"><tr><th>Created</th><td>January 10, 2025</td></tr></table></header>
<div class="page-body">
<p>Created: January 10, 2025</p>
<p>The sunset was   beautiful.</p>
<ul><li>Called mom</li><li><p>Read a book</p></li></ul>
</div>
</article>
</body></html>`

	got, err := NewDefaultEntryExtractor().Extract(Document{Name: "Friday 1 10 25 Walk 0123456789abcdef0123456789abcdef.html", Body: []byte(body)})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-10", got.Date)
	assert.Equal(t, "Evening walk", got.Title)
	assert.Equal(t, "The sunset was   beautiful.\nCalled mom\nRead a book", got.Content)
}

func TestEntryExtractor_UnsupportedFormat(t *testing.T) {
	extractor := NewDefaultEntryExtractor()
	assert.False(t, extractor.Supports("Friday 1 10 25.pdf"))
	assert.True(t, extractor.Supports("Friday 1 10 25.MD"))

	_, err := extractor.Extract(Document{Name: "Friday 1 10 25.pdf"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedFormat))
}
