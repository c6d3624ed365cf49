package dto

// EntryQuery is the set of filter query parameters shared by the dashboard
// endpoints. Dates are YYYY-MM-DD; Range is a quick range name.
type EntryQuery struct {
	Start  string `query:"start"`
	End    string `query:"end"`
	Mood   string `query:"mood"`
	Search string `query:"q"`
	Range  string `query:"range"`
}

// KeywordQuery is an EntryQuery plus the number of keywords to return.
type KeywordQuery struct {
	EntryQuery
	N int `query:"n"`
}

// DashboardSummary is everything the dashboard overview renders for a
// filtered set of entries.
type DashboardSummary struct {
	Summary          Summary              `json:"summary"`
	MoodDistribution map[MoodCategory]int `json:"mood_distribution"`
	MonthlySentiment map[string]float64   `json:"monthly_sentiment"`
	Weekdays         []WeekdaySentiment   `json:"weekdays"`
	TopKeywords      []KeywordCount       `json:"top_keywords"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
