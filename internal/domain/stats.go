// Package domain contains the core data structures and domain logic for the application.
package domain

import "strconv"

// StatRow holds the aggregated statistics for one monthly window.
// It is the core output entity of this application; one row is emitted per window.
type StatRow struct {
	Start                                    string
	End                                      string
	Count                                    int
	AuthorCount                              int
	Additions                                int
	AdditionsAverage                         float64
	AdditionsMedian                          float64
	Deletions                                int
	DeletionsAverage                         float64
	DeletionsMedian                          float64
	LeadTimeSecondsAverage                   int64
	LeadTimeSecondsMedian                    int64
	TimeToMergeSecondsAverage                int64
	TimeToMergeSecondsMedian                 int64
	TimeToMergeFromFirstReviewSecondsAverage int64
	TimeToMergeFromFirstReviewSecondsMedian  int64
}

// statColumns lists the report column names in StatRow field order.
var statColumns = []string{
	"start",
	"end",
	"count",
	"authorCount",
	"additions",
	"additionsAverage",
	"additionsMedian",
	"deletions",
	"deletionsAverage",
	"deletionsMedian",
	"leadTimeSecondsAverage",
	"leadTimeSecondsMedian",
	"timeToMergeSecondsAverage",
	"timeToMergeSecondsMedian",
	"timeToMergeFromFirstReviewSecondsAverage",
	"timeToMergeFromFirstReviewSecondsMedian",
}

// Header returns the report column names.
func (StatRow) Header() []string {
	header := make([]string, len(statColumns))
	copy(header, statColumns)
	return header
}

// Values returns the formatted field values in the same order as Header.
func (s StatRow) Values() []string {
	return []string{
		s.Start,
		s.End,
		strconv.Itoa(s.Count),
		strconv.Itoa(s.AuthorCount),
		strconv.Itoa(s.Additions),
		formatFloat(s.AdditionsAverage),
		formatFloat(s.AdditionsMedian),
		strconv.Itoa(s.Deletions),
		formatFloat(s.DeletionsAverage),
		formatFloat(s.DeletionsMedian),
		strconv.FormatInt(s.LeadTimeSecondsAverage, 10),
		strconv.FormatInt(s.LeadTimeSecondsMedian, 10),
		strconv.FormatInt(s.TimeToMergeSecondsAverage, 10),
		strconv.FormatInt(s.TimeToMergeSecondsMedian, 10),
		strconv.FormatInt(s.TimeToMergeFromFirstReviewSecondsAverage, 10),
		strconv.FormatInt(s.TimeToMergeFromFirstReviewSecondsMedian, 10),
	}
}

// formatFloat prints the shortest representation, so 15 stays "15" and 2.5 stays "2.5".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
