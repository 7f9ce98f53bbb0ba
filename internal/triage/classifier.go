package triage

import "strings"

// Result is the outcome of analyzing a complaint description.
type Result struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
}

// Classifier scores free-text complaint descriptions against a keyword
// table. It is a pure function of its table and input, so a single instance
// may be shared across goroutines.
type Classifier struct {
	table Table
}

func NewClassifier(table Table) *Classifier {
	return &Classifier{table: table}
}

// Analyze maps a description to a category and severity.
//
// Category: each category scores one point per keyword contained anywhere in
// the lowercased text. Matching is plain substring containment, not
// word-boundary aware; "dogma" matches "dog". A later category must strictly
// exceed the running maximum to win, so the first-declared category keeps
// ties. No match at all falls back to the default category.
//
// Severity: High keywords dominate Medium; neither consults the category
// score, so an unclassifiable text can still be High.
func (c *Classifier) Analyze(text string) Result {
	lower := strings.ToLower(text)

	category := c.table.DefaultCategory
	maxScore := 0
	for _, entry := range c.table.Categories {
		score := 0
		for _, word := range entry.Keywords {
			if strings.Contains(lower, word) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			category = entry.Category
		}
	}

	severity := "Low"
	if containsAny(lower, c.table.SeverityHigh) {
		severity = "High"
	} else if containsAny(lower, c.table.SeverityMedium) {
		severity = "Medium"
	}

	return Result{Category: category, Severity: severity}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
