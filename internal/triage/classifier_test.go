package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Determinism(t *testing.T) {
	c := NewClassifier(DefaultTable())

	text := "garbage dump with plastic waste and a bad smell"
	first := c.Analyze(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Analyze(text))
	}
	assert.Equal(t, CategoryGarbageDump, first.Category)
	assert.Equal(t, "Medium", first.Severity)
}

func TestClassifier_CategoryScoring(t *testing.T) {
	c := NewClassifier(DefaultTable())

	tests := []struct {
		name     string
		text     string
		category string
		severity string
	}{
		{
			name:     "dead animal beats single keyword categories",
			text:     "dead dog carcass lying on the road",
			category: CategoryDeadAnimals,
			severity: "High", // "dead" is a high-urgency keyword
		},
		{
			name:     "septic overflow",
			text:     "septic tank overflow near my house",
			category: CategorySepticOverflow,
			severity: "Medium",
		},
		{
			name:     "clogged storm drain",
			text:     "storm drain clogged with gutter water",
			category: CategorySewerageFlow,
			severity: "Low",
		},
		{
			name:     "toilet electricity",
			text:     "no light in public toilet, bulb broken and dark",
			category: CategoryToiletPower,
			severity: "Low",
		},
		{
			name:     "uppercase input is normalized",
			text:     "GARBAGE TRASH DUMP EVERYWHERE",
			category: CategoryGarbageDump,
			severity: "Low",
		},
		{
			name:     "substring containment matches inside words",
			text:     "the dogmatic neighbour", // "dog" matches inside "dogmatic"
			category: CategoryDeadAnimals,
			severity: "Low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Analyze(tt.text)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.severity, got.Severity)
		})
	}
}

func TestClassifier_TieBreakFirstDeclaredWins(t *testing.T) {
	c := NewClassifier(DefaultTable())

	// "smell" appears in both the Garbage dump and Yellow Spot keyword sets;
	// Garbage dump is declared first, so an equal score must not displace it.
	got := c.Analyze("there is a smell here")
	assert.Equal(t, CategoryGarbageDump, got.Category)
	assert.Equal(t, "Medium", got.Severity)

	// A later category needs a strictly higher score to take over.
	got = c.Analyze("smell of urine on the wall")
	assert.Equal(t, CategoryYellowSpot, got.Category)
}

func TestClassifier_SeverityDominance(t *testing.T) {
	c := NewClassifier(DefaultTable())

	// Both a high keyword ("fire") and a medium keyword ("leak") present.
	got := c.Analyze("fire near the gas leak")
	assert.Equal(t, "High", got.Severity)

	// Severity is independent of category: no category matches but high
	// keywords still apply.
	got = c.Analyze("emergency qqq xyz")
	assert.Equal(t, CategoryOthers, got.Category)
	assert.Equal(t, "High", got.Severity)
}

func TestClassifier_NoMatchFallback(t *testing.T) {
	c := NewClassifier(DefaultTable())

	for _, text := range []string{"xyz123 qqq", "", "a"} {
		got := c.Analyze(text)
		assert.Equal(t, CategoryOthers, got.Category)
		assert.Equal(t, "Low", got.Severity)
	}
}

func TestClassifier_CustomTable(t *testing.T) {
	table := Table{
		Categories: []CategoryEntry{
			{"First", []string{"alpha"}},
			{"Second", []string{"alpha", "beta"}},
		},
		SeverityHigh:    []string{"boom"},
		SeverityMedium:  []string{"hiss"},
		DefaultCategory: "Unknown",
	}
	c := NewClassifier(table)

	assert.Equal(t, Result{Category: "First", Severity: "Low"}, c.Analyze("alpha"))
	assert.Equal(t, Result{Category: "Second", Severity: "Low"}, c.Analyze("alpha beta"))
	assert.Equal(t, Result{Category: "Unknown", Severity: "High"}, c.Analyze("boom"))
	assert.Equal(t, Result{Category: "Unknown", Severity: "Medium"}, c.Analyze("hiss"))
}
