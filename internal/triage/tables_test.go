package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesForDepartment(t *testing.T) {
	t.Run("mapped department", func(t *testing.T) {
		cats, ok := CategoriesForDepartment("Traffic")
		assert.True(t, ok)
		assert.Equal(t, []string{CategoryTrafficViolation}, cats)
	})

	t.Run("unmapped values fail closed", func(t *testing.T) {
		for _, dept := range []string{"None", "", "Finance", "health"} {
			cats, ok := CategoriesForDepartment(dept)
			assert.False(t, ok, "department %q must not resolve", dept)
			assert.Nil(t, cats)
		}
	})

	t.Run("overlapping ownership", func(t *testing.T) {
		sanitation, ok := CategoriesForDepartment("Sanitation")
		assert.True(t, ok)
		water, ok := CategoriesForDepartment("Water")
		assert.True(t, ok)

		// Sewerage overflow is intentionally visible to both departments.
		assert.Contains(t, sanitation, CategorySewerageFlow)
		assert.Contains(t, water, CategorySewerageFlow)
	})
}

func TestIsCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsCategory(c), "member %q must validate", c)
	}

	for _, c := range []string{"", "pothole", "Totally Made Up", "Garbage dump "} {
		assert.False(t, IsCategory(c), "%q is not a member", c)
	}
}

// Every keyword-table category must be reachable by at least one department,
// with the documented exception of the fallback category.
func TestKeywordCategoriesHaveADepartment(t *testing.T) {
	reachable := make(map[string]bool)
	for _, cats := range DepartmentCategories {
		for _, c := range cats {
			reachable[c] = true
		}
	}

	for _, entry := range DefaultTable().Categories {
		assert.True(t, reachable[entry.Category], "category %q is not routed to any department", entry.Category)
	}
}
