package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/roster/internal/roster"
)

func TestFilterByJobTitle(t *testing.T) {
	input := []roster.Record{
		{ID: 4, JobTitle: roster.JobTitleSoftwareEngineer},
		{ID: 1, JobTitle: roster.JobTitleCustomerSupport},
		{ID: 3, JobTitle: roster.JobTitleSoftwareEngineer},
		{ID: 2, JobTitle: roster.JobTitleITSupport},
	}

	t.Run("keeps matching records in order", func(t *testing.T) {
		got := FilterByJobTitle(input, roster.JobTitleSoftwareEngineer)
		assert.Equal(t, []int{4, 3}, ids(got))
	})

	t.Run("empty value is no filter", func(t *testing.T) {
		got := FilterByJobTitle(input, "")
		assert.Equal(t, ids(input), ids(got))
	})

	t.Run("match is case-sensitive", func(t *testing.T) {
		got := FilterByJobTitle(input, "software engineer")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		got := FilterByJobTitle(input, "Astronaut")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("does not modify input", func(t *testing.T) {
		before := ids(input)
		_ = FilterByJobTitle(input, roster.JobTitleITSupport)
		assert.Equal(t, before, ids(input))
	})
}
