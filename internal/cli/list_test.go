package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/roster/internal/cli/pagination"
	"github.com/rshade/roster/internal/roster"
)

func pageIDs(records []roster.Record) []int {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestList_Table(t *testing.T) {
	setupCLI(t, newFakeService(25))

	out := mustExecute(t, "list")

	assert.Contains(t, out, "Employee 01")
	assert.Contains(t, out, "Employee 10")
	assert.NotContains(t, out, "Employee 11")
	assert.Contains(t, out, "Page 1/3 · 10 of 25 employees · sort: ID")
}

func TestList_SortAndPageJSON(t *testing.T) {
	setupCLI(t, newFakeService(25))

	out := mustExecute(t, "list", "--sort", "name-reverse", "--page", "2", "--page-size", "5", "--output", "json")

	var got listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []int{20, 19, 18, 17, 16}, pageIDs(got.Employees))
	assert.Equal(t, pagination.PaginationMeta{
		CurrentPage: 2,
		PageSize:    5,
		TotalPages:  5,
		TotalItems:  25,
		SourceItems: 25,
		HasPrevious: true,
		HasNext:     true,
		Sort:        "name-reverse",
	}, got.Pagination)
}

func TestList_JobTitleYAML(t *testing.T) {
	setupCLI(t, newFakeService(12))

	out := mustExecute(t, "list", "--job-title", "software engineer", "-o", "yaml")

	var got listOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.Employees)
	for _, r := range got.Employees {
		assert.Equal(t, roster.JobTitleSoftwareEngineer, r.JobTitle)
	}
	assert.Equal(t, "job-title", got.Pagination.Sort)
	assert.Equal(t, string(roster.JobTitleSoftwareEngineer), got.Pagination.JobTitle)
	assert.Equal(t, 4, got.Pagination.TotalItems)
}

func TestList_PageIsClamped(t *testing.T) {
	setupCLI(t, newFakeService(7))

	out := mustExecute(t, "list", "--page", "99", "--page-size", "3")
	assert.Contains(t, out, "Page 3/3")
	assert.Contains(t, out, "Employee 07")
}

func TestList_Empty(t *testing.T) {
	setupCLI(t, newFakeService(0))

	out := mustExecute(t, "list")
	assert.Contains(t, out, "No employees.")

	out = mustExecute(t, "list", "-o", "json")
	var got listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotNil(t, got.Employees)
	assert.Empty(t, got.Employees)
	assert.Equal(t, 1, got.Pagination.TotalPages)
}

func TestList_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "page zero", args: []string{"--page", "0"}, wantErr: pagination.ErrInvalidPage},
		{name: "unknown sort", args: []string{"--sort", "salary"}, wantErr: pagination.ErrInvalidSortFormat},
		{name: "unknown job title", args: []string{"--job-title", "Pilot"}, wantErr: pagination.ErrInvalidJobTitle},
		{name: "job-title sort alone", args: []string{"--sort", "job-title"}, wantErr: pagination.ErrJobTitleRequired},
		{name: "output xml", args: []string{"--output", "xml"}, wantErr: ErrUnsupportedOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(3)
			setupCLI(t, svc)

			_, err := execute(t, append([]string{"list"}, tt.args...)...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, svc.fetchCount(), "invalid flags fail before fetching")
		})
	}
}

func TestList_Unauthorized(t *testing.T) {
	svc := newFakeService(3)
	svc.token = "secret"
	setupCLI(t, svc)

	_, err := execute(t, "list")
	require.Error(t, err)
	var authErr *AuthRequiredError
	require.True(t, errors.As(err, &authErr))
	assert.ErrorIs(t, err, roster.ErrNotAuthorized)
	assert.Equal(t, ExitCodeAuthRequired, ExitCode(err))

	out := mustExecute(t, "list", "--token", "secret")
	assert.Contains(t, out, "Employee 01")
}

func TestList_CacheFallback(t *testing.T) {
	svc := newFakeService(4)
	setupCLI(t, svc)

	mustExecute(t, "list")
	svc.set(func(s *fakeService) { s.failGets = http.StatusBadGateway })

	t.Run("transient failure shows cached roster", func(t *testing.T) {
		out := mustExecute(t, "list")
		assert.Contains(t, out, "Warning:")
		assert.Contains(t, out, "Showing cached roster")
		assert.Contains(t, out, "Employee 04")
	})

	t.Run("offline skips the service", func(t *testing.T) {
		before := svc.fetchCount()
		out := mustExecute(t, "list", "--offline")
		assert.Contains(t, out, "Employee 04")
		assert.Equal(t, before, svc.fetchCount())
	})
}

func TestList_OfflineWithoutCache(t *testing.T) {
	setupCLI(t, newFakeService(4))

	_, err := execute(t, "list", "--offline")
	require.ErrorIs(t, err, ErrNoCachedRoster)
}

func TestList_TransientWithoutCache(t *testing.T) {
	svc := newFakeService(4)
	svc.failGets = http.StatusInternalServerError
	setupCLI(t, svc)

	_, err := execute(t, "list")
	require.ErrorIs(t, err, roster.ErrTransientFetch)
	assert.Equal(t, ExitCodeError, ExitCode(err))
}

func TestList_CacheDisabled(t *testing.T) {
	svc := newFakeService(2)
	setupCLI(t, svc)
	t.Setenv("ROSTER_CACHE_ENABLED", "false")

	mustExecute(t, "list")
	_, err := execute(t, "list", "--offline")
	require.ErrorIs(t, err, ErrNoCachedRoster)
}

func TestBrowse_FallsBackToList(t *testing.T) {
	setupCLI(t, newFakeService(12))

	out := mustExecute(t, "browse", "--sort", "hire-date", "--page-size", "4")
	assert.Contains(t, out, "Employee 12")
	assert.Contains(t, out, "Page 1/3")
	assert.Contains(t, out, "sort: Newest first")
}
