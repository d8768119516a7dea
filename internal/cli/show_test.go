package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/roster/internal/roster"
)

func TestShow(t *testing.T) {
	setupCLI(t, newFakeService(5))

	t.Run("table", func(t *testing.T) {
		out := mustExecute(t, "show", "3")
		assert.Contains(t, out, "Employee 03")
		assert.Contains(t, out, "2020-02-03")
		assert.Contains(t, out, "Status:")
	})

	t.Run("json", func(t *testing.T) {
		out := mustExecute(t, "show", "#4", "-o", "json")
		var r roster.Record
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, 4, r.ID)
		assert.Equal(t, "Employee 04", r.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := execute(t, "show", "99")
		require.ErrorIs(t, err, roster.ErrRecordNotFound)
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := execute(t, "show", "abc")
		require.ErrorIs(t, err, roster.ErrInvalidInput)
	})
}
