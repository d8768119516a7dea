package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionStrings(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.Equal(t, "roster/"+GetVersion(), UserAgent())
	assert.Contains(t, String(), GetVersion())
	assert.Contains(t, String(), GetGitCommit())
	assert.Contains(t, String(), GetBuildDate())
}
