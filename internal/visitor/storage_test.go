package visitor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "state"))

	_, ok, err := s.GetItem(CurrentUserKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(CurrentUserKey, `{"a":1}`))
	require.NoError(t, s.SetItem(CurrentUserKey, `{"a":2}`))

	v, ok, err := s.GetItem(CurrentUserKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":2}`, v)

	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
