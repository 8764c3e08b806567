package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"K 001", "K 002"}, UniqueIDs([]string{"K 001", "K 002", "K 001", ""}))
	assert.NotNil(t, UniqueIDs(nil))
	assert.Empty(t, UniqueIDs(nil))
}
