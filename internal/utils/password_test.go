package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("TestPass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "TestPass123!", hash)

	assert.True(t, CheckPassword("TestPass123!", hash))
	assert.False(t, CheckPassword("testpass123!", hash))
	assert.False(t, CheckPassword("TestPass123!", "not-a-hash"))
}
