package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCheck(t *testing.T) {
	manager := NewPasswordManager()

	hashed, err := manager.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hashed)

	ok, err := manager.Check(hashed, "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = manager.Check(hashed, "wrong-pass")
	require.NoError(t, err)
	assert.False(t, ok)
}
