package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	_, ok, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetMany(ctx, map[string]string{"users": "[]", "currentUser": "null"}))

	value, ok, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	require.NoError(t, s.SetMany(ctx, map[string]string{"users": `[{"id":"u1"}]`}))
	value, _, _ = s.Get(ctx, "users")
	assert.Equal(t, `[{"id":"u1"}]`, value)
	value, _, _ = s.Get(ctx, "currentUser")
	assert.Equal(t, "null", value)
}
