package story

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateReturnsStartedSession(t *testing.T) {
	r := NewRegistry(&stubGenerator{})

	id, scene := r.Create(context.Background())

	assert.NotEmpty(t, id)
	require.NotNil(t, scene)
	assert.Len(t, scene.Choices, 3)

	engine, ok := r.Get(id)
	require.True(t, ok)
	assert.Equal(t, scene, engine.Current())
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry(&stubGenerator{})
	_, ok := r.Get("no-such-session")
	assert.False(t, ok)
}

func TestRegistryIDsUniqueUnderBurst(t *testing.T) {
	r := NewRegistry(&stubGenerator{})

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id, _ := r.Create(context.Background())
		_, dup := seen[id]
		require.False(t, dup, "duplicate session id %s", id)
		seen[id] = struct{}{}
	}
	assert.Equal(t, 200, r.Len())
}

func TestRegistrySessionsAreIsolated(t *testing.T) {
	r := NewRegistry(&stubGenerator{})

	idA, _ := r.Create(context.Background())
	idB, _ := r.Create(context.Background())

	engineA, _ := r.Get(idA)
	_, err := engineA.Choose(context.Background(), 0)
	require.NoError(t, err)

	engineB, _ := r.Get(idB)
	assert.Len(t, engineA.History(), 1)
	assert.Empty(t, engineB.History())
}
