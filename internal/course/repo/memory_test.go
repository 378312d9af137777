package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursegen-poc/server/internal/course/model"
)

func TestMemorySessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepository()

	miss, err := r.Lookup(ctx, "s1", "fp1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	course := &model.GeneratedCourse{Topic: "Leave Policy", Content: "text", Path: "/tmp/x.txt"}
	require.NoError(t, r.Store(ctx, "s1", "fp1", course))

	got, err := r.Lookup(ctx, "s1", "fp1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *course, *got)

	// other sessions and fingerprints stay isolated
	other, err := r.Lookup(ctx, "s2", "fp1")
	require.NoError(t, err)
	assert.Nil(t, other)
	other, err = r.Lookup(ctx, "s1", "fp2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemorySessionRepositoryClear(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepository()

	require.NoError(t, r.Store(ctx, "s1", "fp1", &model.GeneratedCourse{Content: "a"}))
	require.NoError(t, r.Store(ctx, "s2", "fp1", &model.GeneratedCourse{Content: "b"}))
	require.NoError(t, r.Clear(ctx, "s1"))

	got, err := r.Lookup(ctx, "s1", "fp1")
	require.NoError(t, err)
	assert.Nil(t, got)

	kept, err := r.Lookup(ctx, "s2", "fp1")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "b", kept.Content)
}
