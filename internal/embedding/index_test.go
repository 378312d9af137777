package embedding

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedding maps text onto a tiny deterministic vector so tests run
// without a remote embedding service.
func fakeEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 4)
	for i, keyword := range []string{"leave", "salary", "travel", "policy"} {
		if strings.Contains(strings.ToLower(text), keyword) {
			vec[i] = 1
		}
	}
	// avoid the zero vector, which cannot be normalized
	vec[3] += 0.01
	return vec, nil
}

func TestIndexAddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndex(fakeEmbedding)
	require.NoError(t, err)

	require.NoError(t, idx.AddTexts(ctx, []string{
		"Annual leave accrues monthly.",
		"Salary bands are reviewed yearly.",
		"Travel claims need prior approval.",
	}))

	got, err := idx.Search(ctx, "how much leave do I get", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "leave")
}

func TestIndexSearchClampsK(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndex(fakeEmbedding)
	require.NoError(t, err)

	require.NoError(t, idx.AddTexts(ctx, []string{"Leave policy overview."}))

	got, err := idx.Search(ctx, "leave", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestIndexSearchEmpty(t *testing.T) {
	idx, err := NewIndex(fakeEmbedding)
	require.NoError(t, err)

	got, err := idx.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}
