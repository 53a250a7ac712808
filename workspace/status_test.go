package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/git"
)

func TestInspect(t *testing.T) {
	cfg := testConfig("widgets", "gadgets", "empty")
	fsys := newSpace(t, cfg)
	require.NoError(t, fsys.WriteFile("/space/repositories/widgets/README.md", []byte("x"), 0o644))
	require.NoError(t, fsys.MkdirAll("/space/repositories/empty", 0o755))

	states, err := Inspect(context.Background(), fsys, cfg)
	require.NoError(t, err)
	require.Len(t, states, 3)

	assert.Equal(t, "widgets", states[0].Repository.Project)
	assert.True(t, states[0].Present)
	assert.ErrorIs(t, states[0].Err, git.ErrNotRepository)

	assert.False(t, states[1].Present)
	assert.NoError(t, states[1].Err)
	assert.Equal(t, "/space/repositories/gadgets", states[1].Path)

	assert.False(t, states[2].Present)
}

func TestInspect_MissingStore(t *testing.T) {
	cfg := testConfig("widgets")
	fsys := newSpace(t, cfg)
	require.NoError(t, fsys.RemoveAll("/space"))

	_, err := Inspect(context.Background(), fsys, cfg)
	assert.Equal(t, errors.CodeNotInitialized, errors.CodeOf(err))
}
