package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heat1q/clir/pkg/errors"
	"github.com/heat1q/clir/pkg/filesystem"
	"github.com/heat1q/clir/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPattern(t *testing.T) {
	pattern, err := NewPattern("build/**/*.o", "/home/user")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/build/**/*.o", pattern.String())

	_, err = NewPattern("../../..", "/a")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestExpandClassifiesMatches(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "a.tmp", 8)
	testutil.CreateDir(t, root, "cache")

	pattern, err := NewPattern(filepath.Join(root, "*"), "/")
	require.NoError(t, err)

	ep := pattern.Expand(filesystem.NewOS())
	require.Len(t, ep.matched, 2)

	byPath := map[string]bool{}
	for _, mp := range ep.matched {
		byPath[mp.path] = mp.isDir
	}
	assert.False(t, byPath[filepath.Join(root, "a.tmp")])
	assert.True(t, byPath[filepath.Join(root, "cache")])
}

func TestExpandCollapsesSymlinkAliases(t *testing.T) {
	root := tempRoot(t)
	target := testutil.CreateFile(t, root, "target.bin", 1024)
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.bin")))

	pattern, err := NewPattern(filepath.Join(root, "*.bin"), "/")
	require.NoError(t, err)

	ep := pattern.Expand(filesystem.NewOS())
	require.Len(t, ep.matched, 1, "symlink and target canonicalize to the same path")
	assert.Equal(t, target, ep.matched[0].path)
}

func TestExpandInvalidGlob(t *testing.T) {
	pattern, err := NewPattern("/tmp/[", "/")
	require.NoError(t, err, "glob syntax is not validated at add time")

	ep := pattern.Expand(filesystem.NewOS())
	assert.Empty(t, ep.matched, "a glob that fails to compile is dropped")
	assert.True(t, ep.IsEmpty())
}

func TestExpandNoMatches(t *testing.T) {
	root := tempRoot(t)

	pattern, err := NewPattern(filepath.Join(root, "missing", "**", "*"), "/")
	require.NoError(t, err)

	ep := pattern.Expand(filesystem.NewOS())
	assert.Empty(t, ep.matched)
}
