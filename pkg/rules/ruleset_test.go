package rules

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/heat1q/clir/pkg/filesystem"
	"github.com/heat1q/clir/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempRoot returns a symlink-free temp directory so that canonicalized
// match paths compare equal to the paths built in the test.
func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

func loadRuleSet(t *testing.T, root string, patterns []string) *RuleSet {
	t.Helper()
	rulesFile := filepath.Join(root, ".clir")
	testutil.WriteRulesFile(t, rulesFile, patterns)
	ruleSet, err := Load(NewStore(rulesFile, filesystem.NewOS()), filesystem.NewOS(), 4)
	require.NoError(t, err)
	return ruleSet
}

func TestListSingleDirectory(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "dir/a.tmp", 1024)
	testutil.CreateFile(t, root, "dir/b.tmp", 1024)

	ruleSet := loadRuleSet(t, root, []string{filepath.Join(root, "dir")})

	expanded, err := ruleSet.List()
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	ep := expanded[0]
	assert.Equal(t, filepath.Join(root, "dir"), ep.Pattern.String())
	assert.Equal(t, uint64(2048), ep.Size())
	assert.Equal(t, 1, ep.NumDirs())
	assert.Equal(t, 0, ep.NumFiles())
}

func TestListOverlappingPatterns(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "dir/a.tmp", 1024)
	testutil.CreateFile(t, root, "dir/b.tmp", 1024)

	ruleSet := loadRuleSet(t, root, []string{
		filepath.Join(root, "dir", "**", "*.tmp"),
		filepath.Join(root, "dir"),
	})

	expanded, err := ruleSet.List()
	require.NoError(t, err)
	require.Len(t, expanded, 1, "the subsumed glob rule must be hidden")

	ep := expanded[0]
	assert.Equal(t, filepath.Join(root, "dir"), ep.Pattern.String())
	assert.Equal(t, uint64(2048), ep.Size(), "total must equal the ancestor alone, not the sum of both rules")

	report := Report(expanded)
	assert.Equal(t, uint64(2048), report.TotalSize)
	assert.Equal(t, 1, report.TotalDirs)
	assert.Equal(t, 0, report.TotalFiles)
}

func TestListDisjointFiles(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "a.tmp", 1024)
	testutil.CreateFile(t, root, "b.tmp", 1024)

	ruleSet := loadRuleSet(t, root, []string{
		filepath.Join(root, "a.tmp"),
		filepath.Join(root, "b.tmp"),
	})

	expanded, err := ruleSet.List()
	require.NoError(t, err)
	require.Len(t, expanded, 2)
	for _, ep := range expanded {
		assert.Equal(t, uint64(1024), ep.Size())
		assert.Equal(t, 1, ep.NumFiles())
	}

	report := Report(expanded)
	assert.Equal(t, uint64(2048), report.TotalSize)
	assert.Equal(t, 2, report.TotalFiles)
}

func TestListSymlinkAliasCountsOnce(t *testing.T) {
	root := tempRoot(t)
	target := testutil.CreateFile(t, root, "target.bin", 1024)
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.bin")))

	ruleSet := loadRuleSet(t, root, []string{filepath.Join(root, "*.bin")})

	expanded, err := ruleSet.List()
	require.NoError(t, err)
	require.Len(t, expanded, 1)
	assert.Equal(t, uint64(1024), expanded[0].Size(), "aliased matches must not double count")
	assert.Equal(t, 1, expanded[0].NumFiles())
	assert.Equal(t, []string{target}, expanded[0].Paths())

	result := ruleSet.Clean(expanded)
	assert.Equal(t, []string{target}, result.Removed)
	assert.Empty(t, result.Failed, "aliased matches must not be removed twice")
}

func TestListNoMatches(t *testing.T) {
	root := tempRoot(t)

	ruleSet := loadRuleSet(t, root, []string{filepath.Join(root, "missing", "**", "*")})

	expanded, err := ruleSet.List()
	require.NoError(t, err)
	assert.Empty(t, expanded, "patterns without matches are hidden")
	assert.Equal(t, uint64(0), Report(expanded).TotalSize)
}

func TestListSortsAscendingBySize(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "big.bin", 4096)
	testutil.CreateFile(t, root, "small.bin", 512)

	ruleSet := loadRuleSet(t, root, []string{
		filepath.Join(root, "big.bin"),
		filepath.Join(root, "small.bin"),
	})

	expanded, err := ruleSet.List()
	require.NoError(t, err)
	require.Len(t, expanded, 2)
	assert.Equal(t, uint64(512), expanded[0].Size())
	assert.Equal(t, uint64(4096), expanded[1].Size())
}

func TestListIsIdempotent(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "dir/a.tmp", 1024)
	testutil.CreateFile(t, root, "dir/sub/b.tmp", 512)

	ruleSet := loadRuleSet(t, root, []string{
		filepath.Join(root, "dir"),
		filepath.Join(root, "dir", "**", "*.tmp"),
	})

	first, err := ruleSet.List()
	require.NoError(t, err)
	second, err := ruleSet.List()
	require.NoError(t, err)

	assert.Equal(t, Report(first), Report(second))
}

func TestAddIsSetSemantics(t *testing.T) {
	root := tempRoot(t)
	rulesFile := filepath.Join(root, ".clir")
	fsys := filesystem.NewOS()

	ruleSet, err := Load(NewStore(rulesFile, fsys), fsys, 0)
	require.NoError(t, err)

	require.NoError(t, ruleSet.Add([]string{"cache/"}, root))
	require.NoError(t, ruleSet.Add([]string{"cache"}, root))
	require.NoError(t, ruleSet.Add([]string{"./cache"}, root))

	want := []string{filepath.Join(root, "cache")}
	assert.Equal(t, want, ruleSet.Strings())
	assert.Equal(t, want, testutil.ReadRulesFile(t, rulesFile), "adding the same normalized pattern must not grow the store")
}

func TestRemove(t *testing.T) {
	root := tempRoot(t)
	rulesFile := filepath.Join(root, ".clir")
	fsys := filesystem.NewOS()

	ruleSet, err := Load(NewStore(rulesFile, fsys), fsys, 0)
	require.NoError(t, err)
	require.NoError(t, ruleSet.Add([]string{"cache", "logs"}, root))

	require.NoError(t, ruleSet.Remove([]string{"cache/"}, root))

	assert.Equal(t, []string{filepath.Join(root, "logs")}, testutil.ReadRulesFile(t, rulesFile))
}

func TestLoadSkipsInvalidEntries(t *testing.T) {
	root := tempRoot(t)
	rulesFile := filepath.Join(root, ".clir")
	testutil.WriteRulesFile(t, rulesFile, []string{
		"/ok/path",
		"../escapes/the/root",
		"",
		"/also/../fine",
	})

	ruleSet, err := Load(NewStore(rulesFile, filesystem.NewOS()), filesystem.NewOS(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"/fine", "/ok/path"}, ruleSet.Strings())
}

func TestCleanAll(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "dir/a.tmp", 64)
	testutil.CreateFile(t, root, "dir/b.tmp", 64)
	solo := testutil.CreateFile(t, root, "solo.tmp", 64)

	ruleSet := loadRuleSet(t, root, []string{
		filepath.Join(root, "dir"),
		solo,
	})

	result, err := ruleSet.CleanAll()
	require.NoError(t, err)
	assert.Len(t, result.Removed, 2)
	assert.Empty(t, result.Failed)
	assert.NoDirExists(t, filepath.Join(root, "dir"))
	assert.NoFileExists(t, solo)
}

func TestCleanBestEffort(t *testing.T) {
	root := tempRoot(t)
	a := testutil.CreateFile(t, root, "a.tmp", 16)
	b := testutil.CreateFile(t, root, "b.tmp", 16)
	c := testutil.CreateFile(t, root, "c.tmp", 16)

	fsys := testutil.NewFailFS(filesystem.NewOS())
	fsys.RemoveErrs[b] = fs.ErrPermission

	rulesFile := filepath.Join(root, "rules")
	testutil.WriteRulesFile(t, rulesFile, []string{a, b, c})
	ruleSet, err := Load(NewStore(rulesFile, fsys), fsys, 2)
	require.NoError(t, err)

	result, err := ruleSet.CleanAll()
	require.NoError(t, err, "per-path failures must not fail the clean operation")
	assert.ElementsMatch(t, []string{a, c}, result.Removed)
	assert.Equal(t, []string{b}, result.Failed)
	assert.NoFileExists(t, a)
	assert.FileExists(t, b)
	assert.NoFileExists(t, c)
}

// Overlap attribution must not depend on the order the rules were
// written to the store.
func TestListOverlapIsDeterministic(t *testing.T) {
	root := tempRoot(t)
	testutil.CreateFile(t, root, "dir/a.tmp", 1024)
	testutil.CreateFile(t, root, "dir/b.tmp", 1024)

	patterns := []string{
		filepath.Join(root, "dir"),
		filepath.Join(root, "dir", "**", "*.tmp"),
	}
	forward := loadRuleSet(t, root, patterns)
	reversed := loadRuleSet(t, root, []string{patterns[1], patterns[0]})

	expandedFwd, err := forward.List()
	require.NoError(t, err)
	expandedRev, err := reversed.List()
	require.NoError(t, err)

	assert.Equal(t, Report(expandedFwd), Report(expandedRev))
}
