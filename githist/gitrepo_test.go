package githist

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	work *gogit.Worktree
	when time.Time
}

func initTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	work, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{
		t:    t,
		dir:  dir,
		repo: repo,
		work: work,
		when: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) sig() *object.Signature {
	r.when = r.when.Add(time.Minute)
	return &object.Signature{Name: "dev", Email: "dev@example.com", When: r.when}
}

func (r *testRepo) commit(file, msg string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	require.NoError(r.t, os.WriteFile(filepath.Join(r.dir, file), []byte(msg), 0o644))
	_, err := r.work.Add(file)
	require.NoError(r.t, err)
	sig := r.sig()
	h, err := r.work.Commit(msg, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	require.NoError(r.t, err)
	return h
}

func (r *testRepo) branch(name string) {
	r.t.Helper()
	require.NoError(r.t, r.work.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	}))
}

func (r *testRepo) checkout(name string) {
	r.t.Helper()
	require.NoError(r.t, r.work.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}))
}

func TestGitSourceResolveAndLoad(t *testing.T) {
	tr := initTestRepo(t)
	first := tr.commit("a.txt", "first commit\n\nwith a body")
	second := tr.commit("b.txt", "second commit")
	_, err := tr.repo.CreateTag("v1.0.0", first, nil)
	require.NoError(t, err)

	src, err := Open(tr.dir)
	require.NoError(t, err)
	assert.NotEmpty(t, src.GitDir())

	head, err := src.Resolve("HEAD")
	require.NoError(t, err)
	assert.Equal(t, second, head)

	byTag, err := src.Resolve("v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, first, byTag)

	_, err = src.Resolve("no-such-branch")
	assert.ErrorIs(t, err, ErrRevisionNotFound)

	c, err := src.Commit(first)
	require.NoError(t, err)
	assert.Equal(t, "first commit", c.Subject)
	assert.Equal(t, "with a body", c.Body)
	assert.Equal(t, "dev", c.Author.Name)
	assert.True(t, c.IsRoot())
	assert.Contains(t, c.References, "tag: v1.0.0")

	hc, err := src.Commit(second)
	require.NoError(t, err)
	assert.True(t, hc.IsHead)
	assert.False(t, c.IsHead)

	_, err = src.Commit(plumbing.NewHash("0123456789abcdef0123456789abcdef01234567"))
	assert.ErrorIs(t, err, ErrCommitNotFound)
}

func TestGitSourceAncestry(t *testing.T) {
	tr := initTestRepo(t)
	first := tr.commit("a.txt", "first")
	second := tr.commit("b.txt", "second")

	src, err := Open(tr.dir)
	require.NoError(t, err)

	ok, err := src.IsAncestor(first, second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = src.IsAncestor(second, first)
	require.NoError(t, err)
	assert.False(t, ok)

	parents, err := src.Parents(second)
	require.NoError(t, err)
	assert.Equal(t, []plumbing.Hash{first}, parents)
}

func TestGitSourceReload(t *testing.T) {
	tr := initTestRepo(t)
	tr.commit("a.txt", "first")

	src, err := Open(tr.dir)
	require.NoError(t, err)

	second := tr.commit("b.txt", "second")
	// The stale view still reports the old HEAD until reloaded.
	stale, err := src.Resolve("HEAD")
	require.NoError(t, err)
	if stale != second {
		require.NoError(t, src.Reload())
	}
	head, err := src.Resolve("HEAD")
	require.NoError(t, err)
	assert.Equal(t, second, head)
}

func TestGitSourceSharedBetweenResolverAndWalk(t *testing.T) {
	tr := initTestRepo(t)
	tr.commit("a.txt", "base")
	for i := 0; i < 8; i++ {
		main, err := tr.repo.Head()
		require.NoError(t, err)
		branch := fmt.Sprintf("side%d", i)
		tr.branch(branch)
		side := tr.commit(fmt.Sprintf("s%d.txt", i), fmt.Sprintf("work %d", i))
		tr.checkout("master")
		tr.commit("a.txt", fmt.Sprintf("Merge branch '%s'", branch), main.Hash(), side)
	}

	src, err := Open(tr.dir)
	require.NoError(t, err)
	head, err := src.Resolve("HEAD")
	require.NoError(t, err)

	// The resolver workers load commits through the same source the
	// walk reads on this goroutine, with a reload racing both.
	r := NewResolver(src, 4)
	defer r.Close()

	h, err := New(src, r, head, plumbing.ZeroHash)
	require.NoError(t, err)
	require.NoError(t, src.Reload())
	for !h.Exhausted() {
		_, err := h.LoadMore(4)
		require.NoError(t, err)
	}

	for i := 0; i < 8; i++ {
		res := awaitResult(t, r)
		changed, err := h.Apply(res)
		require.NoError(t, err)
		assert.True(t, changed)
	}
	// Mainline is the 8 merges plus the base commit.
	assert.Equal(t, 9, h.Len())
}

func TestGitSourceHistoryEndToEnd(t *testing.T) {
	tr := initTestRepo(t)
	base := tr.commit("a.txt", "base")
	tr.branch("side")
	s1 := tr.commit("s.txt", "side work")
	tr.checkout("master")
	m1 := tr.commit("m.txt", "main work")
	tr.commit("a.txt", "Merge branch 'side'", m1, s1)

	src, err := Open(tr.dir)
	require.NoError(t, err)

	head, err := src.Resolve("HEAD")
	require.NoError(t, err)

	r := NewResolver(src, 2)
	defer r.Close()

	h, err := New(src, r, head, plumbing.ZeroHash)
	require.NoError(t, err)
	require.Equal(t, []string{"Merge branch 'side'", "main work", "base"}, subjects(h))
	assert.Equal(t, RoleMerge, h.Entry(0).Role)

	res := awaitResult(t, r)
	assert.True(t, res.Found)
	assert.Equal(t, base, res.ForkPoint)

	_, err = h.Apply(res)
	require.NoError(t, err)
	require.NoError(t, h.Unfold(0))
	assert.Equal(t, []string{"Merge branch 'side'", "side work", "main work", "base"}, subjects(h))
	assert.Equal(t, 1, h.Entry(1).Level)

	refs := src.References()
	assert.Contains(t, refs, "master")
	assert.Contains(t, refs, "side")
}
