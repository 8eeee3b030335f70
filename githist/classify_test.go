package githist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrecedence(t *testing.T) {
	src := newGraph().
		commit("root", "first").
		commit("plain", "plain", "root").
		commit("side", "side", "root").
		commit("merge", "Merge branch 'side'", "plain", "side").
		commit("subtree", "Update :vendor/lexer to v1.2.0", "merge", "side").
		build()

	get := func(name string) *Commit {
		c, err := src.Commit(hashOf(name))
		assert.NoError(t, err)
		return c
	}

	tests := []struct {
		name string
		c    *Commit
		ctx  classifyCtx
		want Role
	}{
		{"root commit", get("root"), classifyCtx{}, RoleInitial},
		{"root wins over boundary", get("root"), classifyCtx{boundary: true}, RoleInitial},
		{"boundary", get("plain"), classifyCtx{boundary: true}, RoleLast},
		{"boundary wins over merge", get("merge"), classifyCtx{boundary: true}, RoleLast},
		{"fork point", get("plain"), classifyCtx{forkPoint: true}, RoleForkPoint},
		{"link", get("plain"), classifyCtx{linked: true}, RoleCommitLink},
		{"merge", get("merge"), classifyCtx{}, RoleMerge},
		{"subtree merge", get("subtree"), classifyCtx{}, RoleFoldable},
		{"plain", get("plain"), classifyCtx{}, RoleCommit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.c, tt.ctx))
		})
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "commit", RoleCommit.String())
	assert.Equal(t, "merge", RoleMerge.String())
	assert.Equal(t, "foldable", RoleFoldable.String())
	assert.Equal(t, "fork-point", RoleForkPoint.String())
	assert.Equal(t, "commit-link", RoleCommitLink.String())
	assert.Equal(t, "initial", RoleInitial.String())
	assert.Equal(t, "last", RoleLast.String())
}
