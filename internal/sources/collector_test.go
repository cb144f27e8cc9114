package sources

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/baserock/megarepo/internal/alias"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) *Collector {
	resolver, err := alias.NewResolver(map[string]string{
		"upstream": "git://git.baserock.org/delta/#x",
	})
	require.NoError(t, err)
	return NewCollector(resolver, log.New(io.Discard))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCollectResolvesAliasesAndIncludes(t *testing.T) {
	root := t.TempDir()
	_, err := gogit.PlainInit(root, false)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "systems", "base.yaml"), `
name: base-system
sources:
  - repo: upstream:bash
    ref: aaaa1111
  - repo: git://git.baserock.org/delta/make
    ref: bbbb2222
include:
  - ../strata/core.yaml
`)
	writeFile(t, filepath.Join(root, "strata", "core.yaml"), `
name: core
sources:
  - repo: upstream:bash
    ref: aaaa1111
  - repo: upstream:gawk
    ref: cccc3333
`)

	set, err := newTestCollector(t).Collect(filepath.Join(root, "systems", "base.yaml"))
	require.NoError(t, err)

	// The duplicate bash pair collapses across files
	require.Equal(t, 3, set.Len())

	entries := set.Entries()
	assert.Equal(t, "git://git.baserock.org/delta/bash", entries[0].RepoURL)
	assert.Equal(t, "aaaa1111", entries[0].Ref)
	assert.Equal(t, "git://git.baserock.org/delta/make", entries[1].RepoURL)
	assert.Equal(t, "git://git.baserock.org/delta/gawk", entries[2].RepoURL)
}

func TestCollectCyclicIncludesTerminate(t *testing.T) {
	root := t.TempDir()
	_, err := gogit.PlainInit(root, false)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "a.yaml"), `
sources:
  - repo: upstream:bash
    ref: aaaa1111
include: [b.yaml]
`)
	writeFile(t, filepath.Join(root, "b.yaml"), `
sources:
  - repo: upstream:make
    ref: bbbb2222
include: [a.yaml]
`)

	set, err := newTestCollector(t).Collect(filepath.Join(root, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestCollectRejectsIncompleteSource(t *testing.T) {
	root := t.TempDir()
	_, err := gogit.PlainInit(root, false)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "bad.yaml"), `
sources:
  - repo: upstream:bash
`)

	_, err = newTestCollector(t).Collect(filepath.Join(root, "bad.yaml"))
	assert.Error(t, err)
}

func TestCollectOutsideGitRepository(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "def.yaml"), "sources: []\n")

	_, err := newTestCollector(t).Collect(filepath.Join(dir, "def.yaml"))
	assert.Error(t, err)
}
