package aggregate

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baserock/megarepo/internal/config"
	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"
	"github.com/baserock/megarepo/internal/proc"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManifestStrategy(root string, runner proc.Runner) *ManifestStrategy {
	return &ManifestStrategy{
		root:   root,
		git:    git.New(runner),
		remote: config.DefaultConfig().Remote,
		logger: log.New(io.Discard),
	}
}

func declareTestEntries(t *testing.T, s *ManifestStrategy) {
	t.Helper()
	for _, entry := range []models.DesiredEntry{
		{RepoURL: "git://git.baserock.org/delta/bash", Ref: testCommit},
		{RepoURL: "ssh://git@git.baserock.org/baserock/definitions", Ref: otherCommit},
	} {
		action, err := s.Reconcile(entry)
		require.NoError(t, err)
		assert.Equal(t, ActionDeclared, action)
	}
}

func TestManifestDocumentShape(t *testing.T) {
	strategy := newManifestStrategy(t.TempDir(), &proc.RecordingRunner{})
	declareTestEntries(t, strategy)

	doc := strategy.Document()
	manifest := doc.SelectElement("manifest")
	require.NotNil(t, manifest)

	remotes := manifest.SelectElements("remote")
	require.Len(t, remotes, 1)
	assert.Equal(t, "baserock", remotes[0].SelectAttrValue("name", ""))
	assert.Equal(t, "git://git.baserock.org", remotes[0].SelectAttrValue("fetch", ""))

	projects := manifest.SelectElements("project")
	require.Len(t, projects, 2)
	for _, p := range projects {
		for _, attr := range []string{"name", "path", "remote", "revision"} {
			assert.NotEmpty(t, p.SelectAttrValue(attr, ""), "attribute %s", attr)
		}
	}
}

func TestManifestProjectNameStripsHostPrefix(t *testing.T) {
	strategy := newManifestStrategy(t.TempDir(), &proc.RecordingRunner{})
	declareTestEntries(t, strategy)

	projects := strategy.Document().SelectElement("manifest").SelectElements("project")
	require.Len(t, projects, 2)
	assert.Equal(t, "delta/bash", projects[0].SelectAttrValue("name", ""))
	assert.Equal(t, "baserock/definitions", projects[1].SelectAttrValue("name", ""))
}

func TestManifestRegenerationIsByteIdentical(t *testing.T) {
	first := newManifestStrategy(t.TempDir(), &proc.RecordingRunner{})
	second := newManifestStrategy(t.TempDir(), &proc.RecordingRunner{})
	declareTestEntries(t, first)
	declareTestEntries(t, second)

	a, err := first.Document().WriteToString()
	require.NoError(t, err)
	b, err := second.Document().WriteToString()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestManifestFinalizeWritesAndStages(t *testing.T) {
	root := t.TempDir()
	runner := &proc.RecordingRunner{}
	strategy := newManifestStrategy(root, runner)
	declareTestEntries(t, strategy)

	require.NoError(t, strategy.Finalize())

	data, err := os.ReadFile(filepath.Join(root, ManifestFilename))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<manifest>")
	assert.Contains(t, string(data), `revision="`+testCommit+`"`)

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "git add manifest.xml", strings.Join(runner.Calls[0].Argv, " "))
}
