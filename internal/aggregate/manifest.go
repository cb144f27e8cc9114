package aggregate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/baserock/megarepo/internal/config"
	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
)

// ManifestFilename is the well-known document name at the aggregate root
const ManifestFilename = "manifest.xml"

// strippedPrefixes are host prefixes removed from repository URLs when
// deriving manifest project names, which are relative to the remote's fetch URL
var strippedPrefixes = []string{
	"git://git.baserock.org",
	"ssh://git@git.baserock.org",
}

// ManifestStrategy records the desired set declaratively in a repo-style
// manifest.xml instead of embedding any content. It tracks no per-entry
// state: the whole document is regenerated on every run.
type ManifestStrategy struct {
	root   string
	git    *git.Git
	remote config.RemoteConfig
	logger *log.Logger

	entries []models.DesiredEntry
}

func (s *ManifestStrategy) Name() string { return "repo" }

// Reconcile collects the entry; the document is built in Finalize
func (s *ManifestStrategy) Reconcile(entry models.DesiredEntry) (Action, error) {
	s.entries = append(s.entries, entry)
	return ActionDeclared, nil
}

// Finalize writes manifest.xml at the aggregate root and stages it
func (s *ManifestStrategy) Finalize() error {
	doc := s.Document()
	path := filepath.Join(s.root, ManifestFilename)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", ManifestFilename, err)
	}
	s.logger.Info("wrote manifest", "path", path, "projects", len(s.entries))
	return s.git.Add(s.root, ManifestFilename)
}

// Document builds the manifest: one remote declaration and one project
// element per collected entry, pretty-printed with 2-space indentation
func (s *ManifestStrategy) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	manifest := doc.CreateElement("manifest")

	remote := manifest.CreateElement("remote")
	remote.CreateAttr("name", s.remote.Name)
	remote.CreateAttr("fetch", s.remote.FetchURL)

	for _, entry := range s.entries {
		project := manifest.CreateElement("project")
		project.CreateAttr("name", projectName(entry.RepoURL))
		project.CreateAttr("path", entry.Name())
		project.CreateAttr("remote", s.remote.Name)
		project.CreateAttr("revision", entry.Ref)
	}

	doc.Indent(2)
	return doc
}

func projectName(repoURL string) string {
	name := repoURL
	for _, prefix := range strippedPrefixes {
		name = strings.TrimPrefix(name, prefix)
	}
	return strings.TrimPrefix(name, "/")
}
