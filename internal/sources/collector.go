// Package sources collects the desired (repository, ref) set for one build
// definition. Closure computation proper belongs to the build-graph resolver;
// this collector reads its pre-resolved output: YAML definition files listing
// sources directly, plus transitive includes.
package sources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/baserock/megarepo/internal/alias"
	"github.com/baserock/megarepo/internal/models"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"
)

// definitionFile mirrors the on-disk YAML shape of a build definition
type definitionFile struct {
	Name     string        `yaml:"name"`
	Sources  []sourceEntry `yaml:"sources"`
	Includes []string      `yaml:"include"`
}

type sourceEntry struct {
	Repo string `yaml:"repo"`
	Ref  string `yaml:"ref"`
}

// Collector reads build definition files and produces the de-duplicated
// desired set for one build
type Collector struct {
	resolver *alias.Resolver
	logger   *log.Logger
}

// NewCollector creates a Collector resolving repository fields through resolver
func NewCollector(resolver *alias.Resolver, logger *log.Logger) *Collector {
	return &Collector{resolver: resolver, logger: logger}
}

// Collect loads the definition file and every transitive include and returns
// the desired set. Definitions must live inside a git repository, the same
// constraint the definitions tooling imposes.
func (c *Collector) Collect(definitionPath string) (*models.EntrySet, error) {
	root, err := findDefinitionsRoot(filepath.Dir(definitionPath))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("definitions repository located", "root", root)

	set := models.NewEntrySet()
	visited := make(map[string]bool)
	if err := c.load(definitionPath, set, visited); err != nil {
		return nil, err
	}
	return set, nil
}

func (c *Collector) load(path string, set *models.EntrySet, visited map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if visited[abs] {
		return nil
	}
	visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("reading definition %s: %w", path, err)
	}

	var def definitionFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("parsing definition %s: %w", path, err)
	}

	for _, src := range def.Sources {
		if src.Repo == "" || src.Ref == "" {
			return fmt.Errorf("definition %s: source needs both repo and ref", path)
		}
		url, err := c.resolver.PullURL(src.Repo)
		if err != nil {
			return fmt.Errorf("definition %s: %w", path, err)
		}
		if set.Add(models.DesiredEntry{RepoURL: url, Ref: src.Ref}) {
			c.logger.Debug("collected source", "repo", url, "ref", src.Ref)
		}
	}

	for _, include := range def.Includes {
		if err := c.load(filepath.Join(filepath.Dir(abs), include), set, visited); err != nil {
			return err
		}
	}
	return nil
}

// findDefinitionsRoot walks up from dir until a git repository opens
func findDefinitionsRoot(dir string) (string, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := gogit.PlainOpen(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", fmt.Errorf("definition file is not inside a git repository")
		}
		path = parent
	}
}
