package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultBranch is used at attach time when no override exists for a repository
const DefaultBranch = "master"

type Config struct {
	Paths    PathsConfig       `toml:"paths"`
	Remote   RemoteConfig      `toml:"remote"`
	Aliases  map[string]string `toml:"aliases"`
	Branches BranchesConfig    `toml:"branches"`
}

type PathsConfig struct {
	// GitCacheDir is where the repository-cache collaborator keeps local clones
	GitCacheDir string `toml:"git_cache_dir"`
}

type RemoteConfig struct {
	// Name of the remote declared in generated manifests
	Name string `toml:"name"`
	// FetchURL is the base URL manifest project names are relative to
	FetchURL string `toml:"fetch_url"`
	// CacheURL is the remote git cache consulted by the resolver collaborator
	CacheURL string `toml:"cache_url"`
}

type BranchesConfig struct {
	// Overrides maps repositories whose default branch is unusable at
	// `git submodule add` time (no master branch leads to "You are on a
	// branch yet to be born") to a branch name that does exist.
	Overrides map[string]string `toml:"overrides"`
}

func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			GitCacheDir: "/src/cache/gits",
		},
		Remote: RemoteConfig{
			Name:     "baserock",
			FetchURL: "git://git.baserock.org",
			CacheURL: "http://git.baserock.org:8080/",
		},
		Aliases: map[string]string{
			"upstream": "git://git.baserock.org/delta/#x",
			"baserock": "git://git.baserock.org/baserock/#x",
		},
		Branches: BranchesConfig{
			Overrides: map[string]string{
				"git://git.baserock.org/delta/intltool": "baserock/morph",
				"git://git.baserock.org/delta/perl":     "baserock/morph",
			},
		},
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "megarepo.toml"), nil
}

func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.Save() // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// BranchFor returns the branch to use when attaching repoURL for the first
// time: the override when one exists, otherwise DefaultBranch
func (c *Config) BranchFor(repoURL string) string {
	if branch, ok := c.Branches.Overrides[repoURL]; ok {
		return branch
	}
	return DefaultBranch
}
