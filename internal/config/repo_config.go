package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

var (
	ErrRepoConfigNotFound = errors.New("repo config file not found")
	ErrRepoConfigParsing  = errors.New("repo config parsing failed")
)

// ParseRepoConfig overlays .reviewbuddy.yml content onto the defaults. Keys
// absent from the file keep their default values, so a partial file behaves
// like a deep merge.
func ParseRepoConfig(data []byte) (*core.RepoConfig, error) {
	cfg := core.DefaultRepoConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepoConfigParsing, err)
	}
	return cfg, nil
}

// LoadRepoConfig reads .reviewbuddy.yml from a local checkout. When the file
// does not exist the defaults are returned together with
// ErrRepoConfigNotFound, so callers can log the miss and continue.
func LoadRepoConfig(repoPath, name string) (*core.RepoConfig, error) {
	data, err := os.ReadFile(filepath.Join(repoPath, name))
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultRepoConfig(), ErrRepoConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return ParseRepoConfig(data)
}
