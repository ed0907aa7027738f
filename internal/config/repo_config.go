package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// RepoConfigFile is the name of the repository config file inside the git directory
const RepoConfigFile = ".st_config"

// DefaultTrunk is used when no trunk is configured and none can be inferred
const DefaultTrunk = "main"

// trunkCandidates are tried in order when inferring the trunk
var trunkCandidates = []string{"main", "master", "development", "develop"}

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Trunk *string `json:"trunk,omitempty"`
}

func repoConfigPath(gitDir string) string {
	return filepath.Join(gitDir, RepoConfigFile)
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(gitDir string) (*RepoConfig, error) {
	data, err := os.ReadFile(repoConfigPath(gitDir))
	if err != nil {
		if os.IsNotExist(err) {
			// Config doesn't exist - return default
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}
	return &config, nil
}

// GetTrunk returns the configured trunk branch name, or DefaultTrunk
func GetTrunk(gitDir string) (string, error) {
	config, err := GetRepoConfig(gitDir)
	if err != nil {
		return "", err
	}
	if config.Trunk != nil && *config.Trunk != "" {
		return *config.Trunk, nil
	}
	return DefaultTrunk, nil
}

// IsInitialized checks if a trunk has been configured
func IsInitialized(gitDir string) bool {
	config, err := GetRepoConfig(gitDir)
	if err != nil {
		return false
	}
	return config.Trunk != nil && *config.Trunk != ""
}

// SetTrunk updates the trunk branch in the config
func SetTrunk(gitDir string, trunkName string) error {
	if trunkName == "" {
		return fmt.Errorf("trunk name cannot be empty")
	}
	config, err := GetRepoConfig(gitDir)
	if err != nil {
		config = &RepoConfig{}
	}
	config.Trunk = &trunkName

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(repoConfigPath(gitDir), configJSON, 0600)
}

// InferTrunk picks the first well-known trunk name among branchNames.
// It returns "" when none is present.
func InferTrunk(branchNames []string) string {
	for _, candidate := range trunkCandidates {
		if slices.Contains(branchNames, candidate) {
			return candidate
		}
	}
	return ""
}
