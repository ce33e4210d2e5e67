package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = ".agentnotify"
	configFileName = "config.json"
)

// UserConfigPath returns the user-level config file path (~/.agentnotify/config.json).
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// ProjectConfigPath returns the project-level config file path relative to
// the working directory.
func ProjectConfigPath() string {
	return filepath.Join(configDirName, configFileName)
}
