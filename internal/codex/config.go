// Package codex registers agentnotify as the Codex CLI notify program.
//
// Codex runs the program named by the top-level "notify" array of
// ~/.codex/config.toml after each turn, appending one JSON argument.
package codex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigDir is the Codex home directory under the user's home.
	ConfigDir = ".codex"
	// ConfigFileName is the Codex config file.
	ConfigFileName = "config.toml"

	notifyKey = "notify"
)

// ErrNotifyConflict is returned when another notify program is configured
// and overwriting was not requested.
var ErrNotifyConflict = errors.New("codex notify is already set to another program")

// ConfigPath returns the Codex config path, honoring CODEX_HOME.
func ConfigPath() (string, error) {
	if home := os.Getenv("CODEX_HOME"); home != "" {
		return filepath.Join(home, ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ConfigDir, ConfigFileName), nil
}

// Config is a Codex config file. Unknown tables and keys are preserved.
type Config struct {
	data     map[string]interface{}
	filePath string
}

// Load reads path. A missing or empty file yields an empty config.
func Load(path string) (*Config, error) {
	c := &Config{data: make(map[string]interface{}), filePath: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading codex config %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return c, nil
	}
	if err := toml.Unmarshal(data, &c.data); err != nil {
		return nil, fmt.Errorf("parsing codex config %s: %w", path, err)
	}
	return c, nil
}

// Notify returns the configured notify command, or nil.
func (c *Config) Notify() []string {
	raw, ok := c.data[notifyKey].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SetNotify replaces the notify command.
func (c *Config) SetNotify(command []string) {
	arr := make([]interface{}, len(command))
	for i, s := range command {
		arr[i] = s
	}
	c.data[notifyKey] = arr
}

// ClearNotify removes the notify command.
func (c *Config) ClearNotify() {
	delete(c.data, notifyKey)
}

// Save writes the config, creating its directory when needed.
// Comments and key order in the original file are not preserved.
func (c *Config) Save() error {
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	data, err := toml.Marshal(c.data)
	if err != nil {
		return fmt.Errorf("serializing codex config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.filePath); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", c.filePath, err)
	}
	tmpPath = ""
	return nil
}

// Install points notify at command. It returns false when the file already
// had exactly that command. A different existing command is replaced only
// when force is set; otherwise ErrNotifyConflict is returned.
func Install(path string, command []string, force bool) (bool, error) {
	cfg, err := Load(path)
	if err != nil {
		return false, err
	}
	current := cfg.Notify()
	if slices.Equal(current, command) {
		return false, nil
	}
	if len(current) > 0 && !force {
		return false, fmt.Errorf("%w: %s", ErrNotifyConflict, strings.Join(current, " "))
	}
	cfg.SetNotify(command)
	if err := cfg.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// Uninstall removes notify when it equals command. It returns whether the
// file changed.
func Uninstall(path string, command []string) (bool, error) {
	cfg, err := Load(path)
	if err != nil {
		return false, err
	}
	if !slices.Equal(cfg.Notify(), command) {
		return false, nil
	}
	cfg.ClearNotify()
	if err := cfg.Save(); err != nil {
		return false, err
	}
	return true, nil
}
