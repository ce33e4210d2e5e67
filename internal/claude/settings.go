package claude

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HookStatus represents how far the notifier is registered in a settings file.
type HookStatus int

const (
	// StatusConfigured indicates every hook event runs the notifier.
	StatusConfigured HookStatus = iota
	// StatusMissing indicates the settings file does not exist.
	StatusMissing
	// StatusPartial indicates some hook events lack the notifier.
	StatusPartial
	// StatusNotConfigured indicates no hook event runs the notifier.
	StatusNotConfigured
)

// String returns a human-readable representation of the status.
func (s HookStatus) String() string {
	switch s {
	case StatusConfigured:
		return "Configured"
	case StatusMissing:
		return "Missing"
	case StatusPartial:
		return "Partial"
	case StatusNotConfigured:
		return "NotConfigured"
	default:
		return "Unknown"
	}
}

// HookEvents are the Claude Code events the notifier subscribes to.
var HookEvents = []string{"Notification", "Stop", "SubagentStop"}

// SettingsFileName is the name of the Claude settings file.
const SettingsFileName = "settings.json"

// SettingsDir is the directory containing Claude settings.
const SettingsDir = ".claude"

// Settings represents a Claude settings file with flexible JSON structure.
// Uses map[string]interface{} to preserve unknown fields during modification.
type Settings struct {
	data     map[string]interface{}
	filePath string
}

// ProjectSettingsPath returns the settings path for a project directory.
func ProjectSettingsPath(projectDir string) string {
	return filepath.Join(projectDir, SettingsDir, SettingsFileName)
}

// UserSettingsPath returns the user-level settings path (~/.claude/settings.json).
func UserSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, SettingsDir, SettingsFileName), nil
}

// Load reads and parses Claude settings from settingsPath.
// Returns a Settings instance even if the file doesn't exist (with empty data).
// Returns an error only for actual failures like permission errors or malformed JSON.
func Load(settingsPath string) (*Settings, error) {
	s := &Settings{
		data:     make(map[string]interface{}),
		filePath: settingsPath,
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.data); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", settingsPath, err)
	}

	return s, nil
}

// FilePath returns the path to the settings file.
func (s *Settings) FilePath() string {
	return s.filePath
}

// Exists returns true if the settings file exists on disk.
func (s *Settings) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// getHooks returns the hooks object, creating it if necessary.
func (s *Settings) getHooks() map[string]interface{} {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	if !ok {
		hooks = make(map[string]interface{})
		s.data["hooks"] = hooks
	}
	return hooks
}

// matcherGroups returns the matcher groups registered for event.
func (s *Settings) matcherGroups(event string) []interface{} {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}
	groups, _ := hooks[event].([]interface{})
	return groups
}

// groupCommands returns the command strings of one matcher group.
func groupCommands(group interface{}) []string {
	g, ok := group.(map[string]interface{})
	if !ok {
		return nil
	}
	entries, ok := g["hooks"].([]interface{})
	if !ok {
		return nil
	}
	var commands []string
	for _, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		if cmd, ok := entry["command"].(string); ok {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// HasHook reports whether event already runs command.
func (s *Settings) HasHook(event, command string) bool {
	for _, group := range s.matcherGroups(event) {
		for _, c := range groupCommands(group) {
			if strings.TrimSpace(c) == strings.TrimSpace(command) {
				return true
			}
		}
	}
	return false
}

// AddHooks registers command for every event that lacks it and returns
// the events that were actually added. Calling it twice has the same
// effect as calling it once.
func (s *Settings) AddHooks(command string, events []string) []string {
	var added []string
	for _, event := range events {
		if s.HasHook(event, command) {
			continue
		}
		hooks := s.getHooks()
		group := map[string]interface{}{
			"matcher": "",
			"hooks": []interface{}{
				map[string]interface{}{"type": "command", "command": command},
			},
		}
		hooks[event] = append(s.matcherGroups(event), group)
		added = append(added, event)
	}
	return added
}

// RemoveHooks deletes every hook entry running command and returns the
// events that changed. Empty matcher groups and events are dropped.
func (s *Settings) RemoveHooks(command string, events []string) []string {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}

	var removed []string
	for _, event := range events {
		groups := s.matcherGroups(event)
		kept, changed := removeCommand(groups, command)
		if !changed {
			continue
		}
		removed = append(removed, event)
		if len(kept) == 0 {
			delete(hooks, event)
		} else {
			hooks[event] = kept
		}
	}
	if len(hooks) == 0 {
		delete(s.data, "hooks")
	}
	return removed
}

// removeCommand filters command out of the matcher groups.
func removeCommand(groups []interface{}, command string) ([]interface{}, bool) {
	changed := false
	kept := make([]interface{}, 0, len(groups))
	for _, group := range groups {
		g, ok := group.(map[string]interface{})
		if !ok {
			kept = append(kept, group)
			continue
		}
		entries, _ := g["hooks"].([]interface{})
		var remaining []interface{}
		for _, e := range entries {
			entry, ok := e.(map[string]interface{})
			if ok && strings.TrimSpace(fmt.Sprint(entry["command"])) == strings.TrimSpace(command) {
				changed = true
				continue
			}
			remaining = append(remaining, e)
		}
		if len(remaining) == 0 && len(entries) > 0 {
			continue
		}
		g["hooks"] = remaining
		kept = append(kept, g)
	}
	return kept, changed
}

// Check reports how far command is registered for events.
func (s *Settings) Check(command string, events []string) HookStatus {
	if !s.Exists() {
		return StatusMissing
	}
	found := 0
	for _, event := range events {
		if s.HasHook(event, command) {
			found++
		}
	}
	switch found {
	case len(events):
		return StatusConfigured
	case 0:
		return StatusNotConfigured
	default:
		return StatusPartial
	}
}

// Save writes the settings to disk using atomic write (temp file + rename).
// Creates the .claude directory if it doesn't exist.
// Written JSON is pretty-printed with indentation for human readability.
func (s *Settings) Save() error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}

	// Add trailing newline for POSIX compliance
	data = append(data, '\n')

	return atomicWrite(s.filePath, data)
}

// Install loads settingsPath, registers command for HookEvents and saves
// the file when anything changed. Returns the events that were added.
func Install(settingsPath, command string) ([]string, error) {
	settings, err := Load(settingsPath)
	if err != nil {
		return nil, err
	}
	added := settings.AddHooks(command, HookEvents)
	if len(added) == 0 {
		return nil, nil
	}
	if err := settings.Save(); err != nil {
		return nil, fmt.Errorf("saving claude settings: %w", err)
	}
	return added, nil
}

// Uninstall removes command from HookEvents in settingsPath.
// Returns the events that were removed.
func Uninstall(settingsPath, command string) ([]string, error) {
	settings, err := Load(settingsPath)
	if err != nil {
		return nil, err
	}
	removed := settings.RemoveHooks(command, HookEvents)
	if len(removed) == 0 {
		return nil, nil
	}
	if err := settings.Save(); err != nil {
		return nil, fmt.Errorf("saving claude settings: %w", err)
	}
	return removed, nil
}

// atomicWrite writes data to a file atomically using temp file + rename.
func atomicWrite(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	tmpFile, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", filePath, err)
	}

	// Clear tmpPath so defer doesn't try to remove the final file
	tmpPath = ""
	return nil
}
