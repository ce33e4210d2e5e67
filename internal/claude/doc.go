// Package claude registers agentnotify as a Claude Code hook.
// It edits the "hooks" section of a Claude Code settings.json file so the
// Notification, Stop and SubagentStop events pipe their payload to the
// notifier on stdin.
//
// The package supports:
//   - Loading settings files while preserving unknown fields
//   - Checking which hook events already run the notifier
//   - Adding and removing hook entries idempotently
//   - Atomic file writes to prevent corruption
package claude
