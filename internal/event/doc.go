// Package event normalizes the upstream encodings agentnotify accepts into a
// single Event record.
//
// Three sources are supported:
//
//   - hook-json: a Claude Code hook payload piped on stdin (Notification,
//     Stop and SubagentStop hooks). Stop events recover the task summary
//     from the session transcript.
//   - codex-json: the JSON blob Codex CLI passes as the last argument of its
//     notify program. Only agent-turn-complete events are handled; anything
//     else yields ErrIgnored.
//   - cli-text: free text and audio cue selection from command-line flags.
//
// Malformed input never aborts an invocation: callers log the error and fall
// back to the flag source.
package event
