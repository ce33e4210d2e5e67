// Package git resolves repository metadata used to label notifications.
// It wraps the git CLI; callers bound every call with a context.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// DefaultRemote is the remote queried for the repository name.
const DefaultRemote = "origin"

// RemoteURL returns the URL of remote for the repository containing dir.
func RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", remote)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git remote get-url %s: %w", remote, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// repoNamePattern captures the last path segment of a remote URL, minus .git.
var repoNamePattern = regexp.MustCompile(`[/:]([^/:]+?)(\.git)?/?$`)

// RepoName extracts the repository name from a remote URL.
// Works for https, ssh and scp-like (git@host:owner/repo.git) forms.
// Returns "" when no name can be found.
func RepoName(remoteURL string) string {
	m := repoNamePattern.FindStringSubmatch(strings.TrimSpace(remoteURL))
	if m == nil {
		return ""
	}
	return m[1]
}
