// agentnotify - task completion notifications for coding-agent CLIs

package main

import (
	"os"

	"github.com/agentnotify/agentnotify/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
