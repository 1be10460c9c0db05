// cmd/codsim/main.go
package main

import (
	cmd "github.com/mwiater/codsim/internal/cli"
	"github.com/mwiater/codsim/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	closeLogging   = logging.Close
	executeCmd     = cmd.Execute
)

// main starts the codsim CLI by delegating to the cobra root command.
func main() {
	defer func() { _ = closeLogging() }()
	setVersionInfo(version, commit, date)
	executeCmd()
}
