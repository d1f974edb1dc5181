//go:build unix

package session

import (
	"os"

	"golang.org/x/sys/unix"
)

// shutdownSignals are relayed to the handler as interrupts
var shutdownSignals = []os.Signal{unix.SIGINT, unix.SIGTERM}
