//go:build !unix

package session

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}
