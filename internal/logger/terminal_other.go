//go:build !linux && !darwin && !windows

package logger

// isTerminal disables color on platforms without a terminal probe.
func isTerminal(uintptr) bool {
	return false
}
