package daemonctl

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RedirectLogs points this process's stdout and stderr at path, appending,
// the Go equivalent of original_source/src/daemon.rs's dup2(log_fd, ...)
// call right after forking. The child calls this once, before starting
// any component, so every log.Logger writing to os.Stderr ends up in the
// log file without each component needing to know about it.
func RedirectLogs(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("daemonctl: open log file %s: %w", path, err)
	}

	fd := int(f.Fd())
	if err := unix.Dup2(fd, int(os.Stdout.Fd())); err != nil {
		f.Close()
		return fmt.Errorf("daemonctl: redirect stdout: %w", err)
	}
	if err := unix.Dup2(fd, int(os.Stderr.Fd())); err != nil {
		f.Close()
		return fmt.Errorf("daemonctl: redirect stderr: %w", err)
	}
	// fd has now been duplicated onto 1 and 2; the original descriptor can
	// be closed without affecting them.
	return f.Close()
}
