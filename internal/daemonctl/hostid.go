package daemonctl

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"clipsync/internal/clock"
)

// EnsureHostID reads the HostId recorded at path, generating and
// persisting a fresh one via google/uuid on first boot if the file does
// not exist yet (spec §3 "Lifecycle": HostId must be stable across
// restarts but the core never mints it itself).
func EnsureHostID(path string) (clock.HostID, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if id != "" {
			return clock.HostID(id), nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("daemonctl: read host id %s: %w", path, err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id), 0o644); err != nil {
		return "", fmt.Errorf("daemonctl: write host id %s: %w", path, err)
	}
	return clock.HostID(id), nil
}
