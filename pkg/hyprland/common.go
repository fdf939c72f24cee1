package hyprland

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var ErrNotRunning = errors.New("hyprland might not be running")

const commandSocket = ".socket.sock"

// getSocketPath finds the command socket of the running instance. Newer
// Hyprland versions keep it under $XDG_RUNTIME_DIR, older ones under /tmp.
func getSocketPath() (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	candidates := []string{
		filepath.Join(xdg.RuntimeDir, "hypr", signature, commandSocket),
		filepath.Join("/tmp/hypr", signature, commandSocket),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no socket for instance %q, %w", signature, ErrNotRunning)
}
