package launch

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

// ResolveSocketPath picks the tmux socket: the explicit value, then the
// server of the tmux client we run inside, then the default socket.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func tmuxCommand(socketFlag, command string) (*exec.Cmd, error) {
	socket, err := ResolveSocketPath(socketFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve tmux socket: %w", err)
	}
	args := append(baseArgs(socket), "new-window", command)
	return exec.Command("tmux", args...), nil
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return nil
	}
	return []string{"-S", socketPath}
}
