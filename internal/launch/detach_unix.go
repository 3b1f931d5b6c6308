//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// detach starts cmd in its own session so it outlives the launcher and its
// terminal. Unset std streams are connected to the null device by os/exec.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
