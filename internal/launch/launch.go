// Package launch executes the command the user confirmed, either as a
// detached process or in a new tmux window.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	"github.com/atomicstack/runpop/internal/logging/events"
)

// ErrEmptyCommand is returned when there is nothing to run.
var ErrEmptyCommand = errors.New("launch: empty command")

// Options selects how the command is started.
type Options struct {
	Tmux       bool
	SocketPath string
}

var (
	startCommand = func(cmd *exec.Cmd) error {
		if err := cmd.Start(); err != nil {
			return err
		}
		return cmd.Process.Release()
	}
	runTmux = func(cmd *exec.Cmd) error {
		out, err := cmd.CombinedOutput()
		if err != nil {
			if msg := strings.TrimSpace(string(out)); msg != "" {
				return fmt.Errorf("%w: %s", err, msg)
			}
			return err
		}
		return nil
	}
)

// Run splits command into argv and starts it without waiting for it to
// finish.
func Run(ctx context.Context, command string, opts Options) error {
	argv, err := Split(command)
	if err != nil {
		events.Launch.Error(err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.Tmux {
		cmd, err := tmuxCommand(opts.SocketPath, command)
		if err != nil {
			events.Launch.Error(err)
			return err
		}
		events.Launch.Start("tmux", cmd.Args)
		if err := runTmux(cmd); err != nil {
			err = fmt.Errorf("tmux new-window: %w", err)
			events.Launch.Error(err)
			return err
		}
		return nil
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	detach(cmd)
	events.Launch.Start("direct", cmd.Args)
	if err := startCommand(cmd); err != nil {
		err = fmt.Errorf("start %s: %w", argv[0], err)
		events.Launch.Error(err)
		return err
	}
	return nil
}

// Split turns command into argv using shell quoting rules.
func Split(command string) ([]string, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}
