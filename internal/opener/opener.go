// Package opener launches the desktop's default viewer for a file.
package opener

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-ps"
)

// Opener opens a file in an external application.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// CommandOpener opens files by starting Command with Args followed by the path.
// The process is started and released; Open never waits for it to exit.
type CommandOpener struct {
	Command string
	Args    []string

	logger hclog.Logger
}

// New returns the CommandOpener for the current platform.
func New(logger hclog.Logger) *CommandOpener {
	o := platformOpener()
	o.logger = logger
	return o
}

// Open starts the viewer for path.
func (o *CommandOpener) Open(ctx context.Context, path string) error {
	logger := o.logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	bin, err := exec.LookPath(o.Command)
	if err != nil {
		return fmt.Errorf("no viewer available: %w", err)
	}

	args := append(append([]string{}, o.Args...), path)
	// Not CommandContext: the viewer must outlive this process.
	cmd := exec.Command(bin, args...) // #nosec G204 - Viewer command is fixed per platform
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", o.Command, err)
	}

	pid := cmd.Process.Pid
	if proc, err := ps.FindProcess(pid); err == nil && proc != nil {
		logger.Debug("viewer started", "pid", pid, "executable", proc.Executable(), "path", path)
	} else {
		logger.Debug("viewer started", "pid", pid, "path", path)
	}

	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release viewer process: %w", err)
	}
	return nil
}

// Func adapts a function to the Opener interface.
type Func func(ctx context.Context, path string) error

// Open calls f(ctx, path).
func (f Func) Open(ctx context.Context, path string) error {
	return f(ctx, path)
}
