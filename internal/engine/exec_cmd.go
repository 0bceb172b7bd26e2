package engine

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ExecCmdCtx builds a command. env is added to the inherited environment
// of the child only.
type ExecCmdCtx = func(ctx context.Context, env []string, name string, args ...string) Cmd

type Cmd interface {
	// Run feeds stdin to the command and returns what it wrote to stdout.
	Run(stdin io.Reader) ([]byte, error)
}

// ExecCommand is the ExecCmdCtx backed by os/exec.
func ExecCommand(ctx context.Context, env []string, name string, args ...string) Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.WaitDelay = waitDelay
	return &execCmd{cmd: cmd}
}

type execCmd struct {
	cmd *exec.Cmd
}

const (
	// stderrTailLines is how many trailing stderr lines are kept for error messages.
	stderrTailLines = 5

	// waitDelay bounds the wait for output pipes held open by children of
	// the engine after the engine itself exited or was killed.
	waitDelay = 500 * time.Millisecond
)

func (c *execCmd) Run(stdin io.Reader) ([]byte, error) {
	var stdout bytes.Buffer
	stderrR, stderrW := io.Pipe()
	c.cmd.Stdin = stdin
	c.cmd.Stdout = &stdout
	c.cmd.Stderr = stderrW

	slog.Debug("execute", "cmd", c.cmd.String())
	err := c.cmd.Start()
	if err != nil {
		return nil, err
	}

	var waitErr error
	var tail []string
	var g errgroup.Group
	g.Go(func() error {
		waitErr = c.cmd.Wait()
		return stderrW.Close()
	})
	g.Go(func() error {
		defer func() {
			_, _ = io.Copy(io.Discard, stderrR)
		}()
		scanner := bufio.NewScanner(stderrR)
		for scanner.Scan() {
			line := scanner.Text()
			slog.Debug("engine", "stderr", line)
			tail = append(tail, line)
			if len(tail) > stderrTailLines {
				tail = tail[1:]
			}
		}
		return scanner.Err()
	})
	readErr := g.Wait()

	// The engine succeeded, a background child still holds its output.
	if errors.Is(waitErr, exec.ErrWaitDelay) {
		waitErr = nil
	}
	if waitErr != nil {
		return nil, cmdError(c.cmd.Path, c.cmd.Args[1:], waitErr, tail)
	}
	if readErr != nil {
		return nil, readErr
	}
	return stdout.Bytes(), nil
}

func cmdError(cmd string, args []string, err error, stderr []string) error {
	var out string
	if len(stderr) > 0 {
		out = "\n" + strings.Join(stderr, "\n")
	}
	return fmt.Errorf("err: %s %s: %w%s", cmd, strings.Join(args, " "), err, out)
}
