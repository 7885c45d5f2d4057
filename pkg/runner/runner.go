package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/rs/zerolog"
)

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env holds KEY=VALUE pairs added to the inherited environment.
	Env []string
}

// String renders the command line with arguments quoted where needed.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Name))
	for _, arg := range c.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}

// Runner runs commands.
type Runner interface {
	// Run streams the command's output.
	Run(ctx context.Context, cmd Command) error
	// Output captures the command's stdout.
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// Exec runs commands as child processes.
type Exec struct {
	out    io.Writer
	logger zerolog.Logger
}

// NewExec returns an Exec that writes the combined output of its children
// to out. A nil out means os.Stdout.
func NewExec(out io.Writer) *Exec {
	if out == nil {
		out = os.Stdout
	}
	return &Exec{
		out:    out,
		logger: logging.GetLogger("runner"),
	}
}

// Run starts cmd and waits for it. A child that exits non-zero yields an
// ActionExecute error wrapping *errors.ExitError.
func (e *Exec) Run(ctx context.Context, cmd Command) error {
	if cmd.Name == "" {
		return errors.New(errors.ErrInvalidInput, "command name is required")
	}

	logging.LogCommand(e.logger, cmd.Dir, cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = e.out
	c.Stderr = e.out
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	return e.check(cmd, c.Run())
}

// Output runs cmd and returns its stdout. Stderr goes to the output writer.
func (e *Exec) Output(ctx context.Context, cmd Command) ([]byte, error) {
	if cmd.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	logging.LogCommand(e.logger, cmd.Dir, cmd.Name, cmd.Args)

	var stdout bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = e.out
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	if err := e.check(cmd, c.Run()); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (e *Exec) check(cmd Command, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		e.logger.Debug().
			Str("command", cmd.String()).
			Int("status", exitErr.ExitCode()).
			Msg("Command failed")
		return errors.Wrap(&errors.ExitError{Command: cmd.String(), Code: exitErr.ExitCode()},
			errors.ErrActionExecute, "command failed").
			WithDetail("dir", cmd.Dir)
	}

	return errors.Wrapf(err, errors.ErrActionExecute, "failed to run %s", cmd.Name).
		WithDetail("dir", cmd.Dir)
}

// Recorder is a Runner that records commands without executing them.
// Results are served from Script in order; once exhausted, commands succeed.
// Output returns Outputs[cmd.String()].
type Recorder struct {
	Commands []Command
	Script   []error
	Outputs  map[string]string
	// OnRun, when set, is called for every command before the scripted
	// result is returned.
	OnRun func(Command)
}

// Run records cmd.
func (r *Recorder) Run(ctx context.Context, cmd Command) error {
	r.Commands = append(r.Commands, cmd)
	if r.OnRun != nil {
		r.OnRun(cmd)
	}
	if len(r.Script) == 0 {
		return nil
	}
	err := r.Script[0]
	r.Script = r.Script[1:]
	return err
}

// Output records cmd and returns its canned output.
func (r *Recorder) Output(ctx context.Context, cmd Command) ([]byte, error) {
	if err := r.Run(ctx, cmd); err != nil {
		return nil, err
	}
	return []byte(r.Outputs[cmd.String()]), nil
}

// Lines returns the recorded commands as "dir: command line" strings.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = fmt.Sprintf("%s: %s", c.Dir, c.String())
	}
	return lines
}
