package provider

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/atomicstack/integration-selector/internal/backend"
	"github.com/atomicstack/integration-selector/internal/selector"
)

// Environment variables passed to dynamic option commands.
const (
	EnvTerm    = "INTEGRATION_SELECTOR_TERM"
	EnvPage    = "INTEGRATION_SELECTOR_PAGE"
	EnvPerPage = "INTEGRATION_SELECTOR_PER_PAGE"
)

// termPlaceholder is replaced by the search term inside command arguments.
const termPlaceholder = "{term}"

// Command runs an external program for every query and parses its stdout
// with ParseOptions. The command line is split with POSIX shell rules; no
// shell is involved.
type Command struct {
	argv     []string
	path     string
	throttle *backend.Throttle
}

// NewCommand prepares a command provider. interval spaces successive runs.
func NewCommand(cmdline, path string, interval time.Duration) (*Command, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("splitting command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("command produced empty argv")
	}
	return &Command{argv: argv, path: path, throttle: backend.NewThrottle(interval)}, nil
}

func (c *Command) Fetch(ctx context.Context, q selector.Query) (selector.Page, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return selector.Page{}, err
	}
	args := make([]string, len(c.argv)-1)
	for i, arg := range c.argv[1:] {
		args[i] = strings.ReplaceAll(arg, termPlaceholder, q.Term)
	}
	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	cmd.Env = append(os.Environ(),
		EnvTerm+"="+q.Term,
		EnvPage+"="+strconv.Itoa(q.Page),
		EnvPerPage+"="+strconv.Itoa(q.PerPage),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return selector.Page{}, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return selector.Page{}, fmt.Errorf("run %s: %w: %s", c.argv[0], err, msg)
		}
		return selector.Page{}, fmt.Errorf("run %s: %w", c.argv[0], err)
	}
	return ParseOptions(stdout.Bytes(), c.path)
}
