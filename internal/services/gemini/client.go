package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"zenfeeds/internal/services"
)

const stderrSnippetLimit = 400

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout string, stderr string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithBackOff overrides the retry schedule between attempts.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(c *Client) {
		if factory != nil {
			c.newBackOff = factory
		}
	}
}

// Client runs the gemini CLI.
type Client struct {
	binary     string
	timeout    time.Duration
	attempts   int
	exec       Executor
	newBackOff func() backoff.BackOff
}

// New constructs a gemini client. attempts below one are treated as one.
func New(binary string, timeoutSeconds, attempts int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("gemini binary required")
	}
	if attempts < 1 {
		attempts = 1
	}
	client := &Client{
		binary:   binary,
		timeout:  time.Duration(timeoutSeconds) * time.Second,
		attempts: attempts,
		exec:     commandExecutor{},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 2 * time.Second
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the configured executable.
func (c *Client) Binary() string {
	return c.binary
}

// Complete runs the tool with prompt as its single argument and returns the
// trimmed stdout.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("gemini complete: prompt required")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(c.newBackOff(), uint64(c.attempts-1)),
		ctx,
	)
	return backoff.RetryWithData(func() (string, error) {
		out, err := c.runOnce(ctx, prompt)
		if err != nil && ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return out, err
	}, policy)
}

func (c *Client) runOnce(ctx context.Context, prompt string) (string, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	stdout, stderr, err := c.exec.Run(runCtx, c.binary, []string{prompt})
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "gemini", "complete", fmt.Sprintf("no result after %s", c.timeout), err)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		message := "command failed"
		if snippet := snippet(stderr); snippet != "" {
			message = fmt.Sprintf("command failed: %s", snippet)
		}
		return "", services.Wrap(services.ErrExternalTool, "gemini", "complete", message, err)
	}

	out := strings.TrimSpace(stdout)
	if out == "" {
		return "", services.Wrap(services.ErrExternalTool, "gemini", "complete", "empty output", nil)
	}
	return out, nil
}

func snippet(stderr string) string {
	clean := strings.Join(strings.Fields(stderr), " ")
	runes := []rune(clean)
	if len(runes) > stderrSnippetLimit {
		return string(runes[:stderrSnippetLimit]) + "..."
	}
	return clean
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
