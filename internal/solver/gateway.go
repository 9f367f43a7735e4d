package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Gateway performs one request/response exchange with a solver.
type Gateway interface {
	Solve(ctx context.Context, req Request) (*Response, error)
}

// Config describes how to launch the solver process.
type Config struct {
	Command string
	Args    []string
	Timeout time.Duration
	// Env is appended to the current environment of the child.
	Env []string
}

// DefaultTimeout bounds every solver call.
const DefaultTimeout = 30 * time.Second

// DefaultConfig returns a Config running "rota-solver" from PATH.
func DefaultConfig() Config {
	return Config{
		Command: "rota-solver",
		Timeout: DefaultTimeout,
	}
}

// ProcessGateway runs the solver as a child process per call, writing the
// request to its stdin and reading the response from its stdout.
type ProcessGateway struct {
	cfg      Config
	observer Observer
}

// NewProcessGateway creates a Gateway backed by an external process.
func NewProcessGateway(cfg Config, observer Observer) *ProcessGateway {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &ProcessGateway{cfg: cfg, observer: observer}
}

func (g *ProcessGateway) Solve(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := g.run(ctx, req)

	event := CallEvent{
		Doctors:   len(req.Doctors),
		Days:      len(req.Days),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	if resp != nil {
		event.Feasible = resp.Feasible
	}
	g.observer.OnCallComplete(event)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (g *ProcessGateway) run(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding solver request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, g.cfg.Command, g.cfg.Args...)
	if len(g.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), g.cfg.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Grandchildren holding the pipes open must not outlive the deadline.
	cmd.WaitDelay = time.Second

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, g.cfg.Timeout)
		}
		return nil, fmt.Errorf("solver call cancelled: %w", ctxErr)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return nil, &ProcessError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String(), Err: runErr}
		}
		return nil, &ProcessError{ExitCode: -1, Stderr: stderr.String(), Err: runErr}
	}

	resp, err := DecodeResponse(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	if err := CheckResponse(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
