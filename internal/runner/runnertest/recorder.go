// SPDX-License-Identifier: MPL-2.0

// Package runnertest provides an in-memory Executor for tests of code built on
// package runner.
package runnertest

import (
	"context"
	"strings"
	"sync"

	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
)

type (
	// Recorder is an Executor that records every Request and answers with a
	// configured exit code instead of launching a process.
	Recorder struct {
		mu       sync.Mutex
		requests []runner.Request
		exits    map[string]runner.ExitCode
		prefixes []prefixExit
	}

	prefixExit struct {
		prefix string
		code   runner.ExitCode
	}
)

// NewRecorder creates a Recorder where every command succeeds.
func NewRecorder() *Recorder {
	return &Recorder{exits: map[string]runner.ExitCode{}}
}

// NewContext returns a runner.Context backed by rec with output hidden.
func NewContext(rec *Recorder, opts ...runner.Option) *runner.Context {
	base := []runner.Option{runner.WithOutput(nil, nil)}
	return runner.NewContext(context.Background(), rec, append(base, opts...)...)
}

// FailCommand makes the exact command exit with code.
func (r *Recorder) FailCommand(command string, code runner.ExitCode) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exits[command] = code
	return r
}

// FailPrefix makes every command starting with prefix exit with code.
func (r *Recorder) FailPrefix(prefix string, code runner.ExitCode) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefixExit{prefix: prefix, code: code})
	return r
}

// Name returns the executor name.
func (r *Recorder) Name() string { return "recorder" }

// Available always returns true.
func (r *Recorder) Available() bool { return true }

// Execute records req and returns the configured outcome.
func (r *Recorder) Execute(_ context.Context, req *runner.Request) (*runner.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, *req)
	return runner.NewExitCodeResult(req.Command, r.exitCode(req.Command)), nil
}

// exitCode returns the configured exit code for command, 0 when none matches.
func (r *Recorder) exitCode(command string) runner.ExitCode {
	if code, ok := r.exits[command]; ok {
		return code
	}
	for _, p := range r.prefixes {
		if strings.HasPrefix(command, p.prefix) {
			return p.code
		}
	}
	return 0
}

// Commands returns the recorded command strings in execution order.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.requests))
	for i, req := range r.requests {
		out[i] = req.Command
	}
	return out
}

// Requests returns copies of the recorded requests.
func (r *Recorder) Requests() []runner.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]runner.Request(nil), r.requests...)
}

// ResultCommands extracts the command strings of results.
func ResultCommands(results []*runner.Result) []string {
	out := make([]string, len(results))
	for i, res := range results {
		out[i] = res.Command
	}
	return out
}
