// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestVirtualExecutor_ExitStatus(t *testing.T) {
	t.Parallel()

	c := NewContext(context.Background(), NewVirtualExecutor(), WithOutput(nil, nil))

	_, err := c.Run("exit 3")
	cfe, ok := AsCommandFailed(err)
	if !ok {
		t.Fatalf("expected CommandFailedError, got %v", err)
	}
	if cfe.ExitCode() != 3 {
		t.Errorf("exit code = %d, want 3", cfe.ExitCode())
	}
}

func TestVirtualExecutor_CapturesBuiltinOutput(t *testing.T) {
	t.Parallel()

	c := NewContext(context.Background(), NewVirtualExecutor(),
		WithOutput(nil, nil), WithEnvVars(map[string]string{"GREETING": "hi"}))

	result, err := c.Run(`echo "$GREETING"; echo err >&2`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stdout != "hi\n" {
		t.Errorf("stdout = %q", result.Stdout)
	}
	if result.Stderr != "err\n" {
		t.Errorf("stderr = %q", result.Stderr)
	}
}

func TestVirtualExecutor_Dir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := NewContext(context.Background(), NewVirtualExecutor(), WithOutput(nil, nil), WithDir(dir))

	if _, err := c.Run("echo created > out.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("expected file in context dir: %v", err)
	}
	if string(data) != "created\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestVirtualExecutor_SyntaxError(t *testing.T) {
	t.Parallel()

	e := NewVirtualExecutor()
	if err := e.Validate("echo 'unterminated"); err == nil {
		t.Error("expected syntax error")
	}

	c := NewContext(context.Background(), e, WithOutput(nil, nil))
	_, err := c.Run("if then fi")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrCommandFailed) {
		t.Error("syntax errors must not be reported as command failures")
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"invokelint", "invokelint"},
		{"setup.py", "setup.py"},
		{"src/pkg", "src/pkg"},
		{"with space", "'with space'"},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := JoinQuoted([]string{"a", "b c", "d"}); got != "a 'b c' d" {
		t.Errorf("JoinQuoted = %q", got)
	}
}

func TestNewExecutor(t *testing.T) {
	t.Parallel()

	for _, typ := range []ExecutorType{"", ExecutorTypeNative, ExecutorTypeVirtual} {
		e, err := NewExecutor(typ, "")
		if err != nil {
			t.Fatalf("NewExecutor(%q) error: %v", typ, err)
		}
		if typ == ExecutorTypeVirtual && e.Name() != "virtual" {
			t.Errorf("NewExecutor(virtual).Name() = %q", e.Name())
		}
	}

	_, err := NewExecutor("container", "")
	if !errors.Is(err, ErrUnknownExecutor) {
		t.Errorf("expected ErrUnknownExecutor, got %v", err)
	}
}
