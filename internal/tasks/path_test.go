// SPDX-License-Identifier: MPL-2.0

package tasks_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
	"github.com/yukihiko-shinoda/invoke-lint/internal/runner/runnertest"
)

func TestPathDebug(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var buf bytes.Buffer
	ctx := runnertest.NewContext(f.rec, runner.WithOutput(&buf, nil))

	results, err := f.tasks.PathDebug(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("PathDebug() should return no results, got %d", len(results))
	}
	if n := len(f.rec.Commands()); n != 0 {
		t.Errorf("PathDebug() should run no command, got %d", n)
	}

	var want strings.Builder
	if err := f.tasks.Targets().WriteDebug(&want); err != nil {
		t.Fatal(err)
	}
	if buf.String() != want.String() {
		t.Errorf("PathDebug() output =\n%s\nwant\n%s", buf.String(), want.String())
	}
}

func TestPathDebug_NoWriter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.tasks.PathDebug(f.ctx); err == nil {
		t.Error("expected an error without an output writer")
	}
}
