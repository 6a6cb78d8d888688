// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/yukihiko-shinoda/invoke-lint/internal/capability"
	"github.com/yukihiko-shinoda/invoke-lint/internal/config"
	"github.com/yukihiko-shinoda/invoke-lint/internal/pathfilter"
	"github.com/yukihiko-shinoda/invoke-lint/internal/project"
	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
	"github.com/yukihiko-shinoda/invoke-lint/internal/runner/runnertest"
	"github.com/yukihiko-shinoda/invoke-lint/internal/tasks"
	"github.com/yukihiko-shinoda/invoke-lint/internal/testutil"
)

const (
	// sampleConfig is a representative invokelint.cue.
	sampleConfig = `
runtime: "virtual"
pty: false
ui: {
	verbose: true
	color_scheme: "dark"
}
targets: {
	packages_to_lint: ["tasks", "scripts"]
	modules_to_lint: ["setup", "tasks", "noxfile"]
	test_packages: ["tests", "integration"]
}
lint: {
	dodgy_ignore_paths: ["csvinput", "fixtures"]
	xenon_max: "B"
}
`

	// samplePyproject declares a src layout found through packages.find.
	samplePyproject = `
[project]
name = "benchmark"

[tool.setuptools.packages.find]
where = ["src"]
include = ["bench*"]
exclude = ["bench.tests*"]
`
)

// writeSrcProject creates a src-layout project with nested packages.
func writeSrcProject(b *testing.B) string {
	b.Helper()
	root := b.TempDir()
	files := map[string]string{
		"pyproject.toml":    samplePyproject,
		"setup.py":          "",
		"tasks.py":          "",
		"tests/__init__.py": "",
	}
	for i := range 10 {
		pkg := fmt.Sprintf("src/bench/sub%d", i)
		files[pkg+"/__init__.py"] = ""
		files[pkg+"/inner/__init__.py"] = ""
		files[pkg+"/module.py"] = ""
	}
	files["src/bench/__init__.py"] = ""
	files["src/bench/tests/__init__.py"] = ""
	testutil.WriteTree(b, root, files)
	return root
}

// BenchmarkConfigLoad benchmarks CUE schema validation and the Viper merge.
// This exercises the hot path in internal/config/config.go.
func BenchmarkConfigLoad(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, config.ProjectFileName)
	testutil.MustWriteFile(b, path, sampleConfig)

	provider := config.NewProvider()
	opts := config.LoadOptions{ConfigFilePath: path, ConfigDirPath: dir, ProjectDir: dir}

	b.ResetTimer()
	for b.Loop() {
		if _, err := provider.Load(b.Context(), opts); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkDiscoverFlat benchmarks flat-layout auto-discovery.
func BenchmarkDiscoverFlat(b *testing.B) {
	root := testutil.PythonProject(b)
	lists := project.DefaultLists()

	b.ResetTimer()
	for b.Loop() {
		if _, err := project.Discover(root, lists); err != nil {
			b.Fatalf("Discover failed: %v", err)
		}
	}
}

// BenchmarkDiscoverSrcFind benchmarks packages.find discovery in a src layout.
// This exercises the hot path in internal/project/setuptools.go.
func BenchmarkDiscoverSrcFind(b *testing.B) {
	root := writeSrcProject(b)
	lists := project.DefaultLists()

	b.ResetTimer()
	for b.Loop() {
		if _, err := project.Discover(root, lists); err != nil {
			b.Fatalf("Discover failed: %v", err)
		}
	}
}

// BenchmarkRootsOnly benchmarks collapsing sub-packages into their roots.
func BenchmarkRootsOnly(b *testing.B) {
	paths := make([]string, 0, 200)
	for i := range 20 {
		root := fmt.Sprintf("pkg%d", i)
		paths = append(paths, root)
		for j := range 9 {
			paths = append(paths, filepath.Join(root, fmt.Sprintf("sub%d", j)))
		}
	}

	b.ResetTimer()
	for b.Loop() {
		if got := pathfilter.RootsOnly(paths); len(got) != 20 {
			b.Fatalf("RootsOnly returned %d roots, want 20", len(got))
		}
	}
}

// BenchmarkJoinQuoted benchmarks shell quoting of lint targets.
func BenchmarkJoinQuoted(b *testing.B) {
	targets := []string{"invokelint", "setup.py", "tasks.py", "tests", "my package", "it's.py"}

	b.ResetTimer()
	for b.Loop() {
		_ = runner.JoinQuoted(targets)
	}
}

// BenchmarkExecutorNative benchmarks native shell execution.
// This exercises the hot path in internal/runner/native.go.
func BenchmarkExecutorNative(b *testing.B) {
	if runtime.GOOS == "windows" {
		b.Skip("skipping: commands are POSIX sh")
	}
	exec, err := runner.NewExecutor(runner.ExecutorTypeNative, "")
	if err != nil {
		b.Fatal(err)
	}
	c := runner.NewContext(b.Context(), exec, runner.WithOutput(io.Discard, io.Discard))

	b.ResetTimer()
	for b.Loop() {
		if _, err := c.Run("echo hello"); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkExecutorVirtual benchmarks mvdan/sh virtual shell execution.
// This exercises the hot path in internal/runner/virtual.go.
func BenchmarkExecutorVirtual(b *testing.B) {
	c := runner.NewContext(b.Context(), runner.NewVirtualExecutor(), runner.WithOutput(io.Discard, io.Discard))

	b.ResetTimer()
	for b.Loop() {
		if _, err := c.Run(`for f in a b c; do echo "$f"; done`); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkLintFastPipeline benchmarks the lint.fast sequence including
// formatting, with a recording executor in place of the tools.
func BenchmarkLintFastPipeline(b *testing.B) {
	root := testutil.PythonProject(b)
	targets, err := project.Discover(root, project.DefaultLists())
	if err != nil {
		b.Fatal(err)
	}
	t := tasks.New(targets, capability.Static("linux", tasks.FormatterTools...))

	b.ResetTimer()
	for b.Loop() {
		c := runnertest.NewContext(runnertest.NewRecorder(), runner.WithDir(root))
		if _, err := t.Fast(c, tasks.FastOptions{NoRuff: true}); err != nil {
			b.Fatalf("Fast failed: %v", err)
		}
	}
}
