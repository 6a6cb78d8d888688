// SPDX-License-Identifier: MPL-2.0

package pathfilter

import (
	"slices"
	"testing"
)

func TestRootsOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{name: "empty", paths: nil, want: []string{}},
		{name: "nested roots", paths: []string{"a", "a.b", "a.c", "a.c.d", "x"}, want: []string{"a", "x"}},
		{name: "sub path before root", paths: []string{"a.b", "a"}, want: []string{"a"}},
		{name: "root before sub path", paths: []string{"a", "a.b"}, want: []string{"a"}},
		{name: "raw string prefix", paths: []string{"foo", "foobar"}, want: []string{"foo"}},
		{name: "raw string prefix reversed", paths: []string{"foobar", "foo"}, want: []string{"foo"}},
		{name: "duplicates", paths: []string{"a", "a", "b", "b"}, want: []string{"a", "b"}},
		{name: "unrelated keeps order", paths: []string{"c", "a", "b"}, want: []string{"c", "a", "b"}},
		{
			name:  "replaced root moves to the end",
			paths: []string{"a.b", "x", "a"},
			want:  []string{"x", "a"},
		},
		{
			name:  "slash paths",
			paths: []string{"pkg/sub", "pkg", "other/deep/leaf"},
			want:  []string{"pkg", "other/deep/leaf"},
		},
		{
			name: "deep package tree",
			paths: []string{
				"pyvelocity",
				"pyvelocity.checks",
				"pyvelocity.configurations",
				"pyvelocity.configurations.files",
				"pyvelocity.configurations.files.sections",
				"pyvelocity.configurations.files.sections.pylint",
				"pyvelocity.configurations.tools",
				"pyvelocity.configurations.files.sections.pylint",
				"pyvelocity.configurations.files.sections",
				"pyvelocity.configurations.files",
				"pyvelocity.checks",
				"pyvelocity.configurations.tools",
				"pyvelocity.configurations",
			},
			want: []string{"pyvelocity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := RootsOnly(tt.paths)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RootsOnly(%q) = %q, want %q", tt.paths, got, tt.want)
			}
		})
	}
}

func TestRootsOnlyIdempotent(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{},
		{"a", "a.b", "a.c", "a.c.d", "x"},
		{"a.b", "a"},
		{"foo", "foobar", "bar", "ba"},
		{"x.y", "z", "x", "z.w", "q"},
	}

	for _, in := range inputs {
		once := RootsOnly(in)
		twice := RootsOnly(once)
		if !slices.Equal(once, twice) {
			t.Errorf("RootsOnly not idempotent for %q: once %q, twice %q", in, once, twice)
		}
	}
}

func TestRootsAddRemovesCoveredEntry(t *testing.T) {
	t.Parallel()

	r := NewRoots("pyvelocity.configurations")
	r.Add("pyvelocity")

	if got := r.List(); !slices.Equal(got, []string{"pyvelocity"}) {
		t.Errorf("expected [pyvelocity], got %q", got)
	}
}

func TestRootsListIsACopy(t *testing.T) {
	t.Parallel()

	r := NewRoots("a", "b")
	got := r.List()
	got[0] = "mutated"

	if r.List()[0] != "a" {
		t.Error("List() exposed internal state")
	}
}

func TestRootsZeroValue(t *testing.T) {
	t.Parallel()

	var r Roots
	r.Add("x.y")
	r.Add("x")
	if got := r.List(); !slices.Equal(got, []string{"x"}) {
		t.Errorf("expected [x], got %q", got)
	}
}

func TestRelate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, existing string
		want           relation
	}{
		{"foo.bar", "foo", covered},
		{"foo", "foo.bar", covers},
		{"foo", "bar", unrelated},
		{"foo", "foo", covered},
	}

	for _, tt := range tests {
		if got := relate(tt.path, tt.existing); got != tt.want {
			t.Errorf("relate(%q, %q) = %v, want %v", tt.path, tt.existing, got, tt.want)
		}
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	got := Unique([]string{"invokelint", "setup.py", "invokelint", "tests", "setup.py"})
	want := []string{"invokelint", "setup.py", "tests"}
	if !slices.Equal(got, want) {
		t.Errorf("Unique() = %q, want %q", got, want)
	}

	if got := Unique[string](nil); len(got) != 0 {
		t.Errorf("Unique(nil) = %q, want empty", got)
	}
}
