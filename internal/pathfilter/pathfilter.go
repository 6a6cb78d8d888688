// SPDX-License-Identifier: MPL-2.0

package pathfilter

import "strings"

type relation int

const (
	unrelated relation = iota
	// covered means the incoming path already has a root in the accumulator.
	covered
	// covers means the incoming path is a broader root of an accumulated entry.
	covers
)

// Roots accumulates root paths. The zero value is ready to use.
type Roots struct {
	paths []string
}

// NewRoots returns a Roots seeded with paths, applied in order.
func NewRoots(paths ...string) *Roots {
	r := &Roots{}
	for _, p := range paths {
		r.Add(p)
	}
	return r
}

// Add folds path into the accumulator.
//
// The scan stops at the first related entry: a covering entry discards path,
// a covered entry is removed and path is appended. Only that first covered
// entry is removed.
func (r *Roots) Add(path string) {
	for i, existing := range r.paths {
		switch relate(path, existing) {
		case covered:
			return
		case covers:
			r.paths = append(r.paths[:i], r.paths[i+1:]...)
			r.paths = append(r.paths, path)
			return
		case unrelated:
		}
	}
	r.paths = append(r.paths, path)
}

// List returns a copy of the accumulated roots in order of survival.
func (r *Roots) List() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// RootsOnly returns only the top-level entries of paths.
func RootsOnly(paths []string) []string {
	return NewRoots(paths...).List()
}

func relate(path, existing string) relation {
	if strings.HasPrefix(path, existing) {
		return covered
	}
	if strings.HasPrefix(existing, path) {
		return covers
	}
	return unrelated
}

// Unique drops exact duplicates, keeping the first occurrence of each value.
func Unique[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
