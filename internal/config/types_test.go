// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"maps"
	"testing"
)

func TestRuntimeMode_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode RuntimeMode
		want bool
	}{
		{RuntimeNative, true},
		{RuntimeVirtual, true},
		{"container", false},
		{"", false},
	}
	for _, tt := range tests {
		valid, errs := tt.mode.IsValid()
		if valid != tt.want {
			t.Errorf("RuntimeMode(%q).IsValid() = %v, want %v", tt.mode, valid, tt.want)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidConfigRuntimeMode) {
			t.Errorf("error should wrap ErrInvalidConfigRuntimeMode, got %v", errs[0])
		}
	}
}

func TestXenonGrade_IsValid(t *testing.T) {
	t.Parallel()

	for _, g := range []XenonGrade{"A", "C", "F"} {
		if valid, _ := g.IsValid(); !valid {
			t.Errorf("XenonGrade(%q) should be valid", g)
		}
	}
	for _, g := range []XenonGrade{"", "G", "a", "AB"} {
		valid, errs := g.IsValid()
		if valid {
			t.Errorf("XenonGrade(%q) should be invalid", g)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidXenonGrade) {
			t.Errorf("error should wrap ErrInvalidXenonGrade, got %v", errs[0])
		}
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Fatalf("default config should be valid, got %v", errs)
	}

	cfg := DefaultConfig()
	cfg.Runtime = "container"
	cfg.UI.ColorScheme = "blue"
	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}
	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(cfgErr.FieldErrors))
	}
	if !errors.Is(cfgErr.FieldErrors[1], ErrInvalidColorScheme) {
		t.Errorf("second field error should be a color scheme error, got %v", cfgErr.FieldErrors[1])
	}
}

func TestConfig_EnvVars(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Env = []string{"A=1", "EMPTY=", "URL=a=b", "A=2"}
	if valid, errs := cfg.IsValid(); !valid {
		t.Fatalf("expected valid env entries, got %v", errs)
	}

	got := cfg.EnvVars()
	want := map[string]string{"A": "2", "EMPTY": "", "URL": "a=b"}
	if !maps.Equal(got, want) {
		t.Errorf("EnvVars() = %v, want %v", got, want)
	}

	for _, entry := range []string{"NOVALUE", "=1"} {
		cfg.Env = []string{entry}
		valid, errs := cfg.IsValid()
		if valid {
			t.Errorf("entry %q should be invalid", entry)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidEnvEntry) {
			t.Errorf("entry %q: expected ErrInvalidEnvEntry, got %v", entry, errs[0])
		}
	}
}

func TestTargetsConfig_Lists(t *testing.T) {
	t.Parallel()

	lists := TargetsConfig{
		PackagesToLint: []string{"scripts"},
		ModulesToLint:  []string{"setup"},
		TestPackages:   []string{"tests"},
	}.Lists()
	if lists.PackagesToLint[0] != "scripts" || lists.ModulesToLint[0] != "setup" || lists.TestPackages[0] != "tests" {
		t.Errorf("Lists() = %+v", lists)
	}
}
