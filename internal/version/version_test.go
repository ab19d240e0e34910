package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	tests := map[string]string{
		"1.2.3":                "1.2.3",
		"0.1.0-dev":            "0.1.0-dev",
		"1.2.3-rc.1+build.123": "1.2.3-rc.1+build.123",
		"nightly":              "nightly",
	}
	for in, want := range tests {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInfo(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if s := Info(); strings.Contains(s, "commit:") || !strings.Contains(s, "go:") {
		t.Errorf("Info without build data = %q", s)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	s := Info()
	for _, want := range []string{"commit: abc123", "built:  2024-01-15T10:30:00Z"} {
		if !strings.Contains(s, want) {
			t.Errorf("Info lacks %q: %q", want, s)
		}
	}
}
