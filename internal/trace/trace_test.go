package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeRun, false},
		{LevelError, ScopeRun, false},
		{LevelFile, ScopeFile, true},
		{LevelFile, ScopeChecker, false},
		{LevelChecker, ScopeChecker, true},
		{LevelChecker, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeRun, "check")
	_, checker := Start(ctx, ScopeChecker, "punctuation")
	checker.WithExtra("issues", "2").End("")
	run.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 events, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "  → punctuation") {
		t.Errorf("child span not indented: %q", lines[1])
	}
	if !strings.Contains(lines[2], "{issues=2}") {
		t.Errorf("extra missing: %q", lines[2])
	}
	if !strings.Contains(lines[3], "← check (done)") {
		t.Errorf("root end missing detail: %q", lines[3])
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeRule, Name: name})
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestDisabledTracerIsFree(t *testing.T) {
	ctx, sp := Start(context.Background(), ScopeRun, "x")
	if sp.ID() != 0 || CurrentSpan(ctx) != 0 {
		t.Errorf("nop tracer must not allocate span ids")
	}
	if d := sp.End(""); d != 0 {
		t.Errorf("nop span duration = %v", d)
	}
}
