package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAddSumsByName(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("check", time.Millisecond)
		}()
	}
	wg.Wait()
	idx := tm.Begin("render")
	tm.End(idx, "pretty")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].Name != "check" || r.Phases[0].DurationMS != 10 {
		t.Errorf("check phase = %+v", r.Phases[0])
	}
	if r.Phases[1].Note != "pretty" {
		t.Errorf("note lost: %+v", r.Phases[1])
	}
	if s := tm.Summary(); !strings.Contains(s, "check") || !strings.Contains(s, "total") {
		t.Errorf("summary = %q", s)
	}
}

func TestTimerEndIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "x")
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Errorf("report = %+v", r)
	}
}
