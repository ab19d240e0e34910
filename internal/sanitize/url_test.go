package sanitize

import (
	"strings"
	"testing"

	"lektor/internal/source"
)

func TestBlankURLs(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		removed []string
	}{
		{"none", "Dober dan, Marko.", nil},
		{"https", "Glej https://primer.si/a,b?x=1 danes", []string{"https://primer.si/a,b?x=1"}},
		{"www upper case", "Obišči WWW.Gov.si.", []string{"WWW.Gov.si."}},
		{"two", "http://a.si in www.b.si", []string{"http://a.si", "www.b.si"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := BlankURLs(tt.in)
			if len(res.Text) != len(tt.in) {
				t.Fatalf("length changed: %d -> %d", len(tt.in), len(res.Text))
			}
			got := res.Removed()
			if len(got) != len(tt.removed) {
				t.Fatalf("removed %v, want %v", got, tt.removed)
			}
			for i := range got {
				if got[i] != tt.removed[i] {
					t.Errorf("removed[%d] = %q, want %q", i, got[i], tt.removed[i])
				}
				if strings.Contains(res.Text, got[i]) {
					t.Errorf("URL %q still present in %q", got[i], res.Text)
				}
			}
		})
	}
}

func TestTouches(t *testing.T) {
	res := BlankURLs("ab www.x.si cd")
	if !res.Touches(source.SpanOf(0, 0, 4)) {
		t.Errorf("span reaching into the URL must touch it")
	}
	if res.Touches(source.SpanOf(0, 12, 14)) {
		t.Errorf("span after the URL must not touch it")
	}
}
