package source

import "testing"

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{Start: 0, End: 4}, Span{Start: 5, End: 9}, false},
		{"touching", Span{Start: 0, End: 4}, Span{Start: 4, End: 9}, false},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 3, End: 4}, true},
		{"partial", Span{Start: 2, End: 6}, Span{Start: 5, End: 9}, true},
		{"other file", Span{File: 1, Start: 0, End: 9}, Span{File: 2, Start: 0, End: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("overlap must be symmetric")
			}
		})
	}
}

func TestSpanText(t *testing.T) {
	text := "s Markom"
	if got := SpanOf(0, 0, 8).Text(text); got != text {
		t.Errorf("Text = %q", got)
	}
	if got := SpanOf(0, 2, 20).Text(text); got != "" {
		t.Errorf("out of range Text = %q, want empty", got)
	}
	cover := SpanOf(0, 2, 4).Cover(SpanOf(0, 0, 3))
	if cover.Start != 0 || cover.End != 4 {
		t.Errorf("Cover = %v", cover)
	}
}
