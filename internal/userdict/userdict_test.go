package userdict

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestAddRemoveList(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "sub", "userdict.json"))
	if got := s.Words(); len(got) != 0 {
		t.Fatalf("new store not empty: %v", got)
	}
	for _, w := range []string{"žaba", "cesta", "čebela", "zebra", "Ana"} {
		added, err := s.Add(w)
		if err != nil || !added {
			t.Fatalf("Add(%q) = %v, %v", w, added, err)
		}
	}
	if added, err := s.Add("cesta"); err != nil || added {
		t.Errorf("duplicate Add = %v, %v", added, err)
	}
	if _, err := s.Add("   "); err == nil {
		t.Errorf("blank word accepted")
	}

	want := []string{"Ana", "cesta", "čebela", "zebra", "žaba"}
	if got := s.List(); !slices.Equal(got, want) {
		t.Errorf("List = %v, want %v", got, want)
	}

	removed, err := s.Remove("zebra")
	if err != nil || !removed {
		t.Fatalf("Remove = %v, %v", removed, err)
	}
	if removed, _ := s.Remove("zebra"); removed {
		t.Errorf("second Remove reported success")
	}
	if got := Open(s.Path()).Words(); !slices.Equal(got, []string{"žaba", "cesta", "čebela", "Ana"}) {
		t.Errorf("persisted words = %v", got)
	}
}

func TestMalformedFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdict.json")
	if err := os.WriteFile(path, []byte(`{"not": "a list"`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Open(path)
	if got := s.Words(); len(got) != 0 {
		t.Errorf("Words = %v, want empty", got)
	}
	if _, err := s.Add("beseda"); err != nil {
		t.Fatal(err)
	}
	if got := s.Words(); !slices.Equal(got, []string{"beseda"}) {
		t.Errorf("Words after Add = %v", got)
	}
}
