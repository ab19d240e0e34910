package check

import "lektor/internal/token"

// seenSet is the per-run dedup set of one checker.
type seenSet struct {
	fold bool
	keys map[string]struct{}
}

func newSeen(fold bool) *seenSet {
	return &seenSet{fold: fold, keys: make(map[string]struct{})}
}

func (s *seenSet) key(k string) string {
	if s.fold {
		return token.Fold(k)
	}
	return k
}

// has reports whether k was already recorded.
func (s *seenSet) has(k string) bool {
	_, ok := s.keys[s.key(k)]
	return ok
}

// add records k and reports whether it was new.
func (s *seenSet) add(k string) bool {
	k = s.key(k)
	if _, ok := s.keys[k]; ok {
		return false
	}
	s.keys[k] = struct{}{}
	return true
}
