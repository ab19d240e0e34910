// Package userdict persists the words a user accepted as correct.
package userdict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var log = commonlog.GetLogger("lektor.userdict")

// Store is a JSON array of words in one file. A missing or malformed file
// reads as empty.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath is <user config dir>/lektor/userdict.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lektor", "userdict.json"), nil
}

// Open returns a store backed by path. The file is created on first write.
func Open(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Words returns the stored words in insertion order.
func (s *Store) Words() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// List returns the words in Slovenian alphabetical order.
func (s *Store) List() []string {
	words := s.Words()
	collate.New(language.Slovenian).SortStrings(words)
	return words
}

// Add stores word. It reports false when the word was already there.
func (s *Store) Add(word string) (bool, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return false, errors.New("empty word")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	words := s.read()
	if slices.Contains(words, word) {
		return false, nil
	}
	return true, s.write(append(words, word))
}

// Remove deletes word. It reports false when the word was not stored.
// The spelling provider must be reset afterwards: a removed word may
// already be part of a loaded lexicon.
func (s *Store) Remove(word string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	words := s.read()
	i := slices.Index(words, word)
	if i < 0 {
		return false, nil
	}
	return true, s.write(slices.Delete(words, i, i+1))
}

func (s *Store) read() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warningf("user dictionary %s: %v", s.path, err)
		}
		return nil
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		log.Warningf("user dictionary %s is malformed, ignoring it: %v", s.path, err)
		return nil
	}
	return slices.DeleteFunc(words, func(w string) bool { return strings.TrimSpace(w) == "" })
}

func (s *Store) write(words []string) error {
	if words == nil {
		words = []string{}
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "userdict-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save user dictionary: %w", err)
	}
	return nil
}
