package lexicon

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ApplyPersonal reads a supplemental word list, one entry per line:
//
//	beseda          known word
//	*beseda         forbidden word
//	beseda/vzorec   known word inflected like vzorec
func (l *Lexicon) ApplyPersonal(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "*"):
			if w := line[1:]; w != "" {
				l.Forbid(w)
			}
		default:
			word, model, ok := strings.Cut(line, "/")
			if ok && model != "" {
				l.AddLike(word, model)
			} else {
				l.AddWord(word)
			}
		}
	}
	return sc.Err()
}

// ApplyPersonalFile applies path; a missing file is not an error.
func (l *Lexicon) ApplyPersonalFile(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return l.ApplyPersonal(f)
}
