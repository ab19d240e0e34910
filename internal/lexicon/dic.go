package lexicon

import (
	"bufio"
	"strconv"
	"strings"
)

// parseDic reads a .dic file decoded to UTF-8 into stem -> flags. The
// optional first line is the entry count; it is only a capacity hint.
func parseDic(text string, af *affixFile) (map[string][]string, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	stems := make(map[string][]string)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				stems = make(map[string][]string, n)
				continue
			}
		}
		// Tab-led lines and '#' lines are comments.
		if line == "" || line[0] == '\t' || line[0] == '#' {
			continue
		}
		word, flags := splitEntry(line)
		if word == "" {
			continue
		}
		stems[word] = append(stems[word], af.splitFlags(flags)...)
	}
	return stems, sc.Err()
}

// splitEntry splits "word/FLAGS morph..." honouring "\/" inside the word.
func splitEntry(line string) (word, flags string) {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		line = line[:i]
	}
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line) && line[i+1] == '/':
			b.WriteByte('/')
			i++
		case c == '/':
			return b.String(), line[i+1:]
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), ""
}
