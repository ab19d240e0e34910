package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// flagMode is the FLAG directive: how flag strings are split.
type flagMode uint8

const (
	flagChar flagMode = iota // one character per flag (default)
	flagLong                 // two characters per flag
	flagNum                  // comma separated numbers
	flagUTF8                 // one rune per flag
)

// affix is one PFX or SFX entry.
type affix struct {
	flag   string
	strip  string
	add    string
	cont   []string // continuation flags on the affixed form
	cond   *regexp.Regexp
	cross  bool
	suffix bool
}

// affixFile is the parsed .aff content the lexicon needs.
type affixFile struct {
	encoding  string
	flags     flagMode
	try       string
	rep       [][2]string
	prefixes  []*affix
	suffixes  []*affix
	needAffix string
	forbidden string
}

// decoderFor maps a SET value to a decoder. Unknown names are an error;
// an empty name means UTF-8.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF-8", "UTF8":
		return unicode.UTF8.NewDecoder(), nil
	case "ISO8859-1", "ISO-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "ISO8859-2", "ISO-8859-2":
		return charmap.ISO8859_2.NewDecoder(), nil
	case "ISO8859-15", "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder(), nil
	case "CP1250", "WINDOWS-1250", "MICROSOFT-CP1250":
		return charmap.Windows1250.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported SET %q", name)
	}
}

// sniffEncoding finds the SET directive without decoding the file; the
// directive itself is always ASCII.
func sniffEncoding(raw []byte) string {
	for _, line := range bytes.Split(raw, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("SET ")) || bytes.HasPrefix(line, []byte("SET\t")) {
			return string(bytes.TrimSpace(line[3:]))
		}
	}
	return ""
}

// decode converts raw dictionary bytes to UTF-8.
func decode(raw []byte, enc string) (string, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return "", err
	}
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(out), "\ufeff"), nil
}

// parseAff reads an .aff file already decoded to UTF-8.
func parseAff(text string) (*affixFile, error) {
	af := &affixFile{}
	// header tracks the last PFX/SFX header so entries can inherit cross.
	type header struct {
		cross bool
		left  int
	}
	headers := map[string]*header{}
	conds := map[string]*regexp.Regexp{}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "SET":
			if len(fields) > 1 {
				af.encoding = fields[1]
			}
		case "FLAG":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: FLAG without value", lineNo)
			}
			switch strings.ToLower(fields[1]) {
			case "long":
				af.flags = flagLong
			case "num":
				af.flags = flagNum
			case "utf-8", "utf8":
				af.flags = flagUTF8
			default:
				return nil, fmt.Errorf("line %d: unknown FLAG %q", lineNo, fields[1])
			}
		case "TRY":
			if len(fields) > 1 {
				af.try = fields[1]
			}
		case "NEEDAFFIX":
			if len(fields) > 1 {
				af.needAffix = fields[1]
			}
		case "FORBIDDENWORD":
			if len(fields) > 1 {
				af.forbidden = fields[1]
			}
		case "REP":
			// "REP 12" is the count line; entries carry two values.
			if len(fields) >= 3 {
				af.rep = append(af.rep, [2]string{fields[1], fields[2]})
			}
		case "PFX", "SFX":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: short %s line", lineNo, fields[0])
			}
			key := fields[0] + " " + fields[1]
			h := headers[key]
			if h == nil || h.left == 0 {
				// Header: "SFX A Y 3".
				n, err := strconv.Atoi(fields[3])
				if err != nil {
					return nil, fmt.Errorf("line %d: bad %s count: %w", lineNo, fields[0], err)
				}
				headers[key] = &header{cross: fields[2] == "Y", left: n}
				continue
			}
			h.left--
			ax, err := af.parseAffix(fields, h.cross, conds)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if ax.suffix {
				af.suffixes = append(af.suffixes, ax)
			} else {
				af.prefixes = append(af.prefixes, ax)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return af, nil
}

// parseAffix reads "SFX A strip add[/cont] cond".
func (af *affixFile) parseAffix(fields []string, cross bool, conds map[string]*regexp.Regexp) (*affix, error) {
	ax := &affix{
		flag:   fields[1],
		cross:  cross,
		suffix: fields[0] == "SFX",
	}
	if fields[2] != "0" {
		ax.strip = fields[2]
	}
	add := fields[3]
	if i := strings.IndexByte(add, '/'); i >= 0 {
		ax.cont = af.splitFlags(add[i+1:])
		add = add[:i]
	}
	if add != "0" {
		ax.add = add
	}
	cond := "."
	if len(fields) > 4 {
		cond = fields[4]
	}
	key := fields[0] + cond
	re, ok := conds[key]
	if !ok {
		var err error
		re, err = compileCondition(cond, ax.suffix)
		if err != nil {
			return nil, err
		}
		conds[key] = re
	}
	ax.cond = re
	return ax, nil
}

// compileCondition turns a Hunspell condition ("[^aeiou]y", ".") into a
// regexp anchored at the end (suffix) or start (prefix) of the stem.
func compileCondition(cond string, suffix bool) (*regexp.Regexp, error) {
	var b strings.Builder
	inClass := false
	for _, r := range cond {
		switch {
		case r == '[' && !inClass:
			inClass = true
			b.WriteRune(r)
		case r == ']' && inClass:
			inClass = false
			b.WriteRune(r)
		case r == '^' && inClass:
			b.WriteRune(r)
		case r == '.' && !inClass:
			b.WriteRune(r)
		case r == '-' && inClass:
			b.WriteString(`\-`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if inClass {
		return nil, fmt.Errorf("unterminated condition %q", cond)
	}
	if suffix {
		return regexp.Compile(`(?:` + b.String() + `)$`)
	}
	return regexp.Compile(`^(?:` + b.String() + `)`)
}

// splitFlags splits a flag field according to the FLAG mode.
func (af *affixFile) splitFlags(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	switch af.flags {
	case flagLong:
		rs := []rune(s)
		for i := 0; i+1 < len(rs); i += 2 {
			out = append(out, string(rs[i:i+2]))
		}
	case flagNum:
		for _, f := range strings.Split(s, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	case flagUTF8:
		for _, r := range s {
			out = append(out, string(r))
		}
	default:
		for len(s) > 0 {
			_, size := utf8.DecodeRuneInString(s)
			out = append(out, s[:size])
			s = s[size:]
		}
	}
	return out
}

// stripComment blanks comment lines.
func stripComment(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return ""
	}
	return line
}
