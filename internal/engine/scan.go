package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// SyntaxError reports unrecoverable malformed input. Truncation is never a
// syntax error.
type SyntaxError struct {
	Offset int64 // byte offset into the input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

// ScanOptions configures the tolerant scanner.
type ScanOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	IssueSink   func(SimpleIssue)
}

// Scan decodes text that may be cut off at any byte. The returned root is
// never absent: text that does not start with a JSON value (or is only a
// prefix of a literal, or a malformed literal or number) becomes a verbatim
// string node marked incomplete.
// Bytes after a complete top-level value are ignored.
func Scan(text string, opt ScanOptions) (Node, error) {
	s := &scanner{src: text, opt: opt}
	s.skipWS()
	if s.eof() {
		return bareString(text), nil
	}
	switch c := s.src[s.pos]; {
	case c == '{' || c == '[' || c == '"':
		n, _, err := s.value("")
		return n, err
	case c == '-' || isDigit(c):
		n, ok, err := s.number()
		if err != nil || !ok {
			return bareString(text), nil
		}
		return n, nil
	case c == 't' || c == 'f' || c == 'n':
		n, ok, err := s.literal()
		if err != nil || !ok {
			return bareString(text), nil
		}
		return n, nil
	default:
		return bareString(text), nil
	}
}

func bareString(text string) Node {
	return Node{Kind: NodeString, String: text}
}

type scanner struct {
	src   string
	pos   int
	depth int
	opt   ScanOptions
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) skipWS() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) errorf(off int, format string, args ...any) error {
	return &SyntaxError{Offset: int64(off), Msg: fmt.Sprintf(format, args...)}
}

// value reports ok=false when the input ends before any part of a value could
// be produced (a lone '-', a literal prefix, or nothing at all).
func (s *scanner) value(path string) (Node, bool, error) {
	s.skipWS()
	if s.eof() {
		return Node{}, false, nil
	}
	switch c := s.src[s.pos]; {
	case c == '{':
		return s.object(path)
	case c == '[':
		return s.array(path)
	case c == '"':
		str, complete, err := s.str()
		if err != nil {
			return Node{}, false, err
		}
		return Node{Kind: NodeString, String: str, Complete: complete}, true, nil
	case c == '-' || isDigit(c):
		return s.number()
	case c == 't' || c == 'f' || c == 'n':
		return s.literal()
	default:
		return Node{}, false, s.errorf(s.pos, "unexpected character %q", c)
	}
}

func (s *scanner) enter(path string) error {
	s.depth++
	return checkDepth(EnforceOptions{MaxDepth: s.opt.MaxDepth, IssueSink: s.opt.IssueSink}, s.depth, path, int64(s.pos))
}

func (s *scanner) object(path string) (Node, bool, error) {
	if err := s.enter(path); err != nil {
		return Node{}, false, err
	}
	defer func() { s.depth-- }()
	s.pos++
	n := Node{Kind: NodeObject, Members: []Member{}}
	idx := memberIndex{}
	for {
		s.skipWS()
		if s.eof() {
			return n, true, nil
		}
		c := s.src[s.pos]
		if c == '}' {
			s.pos++
			n.Complete = true
			return n, true, nil
		}
		if c != '"' {
			return Node{}, false, s.errorf(s.pos, "expected string key, found %q", c)
		}
		keyOff := s.pos
		key, complete, err := s.str()
		if err != nil {
			return Node{}, false, err
		}
		if !complete {
			return n, true, nil
		}
		s.skipWS()
		if s.eof() {
			return n, true, nil
		}
		if s.src[s.pos] != ':' {
			return Node{}, false, s.errorf(s.pos, "expected ':' after object key")
		}
		s.pos++
		child := JoinJSONPointer(path, key)
		v, ok, err := s.value(child)
		if err != nil {
			return Node{}, false, err
		}
		if !ok {
			return n, true, nil
		}
		if n.set(idx, key, v) {
			opt := EnforceOptions{OnDuplicate: s.opt.OnDuplicate, IssueSink: s.opt.IssueSink}
			if err := reportDuplicate(opt, key, child, int64(keyOff)); err != nil {
				return Node{}, false, err
			}
		}
		if !v.Complete {
			return n, true, nil
		}
		s.skipWS()
		if s.eof() {
			return n, true, nil
		}
		switch s.src[s.pos] {
		case ',':
			s.pos++
		case '}':
			s.pos++
			n.Complete = true
			return n, true, nil
		default:
			return Node{}, false, s.errorf(s.pos, "expected ',' or '}' after object value")
		}
	}
}

func (s *scanner) array(path string) (Node, bool, error) {
	if err := s.enter(path); err != nil {
		return Node{}, false, err
	}
	defer func() { s.depth-- }()
	s.pos++
	n := Node{Kind: NodeArray, Items: []Node{}}
	for {
		s.skipWS()
		if s.eof() {
			return n, true, nil
		}
		if s.src[s.pos] == ']' {
			s.pos++
			n.Complete = true
			return n, true, nil
		}
		v, ok, err := s.value(JoinJSONPointer(path, strconv.Itoa(len(n.Items))))
		if err != nil {
			return Node{}, false, err
		}
		if !ok {
			return n, true, nil
		}
		n.Items = append(n.Items, v)
		if !v.Complete {
			return n, true, nil
		}
		s.skipWS()
		if s.eof() {
			return n, true, nil
		}
		switch s.src[s.pos] {
		case ',':
			s.pos++
		case ']':
			s.pos++
			n.Complete = true
			return n, true, nil
		default:
			return Node{}, false, s.errorf(s.pos, "expected ',' or ']' after array element")
		}
	}
}

// str decodes the string starting at the opening quote. An unterminated string
// yields the resolved prefix with complete=false; a trailing partial escape or
// partial UTF-8 sequence is left out of that prefix.
func (s *scanner) str() (string, bool, error) {
	s.pos++
	var b strings.Builder
	for {
		start := s.pos
		for s.pos < len(s.src) {
			c := s.src[s.pos]
			if c == '"' || c == '\\' || c < 0x20 || c >= utf8.RuneSelf {
				break
			}
			s.pos++
		}
		b.WriteString(s.src[start:s.pos])
		if s.eof() {
			return b.String(), false, nil
		}
		c := s.src[s.pos]
		switch {
		case c == '"':
			s.pos++
			return b.String(), true, nil
		case c == '\\':
			r, size, err := s.escape()
			if err != nil {
				return "", false, err
			}
			if size == 0 {
				return b.String(), false, nil
			}
			b.WriteRune(r)
			s.pos += size
		case c < 0x20:
			return "", false, s.errorf(s.pos, "invalid control character %q in string", c)
		default:
			r, size := utf8.DecodeRuneInString(s.src[s.pos:])
			if r == utf8.RuneError && size == 1 && !utf8.FullRuneInString(s.src[s.pos:]) {
				return b.String(), false, nil
			}
			if r == utf8.RuneError && size == 1 {
				b.WriteRune(utf8.RuneError)
			} else {
				b.WriteString(s.src[s.pos : s.pos+size])
			}
			s.pos += size
		}
	}
}

// escape decodes the escape sequence at s.pos. size == 0 means the sequence is
// cut off by the end of input.
func (s *scanner) escape() (rune, int, error) {
	rest := s.src[s.pos:]
	if len(rest) < 2 {
		return 0, 0, nil
	}
	switch rest[1] {
	case '"':
		return '"', 2, nil
	case '\\':
		return '\\', 2, nil
	case '/':
		return '/', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'u':
	default:
		return 0, 0, s.errorf(s.pos, "invalid escape character %q", rest[1])
	}
	hi, ok, err := s.hex4(s.pos + 2)
	if err != nil || !ok {
		return 0, 0, err
	}
	if !utf16.IsSurrogate(hi) {
		return hi, 6, nil
	}
	if hi >= 0xDC00 {
		return utf8.RuneError, 6, nil
	}
	// High surrogate: wait for the low half before committing.
	if len(rest) < 7 {
		return 0, 0, nil
	}
	if rest[6] != '\\' {
		return utf8.RuneError, 6, nil
	}
	if len(rest) < 8 {
		return 0, 0, nil
	}
	if rest[7] != 'u' {
		return utf8.RuneError, 6, nil
	}
	lo, ok, err := s.hex4(s.pos + 8)
	if err != nil || !ok {
		return 0, 0, err
	}
	if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
		return r, 12, nil
	}
	return utf8.RuneError, 6, nil
}

// hex4 reads four hex digits at off. ok=false means the input ended first.
func (s *scanner) hex4(off int) (rune, bool, error) {
	var r rune
	for i := 0; i < 4; i++ {
		if off+i >= len(s.src) {
			return 0, false, nil
		}
		c := s.src[off+i]
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false, s.errorf(off+i, "invalid hex digit %q in \\u escape", c)
		}
		r = r<<4 | rune(d)
	}
	return r, true, nil
}

// number scans a JSON number. A dangling '.', exponent marker or exponent sign
// at end of input rolls back to the last valid prefix and marks the number
// incomplete; a lone '-' produces no value.
func (s *scanner) number() (Node, bool, error) {
	start := s.pos
	i := s.pos
	if s.src[i] == '-' {
		i++
	}
	if i >= len(s.src) {
		s.pos = i
		return Node{}, false, nil
	}
	if !isDigit(s.src[i]) {
		return Node{}, false, s.errorf(i, "invalid character %q in number", s.src[i])
	}
	if s.src[i] == '0' {
		i++
	} else {
		for i < len(s.src) && isDigit(s.src[i]) {
			i++
		}
	}
	valid := i
	complete := true
	if i < len(s.src) && s.src[i] == '.' {
		j := i + 1
		switch {
		case j >= len(s.src):
			complete = false
		case !isDigit(s.src[j]):
			return Node{}, false, s.errorf(j, "expected digit after decimal point")
		default:
			for j < len(s.src) && isDigit(s.src[j]) {
				j++
			}
			valid = j
		}
		i = j
	}
	if complete && i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		j := i + 1
		if j < len(s.src) && (s.src[j] == '+' || s.src[j] == '-') {
			j++
		}
		switch {
		case j >= len(s.src):
			complete = false
		case !isDigit(s.src[j]):
			return Node{}, false, s.errorf(j, "expected digit in exponent")
		default:
			for j < len(s.src) && isDigit(s.src[j]) {
				j++
			}
			valid = j
		}
		i = j
	}
	s.pos = i
	// The grammar above already guarantees a well-formed literal, so the only
	// possible failure is overflow.
	f, _ := strconv.ParseFloat(s.src[start:valid], 64)
	if math.IsInf(f, 0) {
		return Node{}, false, s.errorf(start, "number %s out of range", s.src[start:valid])
	}
	return Node{Kind: NodeNumber, Number: f, Complete: complete}, true, nil
}

var literals = [...]struct {
	word string
	node Node
}{
	{"true", Node{Kind: NodeBool, Bool: true, Complete: true}},
	{"false", Node{Kind: NodeBool, Complete: true}},
	{"null", Node{Kind: NodeNull, Complete: true}},
}

// literal matches true/false/null. A prefix cut off by end of input produces no
// value; anything else that is not the full word is a syntax error.
func (s *scanner) literal() (Node, bool, error) {
	rest := s.src[s.pos:]
	for _, l := range literals {
		if l.word[0] != rest[0] {
			continue
		}
		if strings.HasPrefix(rest, l.word) {
			s.pos += len(l.word)
			return l.node, true, nil
		}
		if len(rest) < len(l.word) && strings.HasPrefix(l.word, rest) {
			s.pos = len(s.src)
			return Node{}, false, nil
		}
		return Node{}, false, s.errorf(s.pos, "invalid literal, expected %s", l.word)
	}
	return Node{}, false, s.errorf(s.pos, "unexpected character %q", rest[0])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
