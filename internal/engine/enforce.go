package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling and
// max depth checks in a streaming fashion.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	// IssueSink is an optional callback to receive non-fatal issues (duplicate
	// keys under DupWarn). Fatal issues are also reported before failing.
	IssueSink func(SimpleIssue)
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy and the maximum nesting depth.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []dupFrame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := dupFrame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if err := checkDepth(e.opt, len(e.stack), path, tok.Offset); err != nil {
			return Token{}, err
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				_, dup := top.keys[tok.String]
				if dup {
					if err := reportDuplicate(e.opt, tok.String, path, tok.Offset); err != nil {
						return Token{}, err
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}
	return tok, nil
}

func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return JoinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := JoinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return JoinJSONPointer(top.path, top.pendingKey)
		}
	}
	return top.path
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

// checkDepth fails once depth exceeds opt.MaxDepth (0 = unlimited).
func checkDepth(opt EnforceOptions, depth int, path string, off int64) error {
	if opt.MaxDepth <= 0 || depth <= opt.MaxDepth {
		return nil
	}
	si := SimpleIssue{Code: "parse_error", Path: NormalizeIssuePath(path), Message: "max depth exceeded", Offset: off}
	if opt.IssueSink != nil {
		opt.IssueSink(si)
	}
	return IssueError{si}
}

// reportDuplicate applies the duplicate key policy for key at path.
func reportDuplicate(opt EnforceOptions, key, path string, off int64) error {
	if opt.OnDuplicate == DupIgnore {
		return nil
	}
	si := SimpleIssue{Code: "duplicate_key", Path: NormalizeIssuePath(path), Message: "key '" + key + "' duplicated", Offset: off}
	if opt.IssueSink != nil {
		opt.IssueSink(si)
	}
	if opt.OnDuplicate == DupError {
		return IssueError{si}
	}
	return nil
}

// NormalizeIssuePath renders the root pointer as "/".
func NormalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// EscapeJSONPointerToken escapes a single reference token per RFC 6901.
func EscapeJSONPointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

// JoinJSONPointer appends token to base. The root pointer is "".
func JoinJSONPointer(base, token string) string {
	if base == "" || base == "/" {
		return "/" + EscapeJSONPointerToken(token)
	}
	return base + "/" + EscapeJSONPointerToken(token)
}
