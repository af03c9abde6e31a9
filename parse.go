package generable

import (
	"errors"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"

	"github.com/reoring/generable/i18n"
	"github.com/reoring/generable/internal/engine"
	jsonsrc "github.com/reoring/generable/source/gojson"
)

// Parse decodes JSON text that may be truncated at any byte, as produced by a
// model that is still streaming. It never fails because input ended early:
// whatever was read is returned with IsComplete() == false on every value
// that is still open.
//
// Text that does not begin with a JSON value is returned verbatim as an
// incomplete string. That includes a root that starts like a literal or number
// but is not one ("no thanks", "trux", "1.x"): at the root such text is prose,
// while the same bytes inside an array or object are a parse_error. Bytes
// following a complete top-level value are ignored.
// Malformed input yields Issues with code parse_error whose Cause is a
// *SyntaxError carrying the byte offset.
//
// Parse is O(n) in the length of text and is meant to be called again on the
// grown buffer as more text arrives; see Accumulator.
func Parse(text string, opts ...ParseOpt) (GeneratedContent, error) {
	opt := pickOpt(opts)
	n, err := engine.Scan(text, scanOptions(opt))
	if err == nil {
		return fromNode(n), nil
	}
	var se *engine.SyntaxError
	if opt.Repair && errors.As(err, &se) {
		if fixed, rerr := jsonrepair.JSONRepair(text); rerr == nil {
			if rn, err2 := engine.Scan(fixed, scanOptions(opt)); err2 == nil {
				return fromNode(rn), nil
			}
		}
	}
	return GeneratedContent{}, toIssues(err)
}

// ParseStrict decodes a complete RFC 8259 document using goccy/go-json. Unlike
// Parse it rejects truncated input (code truncated), trailing data and
// anything else a strict decoder would reject. Key order and the duplicate key
// policy match Parse.
func ParseStrict(text string, opts ...ParseOpt) (GeneratedContent, error) {
	opt := pickOpt(opts)
	var probe any
	if err := gojson.Unmarshal([]byte(text), &probe); err != nil {
		return GeneratedContent{}, strictFailure(text, err)
	}
	src := engine.WrapWithEnforcement(jsonsrc.NewString(text), enforceOptions(opt))
	n, err := engine.DecodeNode(src)
	if err != nil {
		return GeneratedContent{}, toIssues(err)
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		off := src.Location()
		se := &engine.SyntaxError{Offset: off, Msg: "unexpected data after top-level value"}
		return GeneratedContent{}, toIssues(se)
	}
	return fromNode(n), nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(text string) GeneratedContent {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// strictFailure tells truncation apart from malformed input by re-reading the
// text tolerantly.
func strictFailure(text string, cause error) error {
	n, err := engine.Scan(text, engine.ScanOptions{})
	if err != nil {
		return toIssues(err)
	}
	trimmed := strings.TrimLeft(text, " \t\r\n")
	bare := n.Kind == engine.NodeString && n.String == text && !strings.HasPrefix(trimmed, `"`)
	if (!n.Complete && !bare) || isValuePrefix(trimmed) {
		return Issues{{
			Path:    "/",
			Code:    CodeTruncated,
			Message: i18n.T(CodeTruncated, nil),
			Cause:   cause,
			Offset:  int64(len(text)),
		}}
	}
	off := int64(-1)
	var se *gojson.SyntaxError
	if errors.As(cause, &se) {
		off = se.Offset
	}
	return toIssues(&engine.SyntaxError{Offset: off, Msg: cause.Error()})
}

// isValuePrefix reports whether a root value was cut off before the scanner
// could produce anything: a literal prefix such as "nul", or a lone '-'.
func isValuePrefix(s string) bool {
	if s == "" {
		return false
	}
	for _, w := range [...]string{"true", "false", "null"} {
		if len(s) < len(w) && strings.HasPrefix(w, s) {
			return true
		}
	}
	return s == "-"
}

func severityToDup(s Severity) engine.DuplicateStrictness {
	switch s {
	case Warn:
		return engine.DupWarn
	case Error:
		return engine.DupError
	}
	return engine.DupIgnore
}

func sinkFor(opt ParseOpt) func(engine.SimpleIssue) {
	if opt.IssueSink == nil {
		return nil
	}
	return func(si engine.SimpleIssue) { opt.IssueSink(issueFromSimple(si)) }
}

func scanOptions(opt ParseOpt) engine.ScanOptions {
	return engine.ScanOptions{
		OnDuplicate: severityToDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   sinkFor(opt),
	}
}

func enforceOptions(opt ParseOpt) engine.EnforceOptions {
	return engine.EnforceOptions{
		OnDuplicate: severityToDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   sinkFor(opt),
	}
}

func issueFromSimple(si engine.SimpleIssue) Issue {
	return Issue{
		Path:    si.Path,
		Code:    si.Code,
		Message: i18n.T(si.Code, map[string]string{"detail": si.Message}),
		Hint:    si.Message,
		Offset:  si.Offset,
	}
}

// toIssues maps engine errors onto the public error model.
func toIssues(err error) error {
	var se *engine.SyntaxError
	if errors.As(err, &se) {
		return Issues{{
			Path:    "/",
			Code:    CodeParseError,
			Message: i18n.T(CodeParseError, map[string]string{"detail": se.Msg}),
			Cause:   se,
			Offset:  se.Offset,
		}}
	}
	var ie engine.IssueError
	if errors.As(err, &ie) {
		it := issueFromSimple(ie.SimpleIssue)
		it.Cause = err
		return Issues{it}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Issues{{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Cause: err, Offset: -1}}
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, map[string]string{"detail": err.Error()}), Cause: err, Offset: -1}}
}
