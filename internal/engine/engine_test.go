package engine_test

import (
	"errors"
	"io"
	"testing"

	"github.com/reoring/generable/internal/engine"
)

// tokens replays a fixed token sequence.
type tokens struct {
	toks []engine.Token
	pos  int
}

func (s *tokens) NextToken() (engine.Token, error) {
	if s.pos >= len(s.toks) {
		return engine.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *tokens) Location() int64 { return int64(s.pos) }

func tok(k engine.Kind, v string) engine.Token {
	t := engine.Token{Kind: k}
	switch k {
	case engine.KindKey, engine.KindString:
		t.String = v
	case engine.KindNumber:
		t.Number = v
	case engine.KindBool:
		t.Bool = v == "true"
	}
	return t
}

func objectTokens() []engine.Token {
	return []engine.Token{
		tok(engine.KindBeginObject, ""),
		tok(engine.KindKey, "b"), tok(engine.KindNumber, "2"),
		tok(engine.KindKey, "a"), tok(engine.KindBeginArray, ""),
		tok(engine.KindBool, "true"), tok(engine.KindNull, ""), tok(engine.KindString, "s"),
		tok(engine.KindEndArray, ""),
		tok(engine.KindKey, "b"), tok(engine.KindNumber, "3"),
		tok(engine.KindEndObject, ""),
	}
}

func TestDecodeNode(t *testing.T) {
	n, err := engine.DecodeNode(&tokens{toks: objectTokens()})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !n.Complete || len(n.Members) != 2 || n.Members[0].Key != "b" || n.Members[0].Value.Number != 3 {
		t.Fatalf("object: %+v", n)
	}
	arr := n.Members[1].Value
	if len(arr.Items) != 3 || !arr.Items[0].Bool || arr.Items[1].Kind != engine.NodeNull || arr.Items[2].String != "s" {
		t.Fatalf("array: %+v", arr)
	}
}

func TestDecodeNode_Truncated(t *testing.T) {
	toks := objectTokens()[:4]
	if _, err := engine.DecodeNode(&tokens{toks: toks}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err=%v", err)
	}
	if _, err := engine.DecodeNode(&tokens{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("empty: %v", err)
	}
}

func TestDecodeNode_BadNumber(t *testing.T) {
	_, err := engine.DecodeNode(&tokens{toks: []engine.Token{tok(engine.KindNumber, "1e999")}})
	var se *engine.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err=%v", err)
	}
}

func TestWrapWithEnforcement(t *testing.T) {
	var got []engine.SimpleIssue
	src := engine.WrapWithEnforcement(&tokens{toks: objectTokens()}, engine.EnforceOptions{
		OnDuplicate: engine.DupWarn,
		IssueSink:   func(si engine.SimpleIssue) { got = append(got, si) },
	})
	if _, err := engine.DecodeNode(src); err != nil {
		t.Fatalf("warn: %v", err)
	}
	if len(got) != 1 || got[0].Path != "/b" || got[0].Code != "duplicate_key" {
		t.Fatalf("sink: %+v", got)
	}

	src = engine.WrapWithEnforcement(&tokens{toks: objectTokens()}, engine.EnforceOptions{OnDuplicate: engine.DupError})
	_, err := engine.DecodeNode(src)
	var ie engine.IssueError
	if !errors.As(err, &ie) || ie.Path != "/b" {
		t.Fatalf("error policy: %v", err)
	}

	src = engine.WrapWithEnforcement(&tokens{toks: objectTokens()}, engine.EnforceOptions{MaxDepth: 1})
	_, err = engine.DecodeNode(src)
	if !errors.As(err, &ie) || ie.Path != "/a" {
		t.Fatalf("depth: %v", err)
	}
}
