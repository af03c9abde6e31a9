// Package gojson adapts github.com/goccy/go-json decoder tokens to the engine
// TokenSource used by strict parsing.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/generable/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// NewString wraps a string into an engine.TokenSource for JSON using go-json.
func NewString(s string) eng.TokenSource { return NewReader(strings.NewReader(s)) }

func (s *source) NextToken() (eng.Token, error) {
	off := s.dec.InputOffset()
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		var se *j.SyntaxError
		if errors.As(err, &se) {
			return eng.Token{}, &eng.SyntaxError{Offset: se.Offset, Msg: se.Error()}
		}
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
		case '}', ']':
			want := kindObject
			kind := eng.KindEndObject
			if v == ']' {
				want, kind = kindArray, eng.KindEndArray
			}
			n := len(s.stack)
			if n == 0 || s.stack[n-1].kind != want {
				return eng.Token{}, &eng.SyntaxError{Offset: off, Msg: "unexpected " + strconv.QuoteRune(rune(v))}
			}
			s.stack = s.stack[:n-1]
			s.valueDone()
			return eng.Token{Kind: kind, Offset: off}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: off}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: off}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: off}, nil
	case j.Number:
		s.valueDone()
		// The decoder's number text aliases its read buffer.
		return eng.Token{Kind: eng.KindNumber, Number: strings.Clone(string(v)), Offset: off}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}, nil
	case nil:
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	}
	return eng.Token{}, &eng.SyntaxError{Offset: off, Msg: "unsupported token"}
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int64 { return s.dec.InputOffset() }
