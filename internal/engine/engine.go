package engine

import (
	"errors"
	"io"
	"math"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// NodeKind is the variant tag of a Node.
type NodeKind uint8

const (
	NodeNull NodeKind = iota
	NodeBool
	NodeNumber
	NodeString
	NodeArray
	NodeObject
)

// Node is the engine-level value tree shared by the tolerant scanner and the
// strict token decoder. Members keep first-occurrence order.
type Node struct {
	Kind     NodeKind
	Bool     bool
	Number   float64
	String   string
	Items    []Node
	Members  []Member
	Complete bool
}

// Member is one key/value pair of an object node.
type Member struct {
	Key   string
	Value Node
}

// memberIndex maps keys to their position in Members while an object node is
// being built.
type memberIndex map[string]int

// set records key=v keeping the position of the first occurrence. It reports
// whether the key was already present.
func (n *Node) set(idx memberIndex, key string, v Node) bool {
	if i, ok := idx[key]; ok {
		n.Members[i].Value = v
		return true
	}
	idx[key] = len(n.Members)
	n.Members = append(n.Members, Member{Key: key, Value: v})
	return false
}

// DecodeNode builds a complete Node from a strict token source. Running out of
// tokens inside a value yields io.ErrUnexpectedEOF.
func DecodeNode(src TokenSource) (Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Node{}, io.ErrUnexpectedEOF
		}
		return Node{}, err
	}
	return decodeValue(src, tok)
}

func decodeValue(src TokenSource, tok Token) (Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return Node{Kind: NodeString, String: tok.String, Complete: true}, nil
	case KindNumber:
		f, err := strconv.ParseFloat(tok.Number, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Node{}, &SyntaxError{Offset: tok.Offset, Msg: "invalid number " + strconv.Quote(tok.Number)}
		}
		if math.IsInf(f, 0) {
			return Node{}, &SyntaxError{Offset: tok.Offset, Msg: "number out of range"}
		}
		return Node{Kind: NodeNumber, Number: f, Complete: true}, nil
	case KindBool:
		return Node{Kind: NodeBool, Bool: tok.Bool, Complete: true}, nil
	case KindNull:
		return Node{Kind: NodeNull, Complete: true}, nil
	default:
		return Node{}, &SyntaxError{Offset: tok.Offset, Msg: "unexpected token"}
	}
}

func decodeObject(src TokenSource) (Node, error) {
	n := Node{Kind: NodeObject, Members: []Member{}}
	idx := memberIndex{}
	for {
		tok, err := next(src)
		if err != nil {
			return Node{}, err
		}
		if tok.Kind == KindEndObject {
			n.Complete = true
			return n, nil
		}
		if tok.Kind != KindKey {
			return Node{}, &SyntaxError{Offset: tok.Offset, Msg: "expected object key"}
		}
		vt, err := next(src)
		if err != nil {
			return Node{}, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return Node{}, err
		}
		n.set(idx, tok.String, v)
	}
}

func decodeArray(src TokenSource) (Node, error) {
	n := Node{Kind: NodeArray, Items: []Node{}}
	for {
		tok, err := next(src)
		if err != nil {
			return Node{}, err
		}
		if tok.Kind == KindEndArray {
			n.Complete = true
			return n, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return Node{}, err
		}
		n.Items = append(n.Items, v)
	}
}

func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}
