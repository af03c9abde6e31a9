package dynamic

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"

	generable "github.com/reoring/generable"
)

// ErrNotFound is returned when Options.Title names no document in the stream.
var ErrNotFound = errors.New("dynamic: no definition with the requested title")

// Load reads a definition from r. Input starting with '{' is treated as JSON,
// anything else as YAML.
func Load(r io.Reader, opts ...Options) (*generable.GenerationSchema, Diag, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &simpleDiag{}, err
	}
	if t := bytes.TrimLeft(data, " \t\r\n"); len(t) > 0 && t[0] == '{' {
		return LoadJSON(data, opts...)
	}
	return LoadYAML(data, opts...)
}

// LoadFile reads a definition file; see Load.
func LoadFile(path string, opts ...Options) (*generable.GenerationSchema, Diag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &simpleDiag{}, err
	}
	defer f.Close()
	return Load(f, opts...)
}

// LoadJSON compiles a JSON definition document.
func LoadJSON(data []byte, opts ...Options) (*generable.GenerationSchema, Diag, error) {
	if !gojson.Valid(data) {
		var v any
		err := gojson.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &simpleDiag{}, fmt.Errorf("dynamic: %w", err)
	}
	return LoadYAML(data, opts...)
}

// LoadYAML compiles a YAML definition. In a multi-document stream the first
// document is used, or the one whose title matches Options.Title.
func LoadYAML(data []byte, opts ...Options) (*generable.GenerationSchema, Diag, error) {
	opt := pickOpts(opts)
	d := &simpleDiag{}
	r := newDocumentReader(bytes.NewReader(data))
	for {
		n, err := r.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, d, err
		}
		if n == nil {
			continue
		}
		if opt.Title != "" {
			if t := lookup(n, "title"); t == nil || t.Value != opt.Title {
				continue
			}
		}
		c := &compiler{opt: opt, diag: d, defs: lookup(n, "$defs"), resolving: map[string]bool{}}
		s, _, err := c.compile(n, "")
		if err != nil {
			return nil, d, err
		}
		return s, d, nil
	}
	if opt.Title != "" {
		return nil, d, fmt.Errorf("%w: %q", ErrNotFound, opt.Title)
	}
	return nil, d, &DefinitionError{Pointer: "/", Msg: "empty document"}
}
