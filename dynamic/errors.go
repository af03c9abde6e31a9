package dynamic

import "fmt"

// DefinitionError reports a malformed definition with its location. Pointer
// is the JSON Pointer of the offending node inside the document.
type DefinitionError struct {
	Pointer string
	Line    int
	Column  int
	Msg     string
}

func (e *DefinitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("dynamic: %s at %d:%d: %s", e.Pointer, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("dynamic: %s: %s", e.Pointer, e.Msg)
}
