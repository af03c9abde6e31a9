package generable_test

import (
	"errors"
	"testing"

	generable "github.com/reoring/generable"
	g "github.com/reoring/generable/dsl"
)

type holder struct {
	OptionalInt *int `json:"optionalInt"`
}

func holderConverter() *g.Converter[holder] {
	return g.ObjectOf[holder]("Holder",
		g.PropOf(g.Optional(g.Int()), func(h *holder) **int { return &h.OptionalInt }),
	).MustBind()
}

func TestDecode_OptionalIntHolder(t *testing.T) {
	conv := holderConverter()

	h, err := generable.DecodeJSON(conv, `{"optionalInt": null}`)
	if err != nil || h.OptionalInt != nil {
		t.Fatalf("null: %+v err=%v", h, err)
	}
	h, err = generable.DecodeJSON(conv, `{"optionalInt": 4}`)
	if err != nil || h.OptionalInt == nil || *h.OptionalInt != 4 {
		t.Fatalf("4: %+v err=%v", h, err)
	}
	h, err = generable.DecodeJSON(conv, `{}`)
	if err != nil || h.OptionalInt != nil {
		t.Fatalf("absent: %+v err=%v", h, err)
	}

	_, err = generable.DecodeJSON(conv, `{"optionalInt": {}}`)
	iss, ok := generable.AsIssues(err)
	if !ok || iss[0].Path != "/optionalInt" || iss[0].Code != generable.CodeInvalidType {
		t.Fatalf("{} value: %v", err)
	}
	// the root itself must be an object
	if _, err := generable.DecodeJSON(conv, `null`); err == nil {
		t.Fatalf("null root must fail")
	}

	want := `{"type":"object","title":"Holder","properties":{"optionalInt":{"type":["integer","null"]}},"required":[],"x-order":["optionalInt"],"additionalProperties":false}`
	if got := marshalSchema(t, conv.GenerationSchema()); got != want {
		t.Fatalf("schema: %s", got)
	}
}

func TestDecode_NilBinding(t *testing.T) {
	if _, err := generable.Decode[int](nil, generable.Int(1)); !errors.Is(err, generable.ErrNilSchema) {
		t.Fatalf("err=%v", err)
	}
}

func TestDecodeJSON_PropagatesSyntaxErrors(t *testing.T) {
	_, err := generable.DecodeJSON[int](g.Int(), `[1 2]`)
	var se *generable.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err=%v", err)
	}
}

func TestDecodeWithMeta(t *testing.T) {
	d, err := generable.DecodeWithMeta(holderConverter(), mustParse(t, `{"optionalInt":null}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	tok := generable.FieldOf(func(h *holder) **int { return &h.OptionalInt })
	if !tok.Seen(d.Presence) || !d.Presence.WasNull(tok.Pointer()) {
		t.Fatalf("presence: %v", d.Presence)
	}
}

func TestSafeDecode_PartialSnapshots(t *testing.T) {
	conv := g.ArrayOf(g.Int())
	r := generable.SafeDecode(conv, mustParse(t, `[1, 2`))
	if !r.OK() || r.Complete || len(r.Value) != 2 {
		t.Fatalf("partial: %+v", r)
	}
	r = generable.SafeDecode(conv, mustParse(t, `[1, "x"]`))
	if r.OK() || !r.Complete || r.Issues[0].Path != "/1" {
		t.Fatalf("bad element: %+v", r)
	}
}

func TestEncodeJSON(t *testing.T) {
	four := 4
	if got := generable.EncodeJSON(holderConverter(), holder{OptionalInt: &four}); got != `{"optionalInt":4}` {
		t.Fatalf("encode: %s", got)
	}
	if got := generable.Encode(holderConverter(), holder{}); generable.Render(got) != `{}` {
		t.Fatalf("encode nil: %s", got)
	}
}
