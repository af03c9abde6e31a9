package dsl_test

import (
	"testing"

	generable "github.com/reoring/generable"
	g "github.com/reoring/generable/dsl"
)

func TestPrimitives_Scalars(t *testing.T) {
	if v, err := generable.Decode(g.String(), generable.String("hello")); err != nil || v != "hello" {
		t.Fatalf("string: v=%q err=%v", v, err)
	}
	if _, err := generable.Decode(g.String(), generable.Int(1)); err == nil {
		t.Fatalf("expected invalid_type for number into string")
	}
	if v, err := generable.Decode(g.Bool(), generable.Bool(true)); err != nil || !v {
		t.Fatalf("bool: v=%v err=%v", v, err)
	}
	if _, err := generable.Decode(g.Bool(), generable.String("true")); err == nil {
		t.Fatalf("expected invalid_type for string into bool")
	}
	if v, err := generable.Decode(g.Float(), generable.Number(1.25)); err != nil || v != 1.25 {
		t.Fatalf("float: v=%v err=%v", v, err)
	}
}

func TestInt_FractionalAndOverflow(t *testing.T) {
	v, err := generable.DecodeJSON(g.Int(), "42")
	if err != nil || v != 42 {
		t.Fatalf("int: v=%d err=%v", v, err)
	}
	_, err = generable.DecodeJSON(g.Int(), "4.5")
	iss, ok := generable.AsIssues(err)
	if !ok || !iss.HasCode(generable.CodeInvalidType) {
		t.Fatalf("fractional: expected invalid_type, got %v", err)
	}
	_, err = generable.DecodeJSON(g.Int64(), "1e300")
	iss, ok = generable.AsIssues(err)
	if !ok || !iss.HasCode(generable.CodeOverflow) {
		t.Fatalf("huge: expected overflow, got %v", err)
	}
	if iss[0].Path != "/" {
		t.Fatalf("overflow path: %q", iss[0].Path)
	}
}

func TestInt_RangeGuide(t *testing.T) {
	servings := g.Int(generable.Range(1, 12))
	if _, err := generable.Decode(servings, generable.Int(6)); err != nil {
		t.Fatalf("in range: %v", err)
	}
	_, err := generable.Decode(servings, generable.Int(0))
	iss, _ := generable.AsIssues(err)
	if !iss.HasCode(generable.CodeTooSmall) {
		t.Fatalf("expected too_small, got %v", err)
	}
	_, err = generable.Decode(servings, generable.Int(13))
	iss, _ = generable.AsIssues(err)
	if !iss.HasCode(generable.CodeTooBig) {
		t.Fatalf("expected too_big, got %v", err)
	}
}

func TestString_PatternAndDescribe(t *testing.T) {
	code := g.String(generable.Pattern(`^[A-Z]{3}$`)).Describe("ISO currency code")
	if _, err := generable.Decode(code, generable.String("JPY")); err != nil {
		t.Fatalf("pattern ok: %v", err)
	}
	_, err := generable.Decode(code, generable.String("yen"))
	iss, _ := generable.AsIssues(err)
	if !iss.HasCode(generable.CodePattern) {
		t.Fatalf("expected pattern issue, got %v", err)
	}
	if d := code.GenerationSchema().Description; d != "ISO currency code" {
		t.Fatalf("description: %q", d)
	}
	// Describe returns a copy
	if g.String().GenerationSchema().Description != "" {
		t.Fatalf("Describe leaked into a fresh converter")
	}
}

type Mood string

func TestEnum(t *testing.T) {
	mood := g.Enum[Mood]("happy", "sad")
	v, err := generable.DecodeJSON(mood, `"sad"`)
	if err != nil || v != Mood("sad") {
		t.Fatalf("enum: v=%q err=%v", v, err)
	}
	_, err = generable.DecodeJSON(mood, `"angry"`)
	iss, _ := generable.AsIssues(err)
	if !iss.HasCode(generable.CodeInvalidEnum) {
		t.Fatalf("expected invalid_enum, got %v", err)
	}
	if got := generable.EncodeJSON(mood, "happy"); got != `"happy"` {
		t.Fatalf("encode: %s", got)
	}
}

func TestOptional_NullVersusEmptyObject(t *testing.T) {
	opt := g.Optional(g.Int())
	v, err := generable.DecodeJSON(opt, "null")
	if err != nil || v != nil {
		t.Fatalf("null: v=%v err=%v", v, err)
	}
	v, err = generable.DecodeJSON(opt, "7")
	if err != nil || v == nil || *v != 7 {
		t.Fatalf("7: v=%v err=%v", v, err)
	}
	_, err = generable.DecodeJSON(opt, "{}")
	iss, _ := generable.AsIssues(err)
	if !iss.HasCode(generable.CodeInvalidType) {
		t.Fatalf("{} must not decode as absent, got %v", err)
	}
	if got := generable.EncodeJSON[*int](opt, nil); got != "null" {
		t.Fatalf("encode nil: %s", got)
	}
}

func TestContent_ValidatesWholeSubtree(t *testing.T) {
	s := generable.ObjectSchema("Pair",
		generable.Field("a", generable.IntegerSchema()),
		generable.Field("b", generable.StringSchema()),
	)
	conv := g.Content(s)
	c := generable.MustParse(`{"a":1,"b":"x"}`)
	out, err := generable.Decode(conv, c)
	if err != nil || !out.Equal(c) {
		t.Fatalf("pass-through: out=%s err=%v", out, err)
	}
	_, err = generable.Decode(conv, generable.MustParse(`{"a":"1","b":2}`))
	iss, _ := generable.AsIssues(err)
	if len(iss) != 2 || iss[0].Path != "/a" || iss[1].Path != "/b" {
		t.Fatalf("expected both property issues, got %v", err)
	}
}

func TestOptional_NullableOutsideProperties(t *testing.T) {
	list := g.ArrayOf(g.Optional(g.Int()))
	v, err := generable.DecodeJSON(list, `[1,null]`)
	if err != nil || len(v) != 2 || *v[0] != 1 || v[1] != nil {
		t.Fatalf("decode: v=%v err=%v", v, err)
	}
	s := list.GenerationSchema()
	b, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"type":"array","items":{"type":["integer","null"]}}`; string(b) != want {
		t.Fatalf("array schema:\n got %s\nwant %s", b, want)
	}
	c := generable.MustParse(`[1,null]`)
	if err := s.Validate(c); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := generable.ValidateJSONSchema(s, c); err != nil {
		t.Fatalf("json schema: %v", err)
	}
	if err := s.Validate(generable.MustParse(`[1,"x"]`)); err == nil {
		t.Fatalf("a string item must still fail")
	}

	root := g.Optional(g.Int()).GenerationSchema()
	if b, _ := root.MarshalJSON(); string(b) != `{"type":["integer","null"]}` {
		t.Fatalf("root schema: %s", b)
	}
	if err := root.Validate(generable.Null()); err != nil {
		t.Fatalf("null root: %v", err)
	}
	if err := generable.ValidateJSONSchema(root, generable.Null()); err != nil {
		t.Fatalf("null root json schema: %v", err)
	}

	either := g.Optional(g.AnyOf[int](g.Int())).GenerationSchema()
	if b, _ := either.MarshalJSON(); string(b) != `{"anyOf":[{"type":"integer"},{"type":"null"}]}` {
		t.Fatalf("anyOf schema: %s", b)
	}
	if err := either.Validate(generable.Null()); err != nil {
		t.Fatalf("null anyOf: %v", err)
	}
}

func TestOptional_PropertyWidensOnce(t *testing.T) {
	type Box struct {
		Size *int `json:"size"`
	}
	box := g.ObjectOf[Box]("Box",
		g.PropOf(g.Optional(g.Int()), func(b *Box) **int { return &b.Size }),
	).MustBind()
	b, err := box.GenerationSchema().MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"object","title":"Box","properties":{"size":{"type":["integer","null"]}},"required":[],"x-order":["size"],"additionalProperties":false}`
	if string(b) != want {
		t.Fatalf("schema:\n got %s\nwant %s", b, want)
	}
}
