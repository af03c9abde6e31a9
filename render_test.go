package generable_test

import (
	"math"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	generable "github.com/reoring/generable"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{25, "25"},
		{-3, "-3"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-07"},
		{0.000001, "0.000001"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
	}
	for _, tt := range tests {
		if got := generable.FormatNumber(tt.in); got != tt.want {
			t.Fatalf("FormatNumber(%v)=%s want %s", tt.in, got, tt.want)
		}
	}
}

func TestRender_Escaping(t *testing.T) {
	c := generable.String("a\"b\\c\n\t\x01<tag>&é")
	want := `"a\"b\\c\n\t\u0001<tag>&é"`
	if got := generable.Render(c); got != want {
		t.Fatalf("render: %s want %s", got, want)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	docs := []string{
		`{"name":"Alice","age":25,"tags":["a","b"],"meta":{"z":null,"a":true},"ratio":0.25}`,
		`[1,-2.5,1e+21,"\u0000",[],{}]`,
		`"plain"`,
		`null`,
		`{"quote":"he said \"hi\"","path":"a/b","emoji":"😀"}`,
	}
	for _, d := range docs {
		c := mustParse(t, d)
		if !c.IsComplete() {
			t.Fatalf("%s: expected complete", d)
		}
		again := mustParse(t, generable.Render(c))
		if !again.Equal(c) || !again.IsComplete() {
			t.Fatalf("round trip changed %s into %s", c, again)
		}
		if strings.Join(again.Keys(), ",") != strings.Join(c.Keys(), ",") {
			t.Fatalf("round trip changed key order")
		}
	}
}

func TestRender_JSONInterop(t *testing.T) {
	type envelope struct {
		Content generable.GeneratedContent `json:"content"`
	}
	in := envelope{Content: mustParse(t, `{"b":1,"a":[true]}`)}
	b, err := gojson.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"content":{"b":1,"a":[true]}}` {
		t.Fatalf("marshal: %s", b)
	}
	var out envelope
	if err := gojson.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Content.Equal(in.Content) {
		t.Fatalf("unmarshal: %s", out.Content)
	}
}

// consistent reports whether prefix is a plausible earlier state of full:
// everything before the last open value must already be equal.
func consistent(prefix, full generable.GeneratedContent) bool {
	if prefix.Kind() != full.Kind() {
		return false
	}
	switch prefix.Kind() {
	case generable.KindNumber:
		// a number cut off at end of input may still grow
		return true
	case generable.KindString:
		p, _ := prefix.Text()
		f, _ := full.Text()
		if prefix.IsComplete() {
			return p == f
		}
		return strings.HasPrefix(f, p)
	case generable.KindArray:
		pe, fe := prefix.Elements(), full.Elements()
		if len(pe) > len(fe) {
			return false
		}
		for i, el := range pe {
			if i < len(pe)-1 && !el.Equal(fe[i]) {
				return false
			}
			if !consistent(el, fe[i]) {
				return false
			}
		}
		return true
	case generable.KindObject:
		pk, fk := prefix.Keys(), full.Keys()
		if len(pk) > len(fk) {
			return false
		}
		for i, k := range pk {
			if fk[i] != k {
				return false
			}
			pv, _ := prefix.Property(k)
			fv, _ := full.Property(k)
			if i < len(pk)-1 && !pv.Equal(fv) {
				return false
			}
			if !consistent(pv, fv) {
				return false
			}
		}
		return true
	}
	return prefix.Equal(full)
}

func TestParse_PrefixMonotonicity(t *testing.T) {
	full := `{"title":"Tomato \"soup\"","servings":12,"steps":[{"n":1,"text":"chop\nslice"},{"n":2.5e1,"done":false}],"note":null,"emoji":"😀"}`
	want := mustParse(t, full)
	for i := 1; i <= len(full); i++ {
		p := full[:i]
		c, err := generable.Parse(p)
		if err != nil {
			t.Fatalf("prefix %q: %v", p, err)
		}
		if i < len(full) && c.IsComplete() {
			t.Fatalf("prefix %q reported complete", p)
		}
		if !consistent(c, want) {
			t.Fatalf("prefix %q gave %s, inconsistent with %s", p, c, want)
		}
	}
}
