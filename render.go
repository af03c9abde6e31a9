package generable

import (
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Render serializes content as compact JSON. Object keys follow their ordered
// sequence, strings are escaped without HTML escaping, integral numbers are
// written without a fraction and NaN/Inf render as null. For complete content,
// Parse(Render(c)) is equal to c and complete.
func Render(c GeneratedContent) string {
	var b strings.Builder
	writeContent(&b, c)
	return b.String()
}

// JSONString is Render as a method.
func (c GeneratedContent) JSONString() string { return Render(c) }

// String implements fmt.Stringer.
func (c GeneratedContent) String() string { return Render(c) }

// MarshalJSON implements json.Marshaler.
func (c GeneratedContent) MarshalJSON() ([]byte, error) {
	return []byte(Render(c)), nil
}

// UnmarshalJSON implements json.Unmarshaler with strict parsing.
func (c *GeneratedContent) UnmarshalJSON(b []byte) error {
	v, err := ParseStrict(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func writeContent(b *strings.Builder, c GeneratedContent) {
	switch c.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(c.b))
	case KindNumber:
		b.WriteString(FormatNumber(c.num))
	case KindString:
		writeString(b, c.str)
	case KindArray:
		b.WriteByte('[')
		for i, it := range c.items {
			if i > 0 {
				b.WriteByte(',')
			}
			writeContent(b, it)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		i := 0
		for k, v := range c.All() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, k)
			b.WriteByte(':')
			writeContent(b, v)
			i++
		}
		b.WriteByte('}')
	}
}

func writeString(b *strings.Builder, s string) {
	out, err := gojson.MarshalWithOption(s, gojson.DisableHTMLEscape())
	if err != nil {
		// Strings always marshal; keep the output valid regardless.
		b.WriteString(strconv.Quote(s))
		return
	}
	b.Write(out)
}

// FormatNumber renders a float64 the way Render does: integral values below
// 1e21 without a fraction, other values in plain decimal unless the magnitude
// calls for exponent form, and null for NaN/Inf.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e21 && (f == math.Trunc(f) || abs >= 1e-6) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}
