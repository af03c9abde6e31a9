package engine_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/reoring/generable/internal/engine"
)

func TestScan_Completeness(t *testing.T) {
	tests := []struct {
		in       string
		kind     engine.NodeKind
		complete bool
	}{
		{`{}`, engine.NodeObject, true},
		{`{`, engine.NodeObject, false},
		{`[1,[2`, engine.NodeArray, false},
		{`"abc`, engine.NodeString, false},
		{`"abc"`, engine.NodeString, true},
		{`12`, engine.NodeNumber, true},
		{`12.`, engine.NodeNumber, false},
		{`1e-`, engine.NodeNumber, false},
		{`null`, engine.NodeNull, true},
		{`  false  `, engine.NodeBool, true},
		{`nul`, engine.NodeString, false},
		{`Here you go`, engine.NodeString, false},
	}
	for _, tt := range tests {
		n, err := engine.Scan(tt.in, engine.ScanOptions{})
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if n.Kind != tt.kind || n.Complete != tt.complete {
			t.Fatalf("%q: kind=%d complete=%v", tt.in, n.Kind, n.Complete)
		}
	}
}

func TestScan_NestedPartialValues(t *testing.T) {
	n, err := engine.Scan(`{"a":[1,{"b":"x\u00`, engine.ScanOptions{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	arr := n.Members[0].Value
	if len(arr.Items) != 2 || arr.Complete {
		t.Fatalf("array: %+v", arr)
	}
	b := arr.Items[1].Members[0].Value
	if b.String != "x" || b.Complete {
		t.Fatalf("string: %+v", b)
	}
}

func TestScan_Surrogates(t *testing.T) {
	tests := map[string]string{
		`"😀"`: "😀",
		`"\ude00"`:       "�",
		`"\ud83dx"`:      "�x",
		`"é"`:       "é",
	}
	for in, want := range tests {
		n, err := engine.Scan(in, engine.ScanOptions{})
		if err != nil || n.String != want || !n.Complete {
			t.Fatalf("%s: %q complete=%v err=%v", in, n.String, n.Complete, err)
		}
	}
}

func TestScan_Overflow(t *testing.T) {
	_, err := engine.Scan(`[1e999]`, engine.ScanOptions{})
	var se *engine.SyntaxError
	if !errors.As(err, &se) || se.Offset != 1 {
		t.Fatalf("err=%v", err)
	}
}

func TestScan_DuplicatesAndDepth(t *testing.T) {
	var got []engine.SimpleIssue
	sink := func(si engine.SimpleIssue) { got = append(got, si) }
	n, err := engine.Scan(`{"k":1,"x":0,"k":2}`, engine.ScanOptions{OnDuplicate: engine.DupWarn, IssueSink: sink})
	if err != nil {
		t.Fatalf("warn: %v", err)
	}
	if len(n.Members) != 2 || n.Members[0].Key != "k" || n.Members[0].Value.Number != 2 {
		t.Fatalf("members: %+v", n.Members)
	}
	if len(got) != 1 || got[0].Path != "/k" || got[0].Offset != 13 {
		t.Fatalf("sink: %+v", got)
	}

	_, err = engine.Scan(`{"k":1,"k":2}`, engine.ScanOptions{OnDuplicate: engine.DupError})
	var ie engine.IssueError
	if !errors.As(err, &ie) || ie.Code != "duplicate_key" {
		t.Fatalf("error policy: %v", err)
	}

	_, err = engine.Scan(`[[[1]]]`, engine.ScanOptions{MaxDepth: 2})
	if !errors.As(err, &ie) || ie.Path != "/0/0" || ie.Message != "max depth exceeded" {
		t.Fatalf("depth: %v", err)
	}
	if _, err := engine.Scan(`[[1]]`, engine.ScanOptions{MaxDepth: 2}); err != nil {
		t.Fatalf("depth within limit: %v", err)
	}
}

func TestJSONPointer(t *testing.T) {
	if got := engine.JoinJSONPointer("", "a/b~c"); got != "/a~1b~0c" {
		t.Fatalf("join root: %s", got)
	}
	if got := engine.JoinJSONPointer("/x", "0"); got != "/x/0" {
		t.Fatalf("join: %s", got)
	}
	if engine.NormalizeIssuePath("") != "/" || engine.NormalizeIssuePath("/a") != "/a" {
		t.Fatalf("normalize")
	}
}

func TestScan_MalformedRootIsProse(t *testing.T) {
	for _, in := range []string{`trux`, `nulL`, `1.x`, `-x`, `no thanks`, `2 eggs`} {
		n, err := engine.Scan(in, engine.ScanOptions{})
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if in == `2 eggs` {
			// a complete number followed by prose keeps the number
			if n.Kind != engine.NodeNumber || n.Number != 2 || !n.Complete {
				t.Fatalf("%q: %+v", in, n)
			}
			continue
		}
		if n.Kind != engine.NodeString || n.String != in || n.Complete {
			t.Fatalf("%q: expected bare text, got %+v", in, n)
		}
	}
	for _, in := range []string{`[trux]`, `{"a":nulL}`, `[1.x]`, `[-x]`} {
		var se *engine.SyntaxError
		if _, err := engine.Scan(in, engine.ScanOptions{}); !errors.As(err, &se) {
			t.Fatalf("%q: expected syntax error, got %v", in, err)
		}
	}
}

func TestScan_WideObjectIsLinear(t *testing.T) {
	build := func(n int) string {
		var b strings.Builder
		b.WriteByte('{')
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, `"k%d":%d`, i, i)
		}
		b.WriteString(`,"k0":-1}`)
		return b.String()
	}
	fastest := func(in string) time.Duration {
		best := time.Duration(math.MaxInt64)
		for i := 0; i < 3; i++ {
			start := time.Now()
			n, err := engine.Scan(in, engine.ScanOptions{})
			d := time.Since(start)
			if err != nil || !n.Complete {
				t.Fatalf("scan: %v", err)
			}
			if n.Members[0].Key != "k0" || n.Members[0].Value.Number != -1 {
				t.Fatalf("repeated key lost its first position: %+v", n.Members[0])
			}
			best = min(best, d)
		}
		return best
	}
	small, large := fastest(build(5000)), fastest(build(40000))
	// 8x the keys; a quadratic member lookup would cost about 64x
	if small > 0 && large > 24*small {
		t.Fatalf("5k keys took %v, 40k keys took %v", small, large)
	}
}
