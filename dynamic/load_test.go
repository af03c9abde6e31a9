package dynamic_test

import (
	"errors"
	"strings"
	"testing"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/dsl"
	"github.com/reoring/generable/dynamic"
)

const recipeYAML = `
title: Recipe
type: object
description: A dish
properties:
  name: {type: string}
  servings: {type: integer, minimum: 1, maximum: 12, description: How many people it feeds}
  ingredients: {type: array, items: {type: string}, minItems: 1}
  note: {type: [string, "null"]}
  mood: {enum: [happy, sad]}
`

func TestLoadYAML_Recipe(t *testing.T) {
	s, diag, err := dynamic.LoadYAML([]byte(recipeYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diag.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", diag.Warnings())
	}
	if s.Kind != generable.SchemaObject || s.Title != "Recipe" || s.Description != "A dish" {
		t.Fatalf("unexpected root: %+v", s)
	}
	var names []string
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "name,servings,ingredients,note,mood" {
		t.Fatalf("property order not kept: %v", names)
	}
	if got := s.RequiredNames(); strings.Join(got, ",") != "name,servings,ingredients,mood" {
		t.Fatalf("required: %v", got)
	}
	mood, _ := s.Property("mood")
	if mood.Schema.Kind != generable.SchemaEnum || len(mood.Schema.Values) != 2 {
		t.Fatalf("mood: %+v", mood.Schema)
	}
}

func TestLoadYAML_ValidatesContent(t *testing.T) {
	s, _, err := dynamic.LoadYAML([]byte(recipeYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	conv := dsl.Content(s)
	ok := `{"name":"Soup","servings":2,"ingredients":["water"],"mood":"happy"}`
	if _, err := generable.DecodeJSON(conv, ok); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}
	_, err = generable.DecodeJSON(conv, `{"name":"Soup","servings":0,"ingredients":[],"mood":"meh"}`)
	iss, _ := generable.AsIssues(err)
	want := map[string]string{"/servings": generable.CodeTooSmall, "/ingredients": generable.CodeTooShort, "/mood": generable.CodeInvalidEnum}
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %v", len(want), err)
	}
	for _, it := range iss {
		if want[it.Path] != it.Code {
			t.Fatalf("unexpected %s at %s", it.Code, it.Path)
		}
	}
}

func TestLoad_RoundTripsRenderedSchema(t *testing.T) {
	s, _, err := dynamic.LoadYAML([]byte(recipeYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rendered, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, diag, err := dynamic.Load(strings.NewReader(string(rendered)))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diag.HasWarnings() {
		t.Fatalf("unexpected warnings on reload: %v", diag.Warnings())
	}
	b, _ := again.MarshalJSON()
	if string(b) != string(rendered) {
		t.Fatalf("round trip changed schema:\n got %s\nwant %s", b, rendered)
	}
}

func TestLoadYAML_RequiredListAndRefs(t *testing.T) {
	y := `
title: Plan
type: object
$defs:
  Step:
    title: Step
    type: object
    properties:
      minutes: {type: integer}
properties:
  steps: {type: array, items: {$ref: "#/$defs/Step"}, count: 2}
  label: {type: string}
required: [steps]
`
	s, _, err := dynamic.LoadYAML([]byte(y))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.RequiredNames(); len(got) != 1 || got[0] != "steps" {
		t.Fatalf("required: %v", got)
	}
	steps, _ := s.Property("steps")
	if steps.Schema.Items.Title != "Step" || *steps.Schema.Guides.MinItems != 2 || *steps.Schema.Guides.MaxItems != 2 {
		t.Fatalf("steps: %+v", steps.Schema)
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"cyclic ref":     "$defs: {A: {$ref: \"#/$defs/A\"}}\n$ref: \"#/$defs/A\"\n",
		"unknown ref":    "type: array\nitems: {$ref: \"#/$defs/Nope\"}\n",
		"missing items":  "type: array\n",
		"bad pattern":    "type: string\npattern: \"(\"\n",
		"bad type":       "type: date\n",
		"undeclared req": "type: object\nproperties: {a: {type: string}}\nrequired: [b]\n",
		"two types":      "type: [string, integer]\n",
		"min over max":   "type: number\nminimum: 3\nmaximum: 1\n",
	}
	for name, y := range cases {
		_, _, err := dynamic.LoadYAML([]byte(y))
		var de *dynamic.DefinitionError
		if !errors.As(err, &de) {
			t.Fatalf("%s: expected DefinitionError, got %v", name, err)
		}
	}
}

func TestLoadYAML_DuplicateKey(t *testing.T) {
	_, _, err := dynamic.LoadYAML([]byte("type: object\nproperties:\n  a: {type: string}\n  a: {type: integer}\n"))
	var de *dynamic.DuplicateKeyError
	if !errors.As(err, &de) || de.Key != "a" || de.Line != 4 || de.FirstLine != 3 {
		t.Fatalf("expected DuplicateKeyError for a, got %v", err)
	}
}

func TestLoadYAML_UnsupportedKeywords(t *testing.T) {
	y := "type: string\nformat: email\n"
	s, diag, err := dynamic.LoadYAML([]byte(y))
	if err != nil || s.Kind != generable.SchemaString {
		t.Fatalf("lenient load: s=%v err=%v", s, err)
	}
	if !diag.HasWarnings() {
		t.Fatalf("expected a warning for format")
	}
	if _, _, err := dynamic.LoadYAML([]byte(y), dynamic.Options{Strict: true}); err == nil {
		t.Fatalf("strict load must reject format")
	}
}

func TestLoadYAML_SelectByTitle(t *testing.T) {
	y := "title: A\ntype: object\nproperties: {a: {type: string}}\n---\ntitle: B\ntype: object\nproperties: {b: {type: boolean}}\n"
	s, _, err := dynamic.LoadYAML([]byte(y), dynamic.Options{Title: "B"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := s.Property("b"); !ok {
		t.Fatalf("expected document B, got %s", s.Title)
	}
	if _, _, err := dynamic.LoadYAML([]byte(y), dynamic.Options{Title: "C"}); !errors.Is(err, dynamic.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadJSON_Invalid(t *testing.T) {
	if _, _, err := dynamic.LoadJSON([]byte(`{"type":"string",}`)); err == nil {
		t.Fatalf("expected invalid JSON error")
	}
}

func TestLoadYAML_NullableItems(t *testing.T) {
	s, _, err := dynamic.LoadYAML([]byte(`
type: array
items: {type: [integer, "null"]}
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Items.Nullable {
		t.Fatalf("items must admit null: %+v", s.Items)
	}
	b, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"type":"array","items":{"type":["integer","null"]}}` {
		t.Fatalf("schema: %s", b)
	}
	if err := s.Validate(generable.MustParse(`[1,null,3]`)); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
