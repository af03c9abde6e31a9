package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/dynamic"
)

type validateFlags struct {
	schema  string
	title   string
	engine  string
	partial bool
}

func newValidateCmd() *cobra.Command {
	var f validateFlags
	c := &cobra.Command{
		Use:   "validate --schema FILE [INPUT]",
		Short: "Validate content against a definition file",
		Long: `Validate checks content from INPUT (or stdin) against the schema loaded from
--schema and lists every violation with its JSON Pointer path.

Engines:
  native      generable's own validator (default)
  jsonschema  the rendered dictionary compiled by a JSON Schema validator
  typed       the dictionary converted to a typed JSON Schema and resolved`,
		Example: `  generable validate --schema recipe.yaml response.json
  generable validate --schema recipe.yaml --engine jsonschema < response.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			text, err := readInput(cmd.InOrStdin(), name)
			if err != nil {
				return err
			}
			s, err := loadSchema(f.schema, dynamic.Options{Title: f.title})
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), s, text, f)
		},
	}
	c.Flags().StringVar(&f.schema, "schema", "", "Definition file (YAML or JSON)")
	c.Flags().StringVarP(&f.title, "title", "t", "", "Pick the document with this title from a multi-document file")
	c.Flags().StringVarP(&f.engine, "engine", "e", "native", "Validator: native, jsonschema or typed")
	c.Flags().BoolVar(&f.partial, "partial", false, "Accept truncated input and validate what is there")
	_ = c.MarkFlagRequired("schema")
	return c
}

func runValidate(w io.Writer, s *generable.GenerationSchema, text string, f validateFlags) error {
	var (
		c   generable.GeneratedContent
		err error
	)
	if f.partial {
		c, err = generable.Parse(text)
	} else {
		c, err = generable.ParseStrict(text)
	}
	if err != nil {
		return err
	}

	switch strings.ToLower(f.engine) {
	case "", "native":
		err = s.Validate(c)
	case "jsonschema":
		err = generable.ValidateJSONSchema(s, c)
	case "typed":
		err = validateTyped(s, c)
	default:
		return fmt.Errorf("unknown --engine %q (want native, jsonschema or typed)", f.engine)
	}
	if err != nil {
		if iss, ok := generable.AsIssues(err); ok {
			writeIssues(w, iss)
			return fmt.Errorf("%d issue(s)", len(iss))
		}
		return err
	}
	completeColor.Fprintln(w, "valid")
	return nil
}

func validateTyped(s *generable.GenerationSchema, c generable.GeneratedContent) error {
	typed, err := s.JSONSchema().Typed()
	if err != nil {
		return fmt.Errorf("convert schema: %w", err)
	}
	resolved, err := typed.Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve schema: %w", err)
	}
	if err := resolved.Validate(c.ToAny()); err != nil {
		return fmt.Errorf("typed validation: %w", err)
	}
	return nil
}
