package cmd

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/dynamic"
)

func newSchemaCmd() *cobra.Command {
	var (
		asYAML bool
		title  string
		strict bool
	)
	c := &cobra.Command{
		Use:   "schema FILE",
		Short: "Render a definition file as JSON Schema",
		Long: `Schema loads a YAML or JSON definition and prints the JSON Schema dictionary
a model is prompted with. Property order follows the definition.`,
		Example: `  generable schema recipe.yaml
  generable schema --title Recipe --yaml bundle.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchema(args[0], dynamic.Options{Title: title, Strict: strict})
			if err != nil {
				return err
			}
			return writeSchema(cmd.OutOrStdout(), s, asYAML)
		},
	}
	c.Flags().BoolVarP(&asYAML, "yaml", "y", false, "Print the schema as YAML")
	c.Flags().StringVarP(&title, "title", "t", "", "Pick the document with this title from a multi-document file")
	c.Flags().BoolVar(&strict, "strict", false, "Reject unsupported keywords")
	return c
}

func loadSchema(path string, opt dynamic.Options) (*generable.GenerationSchema, error) {
	s, diag, err := dynamic.LoadFile(path, opt)
	if err != nil {
		return nil, err
	}
	for _, w := range diag.Warnings() {
		log.WithField("file", path).Warn(w)
	}
	return s, nil
}

func writeSchema(w io.Writer, s *generable.GenerationSchema, asYAML bool) error {
	b, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("render schema: %w", err)
	}
	if !asYAML {
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	// The rendered dictionary is ordered; going through content keeps that
	// order in the YAML output.
	c, err := generable.ParseStrict(string(b))
	if err != nil {
		return err
	}
	return writeContent(w, c, true)
}
