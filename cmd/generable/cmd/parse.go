package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	generable "github.com/reoring/generable"
)

type parseFlags struct {
	stream   int
	strict   bool
	repair   bool
	query    string
	yaml     bool
	dup      string
	maxDepth int
}

func newParseCmd() *cobra.Command {
	var f parseFlags
	c := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Parse complete or truncated model output",
		Long: `Parse reads model output from FILE (or stdin) and prints the content it
holds so far as canonical JSON, followed by whether the content is complete.

With --stream N the input is replayed in N-byte chunks and a snapshot is
printed after every chunk, the way a client rendering a streamed response
would see it.`,
		Example: `  # Best-effort content of a truncated response
  echo '{"name":"Sou' | generable parse

  # Replay a response in 8 byte chunks
  generable parse --stream 8 response.json

  # Extract a field with a jq query
  generable parse --query '.ingredients[]' response.json`,
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
			return runParse(cmd.OutOrStdout(), text, f)
		},
	}
	c.Flags().IntVarP(&f.stream, "stream", "s", 0, "Replay the input in chunks of N bytes")
	c.Flags().BoolVar(&f.strict, "strict", false, "Require complete, well-formed JSON")
	c.Flags().BoolVarP(&f.repair, "repair", "r", false, "Repair malformed JSON before giving up")
	c.Flags().StringVarP(&f.query, "query", "q", "", "Run a jq query over the parsed content")
	c.Flags().BoolVarP(&f.yaml, "yaml", "y", false, "Print content as YAML")
	c.Flags().StringVar(&f.dup, "dup", "ignore", "Duplicate key policy: ignore, warn or error")
	c.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum nesting depth (0 = unlimited)")
	return c
}

func runParse(w io.Writer, text string, f parseFlags) error {
	opt, err := parseOptFromFlags(f.repair, f.dup, f.maxDepth)
	if err != nil {
		return err
	}
	if f.stream > 0 {
		if f.strict {
			return errors.New("--stream and --strict are mutually exclusive")
		}
		return runStream(w, text, f, opt)
	}

	var c generable.GeneratedContent
	if f.strict {
		c, err = generable.ParseStrict(text, opt)
	} else {
		c, err = generable.Parse(text, opt)
	}
	if err != nil {
		if iss, ok := generable.AsIssues(err); ok {
			writeIssues(w, iss)
		}
		return err
	}
	if err := emit(w, c, f); err != nil {
		return err
	}
	writeStatus(w, c)
	return nil
}

func runStream(w io.Writer, text string, f parseFlags, opt generable.ParseOpt) error {
	acc := generable.NewAccumulator(generable.WithParseOpt(opt), generable.WithLogger(slog.Default()))
	for start := 0; start < len(text); start += f.stream {
		end := min(start+f.stream, len(text))
		acc.WriteString(text[start:end])
		c, err := acc.Snapshot()
		if err != nil {
			return fmt.Errorf("snapshot after %d bytes: %w", end, err)
		}
		if err := emit(w, c, f); err != nil {
			return err
		}
	}
	c, err := acc.Snapshot()
	if err != nil {
		return err
	}
	writeStatus(w, c)
	return nil
}

// emit prints c, or the results of the jq query over it.
func emit(w io.Writer, c generable.GeneratedContent, f parseFlags) error {
	if f.query == "" {
		return writeContent(w, c, f.yaml)
	}
	q, err := gojq.Parse(f.query)
	if err != nil {
		return fmt.Errorf("invalid jq expression %q: %w", f.query, err)
	}
	order := keyOrders{}
	order.collect(c)
	iter := q.Run(c.ToAny())
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := v.(error); ok {
			return fmt.Errorf("jq error: %w", err)
		}
		out, err := generable.From(v)
		if err != nil {
			return fmt.Errorf("jq result: %w", err)
		}
		if err := writeContent(w, order.restore(out), f.yaml); err != nil {
			return err
		}
	}
}

// keyOrders remembers the key order of every object in the queried content,
// indexed by its sorted key set. gojq works on plain maps, so query results
// come back sorted; restore maps them onto the source order where the key set
// matches. Objects the query built with new key sets keep jq's order.
type keyOrders map[string][]string

func keySet(keys []string) string {
	return strings.Join(slices.Sorted(slices.Values(keys)), "\x00")
}

func (o keyOrders) collect(c generable.GeneratedContent) {
	switch c.Kind() {
	case generable.KindObject:
		keys := c.Keys()
		if _, ok := o[keySet(keys)]; !ok {
			o[keySet(keys)] = keys
		}
		for _, v := range c.All() {
			o.collect(v)
		}
	case generable.KindArray:
		for _, v := range c.Elements() {
			o.collect(v)
		}
	}
}

func (o keyOrders) restore(c generable.GeneratedContent) generable.GeneratedContent {
	switch c.Kind() {
	case generable.KindObject:
		keys := c.Keys()
		if src, ok := o[keySet(keys)]; ok {
			keys = src
		}
		props := make([]generable.Property, 0, len(keys))
		for _, k := range keys {
			v, _ := c.Property(k)
			props = append(props, generable.Prop(k, o.restore(v)))
		}
		return generable.Object(props...)
	case generable.KindArray:
		items := c.Elements()
		for i := range items {
			items[i] = o.restore(items[i])
		}
		return generable.Array(items...)
	}
	return c
}
