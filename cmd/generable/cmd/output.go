package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	generable "github.com/reoring/generable"
)

var (
	completeColor = color.New(color.FgHiGreen, color.Bold)
	partialColor  = color.New(color.FgHiYellow)
	issueColor    = color.New(color.FgHiRed)
)

// writeContent prints c as canonical JSON, or as YAML with key order kept.
func writeContent(w io.Writer, c generable.GeneratedContent, asYAML bool) error {
	if !asYAML {
		_, err := fmt.Fprintln(w, generable.Render(c))
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(c)); err != nil {
		return err
	}
	return enc.Close()
}

func yamlNode(c generable.GeneratedContent) *yaml.Node {
	switch c.Kind() {
	case generable.KindBool:
		b, _ := c.BoolValue()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(b)}
	case generable.KindNumber:
		f, _ := c.Float()
		tag := "!!float"
		if _, ok := c.Int64(); ok {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: generable.FormatNumber(f)}
	case generable.KindString:
		s, _ := c.Text()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case generable.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range c.Elements() {
			n.Content = append(n.Content, yamlNode(el))
		}
		return n
	case generable.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, v := range c.All() {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, yamlNode(v))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// writeStatus prints the completeness marker of a snapshot.
func writeStatus(w io.Writer, c generable.GeneratedContent) {
	if c.IsComplete() {
		completeColor.Fprintln(w, "complete")
		return
	}
	partialColor.Fprintln(w, "partial")
}

func writeIssues(w io.Writer, iss generable.Issues) {
	for _, it := range iss {
		issueColor.Fprintf(w, "%s: %s: %s\n", it.Path, it.Code, it.Message)
	}
}
