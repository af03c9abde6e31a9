package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"

	generable "github.com/reoring/generable"
)

// readInput reads the named file, or the command's stdin for "" and "-".
func readInput(in io.Reader, name string) (string, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(in)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

func parseOptFromFlags(repair bool, dup string, maxDepth int) (generable.ParseOpt, error) {
	opt := generable.ParseOpt{Repair: repair, MaxDepth: maxDepth}
	switch strings.ToLower(dup) {
	case "", "ignore":
		opt.Strictness.OnDuplicateKey = generable.Ignore
	case "warn":
		opt.Strictness.OnDuplicateKey = generable.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = generable.Error
	default:
		return opt, fmt.Errorf("unknown --dup policy %q (want ignore, warn or error)", dup)
	}
	opt.IssueSink = func(it generable.Issue) {
		log.WithFields(log.Fields{"path": it.Path, "code": it.Code}).Warn(it.Message)
	}
	return opt, nil
}
