package generable

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options. The zero value parses tolerantly with no
// depth limit, last-write-wins duplicate keys and no repair.
type ParseOpt struct {
	Strictness Strictness
	// MaxDepth limits container nesting (0 = unlimited).
	MaxDepth int
	// IssueSink receives non-fatal issues such as duplicate keys under Warn.
	IssueSink func(Issue)
	// Repair retries a malformed text after running it through a JSON repairer.
	// Truncated text never needs repair.
	Repair bool
}

func pickOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
