package dynamic

import "fmt"

// Options controls how definition documents are loaded.
type Options struct {
	// Strict turns unsupported keywords into errors instead of warnings.
	Strict bool
	// Title selects a document by its title in a multi-document YAML stream.
	// Empty picks the first document.
	Title string
}

// Diag carries non-fatal warnings produced while loading.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

func pickOpts(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}
