// Package middleware decodes model-produced JSON request bodies (tool-call
// arguments forwarded by an agent runtime, structured output posted back by a
// worker) into typed values at HTTP boundaries. Framework adapters live in the
// echo and gin sub-modules.
package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"

	generable "github.com/reoring/generable"
)

// ctxKeyDecoded is a typed context key for storing Decoded[T].
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a Decoded[T] to the context.
func ContextWithDecoded[T any](ctx context.Context, d generable.Decoded[T]) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, d)
}

// DecodedFromContext retrieves a Decoded[T] from context.
func DecodedFromContext[T any](ctx context.Context) (generable.Decoded[T], bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(generable.Decoded[T])
	return v, ok
}

// Options controls body decoding.
type Options struct {
	Parse generable.ParseOpt
	// Tolerant accepts truncated bodies (a partial snapshot of a stream).
	// The default is strict parsing.
	Tolerant bool
	// MaxBodyBytes caps the body size (0 = unlimited).
	MaxBodyBytes int64
}

// DefaultOptions returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors and bodies are capped at 1 MiB.
func DefaultOptions() Options {
	return Options{
		Parse:        generable.ParseOpt{Strictness: generable.Strictness{OnDuplicateKey: generable.Error}},
		MaxBodyBytes: 1 << 20,
	}
}

// ErrBodyTooLarge is returned when a body exceeds Options.MaxBodyBytes.
var ErrBodyTooLarge = errors.New("middleware: request body too large")

// DecodeBody reads r, parses it and converts the content with g.
func DecodeBody[T any](g generable.Generable[T], r io.Reader, opt Options) (generable.Decoded[T], error) {
	if opt.MaxBodyBytes > 0 {
		r = io.LimitReader(r, opt.MaxBodyBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return generable.Decoded[T]{}, err
	}
	if opt.MaxBodyBytes > 0 && int64(len(b)) > opt.MaxBodyBytes {
		return generable.Decoded[T]{}, ErrBodyTooLarge
	}
	parse := generable.ParseStrict
	if opt.Tolerant {
		parse = generable.Parse
	}
	c, err := parse(string(b), opt.Parse)
	if err != nil {
		return generable.Decoded[T]{}, err
	}
	return generable.DecodeWithMeta(g, c)
}

// ErrorPayload shapes an error for JSON responses: Issues are listed, other
// errors become a single message.
func ErrorPayload(err error) map[string]any {
	if iss, ok := generable.AsIssues(err); ok {
		return map[string]any{"issues": iss}
	}
	return map[string]any{"error": err.Error()}
}

// StatusFor maps a decoding error to an HTTP status.
func StatusFor(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// WriteError writes ErrorPayload(err) with StatusFor(err).
func WriteError(w http.ResponseWriter, err error) {
	b, mErr := gojson.Marshal(ErrorPayload(err))
	if mErr != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(err))
	_, _ = w.Write(b)
}

// DecodeJSON is net/http middleware that decodes the request body with g and
// stores the Decoded[T] in the request context. Failures answer 400 (or 413)
// with the issues and do not reach next.
func DecodeJSON[T any](g generable.Generable[T], opt Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := DecodeBody(g, r.Body, opt)
			if err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), d)))
		})
	}
}
