// Package echomw adapts the generable body decoder to echo.
package echomw

import (
	"github.com/labstack/echo/v4"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/middleware"
)

// DecodeJSON decodes the request body with g, stores Decoded[T] in the request
// context on success, or answers with the issues payload when decoding fails.
func DecodeJSON[T any](g generable.Generable[T], opt middleware.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, err := middleware.DecodeBody(g, c.Request().Body, opt)
			if err != nil {
				return c.JSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), d)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches Decoded[T] from echo.Context.
func GetDecoded[T any](c echo.Context) (generable.Decoded[T], bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}
