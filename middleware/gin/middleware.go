// Package ginmw adapts the generable body decoder to gin.
package ginmw

import (
	"github.com/gin-gonic/gin"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/middleware"
)

// DecodeJSON decodes the request body with g, stores Decoded[T] in the request
// context, and aborts with the issues payload when decoding fails.
func DecodeJSON[T any](g generable.Generable[T], opt middleware.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := middleware.DecodeBody(g, c.Request.Body, opt)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), d))
		c.Next()
	}
}

// GetDecoded fetches Decoded[T] from gin.Context.
func GetDecoded[T any](c *gin.Context) (generable.Decoded[T], bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}
