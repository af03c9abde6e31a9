package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	g "github.com/reoring/generable/dsl"
	"github.com/reoring/generable/middleware"
	ginmw "github.com/reoring/generable/middleware/gin"
)

type note struct {
	Text string `json:"text"`
}

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	conv := g.ObjectOf[note]("Note", g.PropOf(g.String(), func(n *note) *string { return &n.Text })).MustBind()
	r := gin.New()
	r.POST("/notes", ginmw.DecodeJSON(conv, middleware.DefaultOptions()), func(c *gin.Context) {
		d, ok := ginmw.GetDecoded[note](c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, d.Value.Text)
	})
	return r
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		body   string
		status int
		want   string
	}{
		{`{"text":"hi"}`, http.StatusOK, "hi"},
		{`{"text":1}`, http.StatusBadRequest, `"invalid_type"`},
		{`{"text":"h`, http.StatusBadRequest, `"truncated"`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(tt.body)))
		if rec.Code != tt.status || !strings.Contains(rec.Body.String(), tt.want) {
			t.Fatalf("%s: status=%d body=%s", tt.body, rec.Code, rec.Body.String())
		}
	}
}
