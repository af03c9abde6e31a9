package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	g "github.com/reoring/generable/dsl"
	"github.com/reoring/generable/middleware"
	echomw "github.com/reoring/generable/middleware/echo"
)

type note struct {
	Text string `json:"text"`
}

func TestDecodeJSON(t *testing.T) {
	conv := g.ObjectOf[note]("Note", g.PropOf(g.String(), func(n *note) *string { return &n.Text })).MustBind()
	e := echo.New()
	e.POST("/notes", func(c echo.Context) error {
		d, ok := echomw.GetDecoded[note](c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, d.Value.Text)
	}, echomw.DecodeJSON(conv, middleware.DefaultOptions()))

	tests := []struct {
		body   string
		status int
		want   string
	}{
		{`{"text":"hi"}`, http.StatusOK, "hi"},
		{`{}`, http.StatusBadRequest, `"required"`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(tt.body)))
		if rec.Code != tt.status || !strings.Contains(rec.Body.String(), tt.want) {
			t.Fatalf("%s: status=%d body=%s", tt.body, rec.Code, rec.Body.String())
		}
	}
}
