package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"automarket/internal/core/auth"
	"automarket/internal/transport/http/ez"
	mdw "automarket/internal/transport/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	ez.RegisterValidators()
}

var testJWT = auth.NewJWTer("handler-test-secret", "automarket", time.Hour)

// admins 中的 uid 视为管理员
type admins map[uint]bool

func (a admins) IsAdmin(_ context.Context, uid uint) (bool, error) { return a[uid], nil }

func testGuards(adminIDs ...uint) Guards {
	a := admins{}
	for _, id := range adminIDs {
		a[id] = true
	}
	return Guards{
		Auth:  mdw.AuthJWT(testJWT),
		Admin: mdw.RequireAdmin(a, zap.NewNop()),
	}
}

func tokenFor(t *testing.T, uid uint) string {
	t.Helper()
	tok, err := testJWT.Issue(uid, "u@example.com")
	require.NoError(t, err)
	return tok
}

type call struct {
	method, path, body string
	uid                uint
	contentType        string
	raw                io.Reader
}

func serve(t *testing.T, r http.Handler, c call) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body := c.raw
	if body == nil {
		body = strings.NewReader(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	ct := c.contentType
	if ct == "" {
		ct = "application/json"
	}
	req.Header.Set("Content-Type", ct)
	if c.uid != 0 {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, c.uid))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	out := map[string]any{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}
