package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"automarket/internal/core/auth"
	"automarket/internal/core/config"
	"automarket/internal/transport/http/handler"
	mdw "automarket/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

// stubModule 记录挂载顺序，并注册一个会 panic 的路由
type stubModule struct {
	name  string
	prio  int
	order *[]string
}

func (p stubModule) Priority() int { return p.prio }

func (p stubModule) MountAPI(g *gin.RouterGroup) {
	*p.order = append(*p.order, p.name)
	g.GET("/"+p.name, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"module": p.name}) })
	g.GET("/"+p.name+"/boom", func(*gin.Context) { panic("kaboom") })
}

type adminStub struct{}

func (adminStub) MountAdmin(g *gin.RouterGroup) {
	g.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"pong": true}) })
}

type onlyAdmin uint

func (a onlyAdmin) IsAdmin(_ context.Context, uid uint) (bool, error) { return uid == uint(a), nil }

var jwter = auth.NewJWTer("router-test-secret", "automarket", time.Hour)

func testDeps(order *[]string) Deps {
	return Deps{
		Log: zap.NewNop(),
		App: config.App{
			Env:  "production",
			HTTP: config.HTTP{Port: 3001},
			CORS: config.CORS{Origins: []string{"http://localhost:5173"}},
		},
		Guards: handler.Guards{
			Auth:  mdw.AuthJWT(jwter),
			Admin: mdw.RequireAdmin(onlyAdmin(9), zap.NewNop()),
		},
		Modules: NewRegistry(
			stubModule{name: "second", prio: 20, order: order},
			stubModule{name: "first", prio: 10, order: order},
			adminStub{},
		),
	}
}

func get(t *testing.T, r http.Handler, path string, uid uint) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if uid != 0 {
		tok, err := jwter.Issue(uid, "u@example.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestRegistryMountsByPriority(t *testing.T) {
	var order []string
	NewAPIEngine(testDeps(&order))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAPIEngineHealthAndFallback(t *testing.T) {
	var order []string
	r := NewAPIEngine(testDeps(&order))

	w, b := get(t, r, "/health", 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", b["status"])
	_, err := time.Parse(time.RFC3339Nano, b["timestamp"].(string))
	assert.NoError(t, err)
	assert.NotEmpty(t, w.Header().Get(mdw.HeaderRequestID))

	_, b = get(t, r, "/api/health", 0)
	assert.Equal(t, "AutoMarket API is running!", b["message"])

	w, b = get(t, r, "/api/nowhere", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", b["error"])

	req := httptest.NewRequest(http.MethodPatch, "/api/first", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIEngineRecoversPanics(t *testing.T) {
	var order []string
	w, b := get(t, NewAPIEngine(testDeps(&order)), "/api/first/boom", 0)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong!", b["error"])
	assert.Equal(t, "Internal server error", b["message"])
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	var order []string
	for name, r := range map[string]*gin.Engine{
		"api":   NewAPIEngine(testDeps(&order)),
		"admin": NewAdminEngine(testDeps(&order)),
	} {
		t.Run(name, func(t *testing.T) {
			w, _ := get(t, r, "/api/admin/ping", 0)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			w, _ = get(t, r, "/api/admin/ping", 1)
			assert.Equal(t, http.StatusForbidden, w.Code)
			w, b := get(t, r, "/api/admin/ping", 9)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, b["pong"])
		})
	}
}

func TestAdminEngineHasNoPublicAPI(t *testing.T) {
	var order []string
	r := NewAdminEngine(testDeps(&order))
	assert.Empty(t, order)
	w, _ := get(t, r, "/api/first", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, b := get(t, r, "/api/health", 0)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AutoMarket API is running!", b["message"])
}
