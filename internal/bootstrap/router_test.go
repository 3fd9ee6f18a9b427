package bootstrap

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockhaus/stockhaus-backend/internal/api/http/middleware"
	authdomain "github.com/stockhaus/stockhaus-backend/internal/auth/domain"
	"github.com/stockhaus/stockhaus-backend/internal/logging"
	paintingdomain "github.com/stockhaus/stockhaus-backend/internal/paintings/domain"
	paintinghttp "github.com/stockhaus/stockhaus-backend/internal/paintings/http"
	projectdomain "github.com/stockhaus/stockhaus-backend/internal/projects/domain"
	projecthttp "github.com/stockhaus/stockhaus-backend/internal/projects/http"
)

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, username, password, _ string) (*authdomain.Session, error) {
	if username != "admin" || password != "admin123" {
		return nil, authdomain.ErrInvalidCredentials
	}
	return &authdomain.Session{Token: "good", Username: username, UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (fakeAuth) Authenticate(_ context.Context, token string) (authdomain.Identity, error) {
	if token != "good" {
		return authdomain.Identity{}, authdomain.ErrInvalidToken
	}
	return authdomain.Identity{UserID: "u1", Username: "admin"}, nil
}

type fakeProjects struct{ projecthttp.Service }

func (fakeProjects) List(context.Context, string) ([]projectdomain.Project, error) {
	return nil, nil
}

type fakePaintings struct{ paintinghttp.Service }

func (fakePaintings) Stats(_ context.Context, _, projectID string) (*paintingdomain.Stats, error) {
	if projectID != "p1" {
		return nil, projectdomain.ErrNotFound
	}
	return &paintingdomain.Stats{UniqueTitles: 1, TotalItems: 2, TotalValue: 200}, nil
}

func testRouter(limiter *middleware.RateLimiter) *gin.Engine {
	SetGinMode("test")
	return BuildRouter(RouterDeps{
		ServiceName: "stockhaus-api",
		Version:     "test",
		CORSOrigins: []string{"http://localhost:5173"},
		BodyLimit:   1 << 20,
		Log:         logging.Nop(),
		Limiter:     limiter,
		Auth:        fakeAuth{},
		Projects:    fakeProjects{},
		Paintings:   fakePaintings{},
	})
}

func call(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestBuildRouter_MountsUnderRootAndAPI(t *testing.T) {
	r := testRouter(nil)

	for _, base := range []string{"", "/api"} {
		t.Run("base="+base, func(t *testing.T) {
			rr := call(r, http.MethodGet, base+"/health", "", "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

			rr = call(r, http.MethodPost, base+"/auth/login", "", `{"username":"admin","password":"admin123"}`)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"token":"good","username":"admin"}`, rr.Body.String())

			rr = call(r, http.MethodGet, base+"/auth/me", "good", "")
			assert.JSONEq(t, `{"username":"admin"}`, rr.Body.String())

			rr = call(r, http.MethodGet, base+"/projects", "good", "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "[]", rr.Body.String())

			rr = call(r, http.MethodGet, base+"/projects/p1/stats", "good", "")
			assert.JSONEq(t, `{"uniqueTitles":1,"totalItems":2,"totalValue":200}`, rr.Body.String())
		})
	}
}

func TestBuildRouter_RequiresSession(t *testing.T) {
	r := testRouter(nil)

	for _, tc := range []struct{ method, path, token string }{
		{http.MethodGet, "/api/projects", ""},
		{http.MethodGet, "/api/projects", "forged"},
		{http.MethodGet, "/api/auth/me", ""},
		{http.MethodGet, "/projects/p1/paintings", "expired"},
		{http.MethodDelete, "/projects/p1", ""},
	} {
		rr := call(r, tc.method, tc.path, tc.token, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
		assert.JSONEq(t, `{"message":"Invalid or expired token"}`, rr.Body.String())
	}

	rr := call(r, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBuildRouter_MetricsAndNotFound(t *testing.T) {
	r := testRouter(nil)

	rr := call(r, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rr.Body.String())

	call(r, http.MethodGet, "/health", "", "")
	rr = call(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "stockhaus_http_requests_total")
}

func TestBuildRouter_RateLimitsLogin(t *testing.T) {
	r := testRouter(middleware.NewRateLimiter(0.001, 2, logging.Nop()))

	body := `{"username":"admin","password":"nope"}`
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/auth/login", "", body).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/auth/login", "", body).Code)
	rr := call(r, http.MethodPost, "/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.JSONEq(t, `{"message":"Too many requests"}`, rr.Body.String())
}

func TestOpenRedis_Disabled(t *testing.T) {
	client, err := OpenRedis(context.Background(), configRedis(""))
	require.NoError(t, err)
	assert.Nil(t, client)
}
