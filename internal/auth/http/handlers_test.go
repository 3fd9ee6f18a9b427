package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockhaus/stockhaus-backend/internal/auth"
	"github.com/stockhaus/stockhaus-backend/internal/auth/domain"
	"github.com/stockhaus/stockhaus-backend/internal/logging"
)

type fakeAuthService struct {
	gotUser, gotPass string
	err              error
}

func (f *fakeAuthService) Login(_ context.Context, username, password, _ string) (*domain.Session, error) {
	f.gotUser, f.gotPass = username, password
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Session{Token: "tok", Username: username, UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	requireSession := func(c *gin.Context) {
		auth.SetIdentity(c, domain.Identity{UserID: "u-1", Username: "alice"})
		c.Next()
	}
	New(svc, logging.Nop()).Register(router.Group("/auth"), requireSession)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestLogin_Success(t *testing.T) {
	svc := &fakeAuthService{}
	router := setupRouter(svc)

	rr := postJSON(router, "/auth/login", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, map[string]any{"token": "tok", "username": "alice"}, resp)
	assert.Equal(t, "secret", svc.gotPass)
}

func TestLogin_Failures(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		router := setupRouter(&fakeAuthService{err: domain.ErrInvalidCredentials})
		rr := postJSON(router, "/auth/login", `{"username":"alice","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials"}`, rr.Body.String())
	})

	t.Run("throttled", func(t *testing.T) {
		router := setupRouter(&fakeAuthService{err: domain.ErrTooManyAttempts})
		rr := postJSON(router, "/auth/login", `{"username":"alice","password":"nope"}`)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := setupRouter(&fakeAuthService{})
		rr := postJSON(router, "/auth/login", `{"username":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"message":"Username and password are required"}`, rr.Body.String())
	})
}

func TestMe(t *testing.T) {
	router := setupRouter(&fakeAuthService{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"username":"alice"}`, rr.Body.String())
}
