package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())
	router.GET("/projects/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/projects/:id", "204"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects/def", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/projects/:id", "204"))
	assert.Equal(t, 2.0, after-before)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "stockhaus_http_requests_total")
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(loginAttempts.WithLabelValues("failure"))
	RecordLogin("failure")
	assert.Equal(t, 1.0, testutil.ToFloat64(loginAttempts.WithLabelValues("failure"))-before)

	beforeRefresh := testutil.ToFloat64(metadataRefreshFailures)
	RecordMetadataRefreshFailure()
	assert.Equal(t, 1.0, testutil.ToFloat64(metadataRefreshFailures)-beforeRefresh)

	beforeReconciled := testutil.ToFloat64(reconciledProjects)
	RecordReconciled(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(reconciledProjects)-beforeReconciled)
}
