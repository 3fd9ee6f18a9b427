package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/stockhaus/stockhaus-backend/internal/api/http"
	"github.com/stockhaus/stockhaus-backend/internal/api/http/middleware"
	authhttp "github.com/stockhaus/stockhaus-backend/internal/auth/http"
	authmw "github.com/stockhaus/stockhaus-backend/internal/auth/middleware"
	"github.com/stockhaus/stockhaus-backend/internal/metrics"
	paintinghttp "github.com/stockhaus/stockhaus-backend/internal/paintings/http"
	projecthttp "github.com/stockhaus/stockhaus-backend/internal/projects/http"
)

// AuthService issues sessions and resolves bearer tokens.
type AuthService interface {
	authhttp.Service
	authmw.Authenticator
}

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	BodyLimit   int64
	Log         logrus.FieldLogger
	DB          httpapi.Pinger
	Limiter     *middleware.RateLimiter

	Auth      AuthService
	Projects  projecthttp.Service
	Paintings paintinghttp.Service
}

// BuildRouter mounts every route at both / and /api.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			dep.Log.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"panic":      recovered,
			}).Error("panic recovered")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}),
		middleware.RequestID(dep.Log),
		metrics.Middleware(),
		middleware.CORS(dep.CORSOrigins),
		middleware.BodyLimit(dep.BodyLimit),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	health := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	requireSession := authmw.SessionAuthMiddleware(dep.Auth, dep.Log)
	limit := func(c *gin.Context) { c.Next() }
	if dep.Limiter != nil {
		limit = dep.Limiter.Middleware()
	}

	authHandler := authhttp.New(dep.Auth, dep.Log)
	projectHandler := projecthttp.New(dep.Projects, dep.Log)
	paintingHandler := paintinghttp.New(dep.Paintings, dep.Log)

	for _, base := range []string{"/", "/api"} {
		root := r.Group(base)
		health.RegisterRoutes(root)
		root.GET("/cors-test", httpapi.CORSCheck(dep.CORSOrigins))

		authHandler.Register(root.Group("/auth", limit), requireSession)

		projects := root.Group("/projects", requireSession, limit)
		projectHandler.Register(projects)
		paintingHandler.RegisterProjectsSubroutes(projects)
	}

	return r
}
