package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/justute/tutorboard-api/internal/middleware"
	"github.com/justute/tutorboard-api/internal/service"
)

// Handlers groups every HTTP handler registered on the router.
type Handlers struct {
	Auth    *AuthHandler
	Session *SessionHandler
	Student *StudentHandler
	Agenda  *AgendaHandler
	Export  *ExportHandler
	Metrics *MetricsHandler
}

// Register mounts all routes under the API prefix. Everything but auth,
// health and metrics requires a valid access token.
func Register(r *gin.Engine, prefix string, auth *service.AuthService, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	protected := api.Group("")
	protected.Use(middleware.JWT(auth))

	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/sessions", h.Session.List)
	protected.POST("/sessions", h.Session.Create)
	protected.GET("/sessions/:id", h.Session.Get)
	protected.PATCH("/sessions/:id", h.Session.Update)
	protected.DELETE("/sessions/:id", h.Session.Delete)

	protected.GET("/students", h.Student.List)
	protected.POST("/students", h.Student.Create)
	protected.GET("/students/:id", h.Student.Get)

	protected.GET("/agenda/day", h.Agenda.Day)
	protected.GET("/agenda/month", h.Agenda.Month)
	protected.GET("/agenda/export", h.Agenda.Export)

	if h.Export != nil {
		api.GET("/export/:token", h.Export.Download)
		protected.POST("/agenda/exports", h.Export.Create)
		protected.GET("/agenda/exports/:id", h.Export.Get)
	}
}
