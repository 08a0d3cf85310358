package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mediscribe/mediscribe-api/internal/container"
	handlers "github.com/mediscribe/mediscribe-api/internal/interface/http"
	"github.com/mediscribe/mediscribe-api/internal/interface/middleware"
)

// PatientModule wires the patient roster endpoints. Every route is gated.
type PatientModule struct {
	Handler *handlers.PatientHandler
}

func NewPatientModule(h *handlers.PatientHandler) *PatientModule {
	return &PatientModule{Handler: h}
}

func (m *PatientModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(container.GetTokenCodec(), userRepo()))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/patients", m.Handler.List)
		auth.POST("/patients", m.Handler.Create)
		auth.GET("/patients/search", m.Handler.Search)
		auth.GET("/patients/:id", m.Handler.Get)
		auth.PUT("/patients/:id", m.Handler.Update)
		auth.DELETE("/patients/:id", m.Handler.Delete)
		auth.GET("/patients/:id/documents", m.Handler.ListDocuments)
		auth.POST("/patients/:id/documents", m.Handler.UploadDocument)
	}
}
