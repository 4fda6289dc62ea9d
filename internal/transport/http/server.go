// ABOUTME: HTTP router exposing the rule store, prompt assembly and page generation
// ABOUTME: Handlers share one bootstrap.App
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/harper/pagesmith/internal/bootstrap"
	"github.com/harper/pagesmith/internal/transport/http/handler"
	"github.com/harper/pagesmith/internal/transport/http/middleware"
)

// NewRouter builds the gin engine for app
func NewRouter(app *bootstrap.App) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(app.Logger.Named("http")), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	rulesHandler := handler.NewRulesHandler(app)
	pagesHandler := handler.NewPagesHandler(app)

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")
	rulesGroup := v1.Group("/rules")
	rulesGroup.GET("/status", rulesHandler.Status)
	rulesGroup.POST("/build", rulesHandler.Build)
	rulesGroup.POST("/query", rulesHandler.Query)

	v1.POST("/prompt", pagesHandler.Prompt)
	v1.POST("/pages/generate", pagesHandler.Generate)
	v1.POST("/tone", pagesHandler.Tone)

	return router
}
