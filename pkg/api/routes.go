package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saral-ai/landing/pkg/views"
)

// RegisterRoutes wires the page, form actions and JSON API onto the router
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.HealthCheck)
	router.StaticFS("/static", http.FS(views.Static()))

	page := router.Group("/", h.Session)
	page.GET("/", h.LandingPage)
	page.POST("/access/open", h.OpenAccess)
	page.POST("/access/close", h.CloseAccess)
	page.POST("/access/step", h.StepAccess)

	api := router.Group("/api/access", h.Session)
	api.GET("", h.GetAccessState)
	api.POST("/open", h.OpenAccessJSON)
	api.POST("/close", h.CloseAccessJSON)
	api.PUT("/fields", h.UpdateField)
	api.POST("/advance", h.Advance)
	api.POST("/retreat", h.Retreat)
	api.POST("/submit", h.Submit)
}
