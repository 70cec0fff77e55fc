package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/internal/http/handler"
	"basegraph.app/hubsync/internal/http/handler/webhook"
)

func AdminRouter(rg *gin.RouterGroup, h *handler.AdminHandler) {
	tenants := rg.Group("/tenants/:tenant_id")
	{
		tenants.GET("/mappings", h.ListMappings)
		tenants.PUT("/mappings/:team_id", h.UpsertMapping)
		tenants.DELETE("/mappings/:team_id", h.DeactivateMapping)
		tenants.GET("/visibility", h.Visibility)
	}

	integrations := rg.Group("/integrations/:owner_id")
	{
		integrations.GET("", h.GetIntegration)
		integrations.PUT("", h.UpsertIntegration)
		integrations.POST("/backfill", h.Backfill)
	}
}

// WebhookRouter mounts tracker webhooks. They authenticate by signature,
// not by header key.
func WebhookRouter(rg *gin.RouterGroup, h *webhook.LinearWebhookHandler) {
	rg.POST("/linear/:owner_id", h.HandleEvent)
}
