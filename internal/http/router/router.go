package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/internal/http/handler"
	"basegraph.app/hubsync/internal/http/handler/webhook"
	"basegraph.app/hubsync/internal/http/middleware"
	"basegraph.app/hubsync/internal/service"
)

type RouterConfig struct {
	AdminAPIKey string
	// MemberRole, when set, is required of hub readers.
	MemberRole      string
	SignatureHeader string
	DeliveryHeader  string
	Schemas         handler.SchemaSource
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	webhookHandler := webhook.NewLinearWebhookHandler(services.Ingest(), cfg.SignatureHeader, cfg.DeliveryHeader)
	WebhookRouter(router.Group("/webhooks"), webhookHandler)

	v1 := router.Group("/api/v1")
	{
		hubHandler := handler.NewHubHandler(services.Hub())
		hubs := v1.Group("/hubs/:tenant_id")
		hubs.Use(middleware.RequireTenantMember(services.Membership(), cfg.MemberRole))
		HubRouter(hubs, hubHandler)

		if cfg.Schemas != nil {
			SchemaRouter(v1.Group("/schemas"), handler.NewSchemaHandler(cfg.Schemas))
		}

		adminHandler := handler.NewAdminHandler(
			services.Mappings(),
			services.Integrations(),
			services.Hub(),
			services.Backfill(),
		)
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdminAPIKey(cfg.AdminAPIKey))
		AdminRouter(admin, adminHandler)
	}
}
