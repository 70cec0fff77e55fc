package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/internal/http/dto"
	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/service"
)

// AdminHandler manages tenant mappings and owner integrations. Routes sit
// behind middleware.RequireAdminAPIKey.
type AdminHandler struct {
	mappings     service.MappingService
	integrations service.IntegrationService
	hub          service.HubService
	backfill     service.BackfillService
}

func NewAdminHandler(
	mappings service.MappingService,
	integrations service.IntegrationService,
	hub service.HubService,
	backfill service.BackfillService,
) *AdminHandler {
	return &AdminHandler{
		mappings:     mappings,
		integrations: integrations,
		hub:          hub,
		backfill:     backfill,
	}
}

func (h *AdminHandler) UpsertMapping(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request: owner_id is required"})
		return
	}

	mapping, err := h.mappings.Upsert(ctx, service.UpsertMappingParams{
		TenantID:             c.Param("tenant_id"),
		TeamID:               c.Param("team_id"),
		OwnerID:              req.OwnerID,
		VisibleProjectIDs:    req.VisibleProjectIDs,
		VisibleInitiativeIDs: req.VisibleInitiativeIDs,
		VisibleLabelIDs:      req.VisibleLabelIDs,
	})
	if err != nil {
		respondError(c, "failed to save mapping", err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}

func (h *AdminHandler) DeactivateMapping(c *gin.Context) {
	if err := h.mappings.Deactivate(c.Request.Context(), c.Param("tenant_id"), c.Param("team_id")); err != nil {
		respondError(c, "failed to deactivate mapping", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListMappings(c *gin.Context) {
	mappings, err := h.mappings.List(c.Request.Context(), c.Param("tenant_id"))
	if err != nil {
		respondError(c, "failed to list mappings", err)
		return
	}
	c.JSON(http.StatusOK, dto.MappingsResponse{Mappings: mappings})
}

// Visibility shows the merged filters a tenant's reads are scoped by.
func (h *AdminHandler) Visibility(c *gin.Context) {
	vis, err := h.hub.Visibility(c.Request.Context(), c.Param("tenant_id"))
	if err != nil {
		respondError(c, "failed to compute visibility", err)
		return
	}
	c.JSON(http.StatusOK, vis)
}

func (h *AdminHandler) UpsertIntegration(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpsertIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request: webhook_secret is required"})
		return
	}

	integration, err := h.integrations.Upsert(ctx, service.UpsertIntegrationParams{
		OwnerID:       c.Param("owner_id"),
		WebhookSecret: req.WebhookSecret,
		APIKey:        req.APIKey,
		APIBaseURL:    req.APIBaseURL,
		Enabled:       req.Enabled,
	})
	if err != nil {
		respondError(c, "failed to save integration", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewIntegrationResponse(integration))
}

func (h *AdminHandler) GetIntegration(c *gin.Context) {
	integration, err := h.integrations.Get(c.Request.Context(), c.Param("owner_id"))
	if err != nil {
		respondError(c, "failed to get integration", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewIntegrationResponse(integration))
}

// Backfill queues a reconciliation run for the worker. With ?sync=true it
// runs in the request instead and reports per-type counts.
func (h *AdminHandler) Backfill(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := c.Param("owner_id")

	if c.Query("sync") == "true" {
		result, err := h.backfill.Run(ctx, ownerID)
		if err != nil {
			if result != nil {
				slog.WarnContext(ctx, "backfill stopped early", "owner_id", ownerID, "batches", len(result.Batches), "error", err)
			}
			respondError(c, "backfill failed", err)
			return
		}
		c.JSON(http.StatusOK, dto.NewBackfillResultResponse(result))
		return
	}

	if err := h.backfill.Enqueue(ctx, ownerID, queue.TriggerAdmin); err != nil {
		respondError(c, "failed to enqueue backfill", err)
		return
	}
	c.JSON(http.StatusAccepted, dto.BackfillEnqueuedResponse{OwnerID: ownerID, Status: "queued"})
}
