package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/internal/http/dto"
	"basegraph.app/hubsync/internal/service"
)

// HubHandler serves tenant-scoped reads. Routes sit behind
// middleware.RequireTenantMember.
type HubHandler struct {
	hub service.HubService
}

func NewHubHandler(hub service.HubService) *HubHandler {
	return &HubHandler{hub: hub}
}

func (h *HubHandler) ListIssues(c *gin.Context) {
	ctx := c.Request.Context()

	filter := service.IssueFilter{
		ProjectID: c.Query("project_id"),
		TeamID:    c.Query("team_id"),
		Statuses:  queryList(c, "status"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		filter.Limit = int32(limit)
	}

	issues, err := h.hub.ListIssues(ctx, c.Param("tenant_id"), filter)
	if err != nil {
		respondError(c, "failed to list issues", err)
		return
	}
	c.JSON(http.StatusOK, dto.IssuesResponse{Issues: issues})
}

func (h *HubHandler) GetIssue(c *gin.Context) {
	issue, err := h.hub.GetIssueDetail(c.Request.Context(), c.Param("tenant_id"), c.Param("issue_key"))
	if err != nil {
		respondError(c, "failed to get issue", err)
		return
	}
	if issue == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "issue not found"})
		return
	}
	c.JSON(http.StatusOK, dto.IssueResponse{Issue: *issue})
}

func (h *HubHandler) ListComments(c *gin.Context) {
	comments, err := h.hub.ListComments(c.Request.Context(), c.Param("tenant_id"), c.Param("issue_key"))
	if err != nil {
		respondError(c, "failed to list comments", err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentsResponse{Comments: comments})
}

func (h *HubHandler) ListProjects(c *gin.Context) {
	projects, err := h.hub.ListProjects(c.Request.Context(), c.Param("tenant_id"), service.ProjectFilter{
		TeamID:   c.Query("team_id"),
		Statuses: queryList(c, "status"),
	})
	if err != nil {
		respondError(c, "failed to list projects", err)
		return
	}
	c.JSON(http.StatusOK, dto.ProjectsResponse{Projects: projects})
}

func (h *HubHandler) ListInitiatives(c *gin.Context) {
	initiatives, err := h.hub.ListInitiatives(c.Request.Context(), c.Param("tenant_id"), service.InitiativeFilter{
		Statuses: queryList(c, "status"),
	})
	if err != nil {
		respondError(c, "failed to list initiatives", err)
		return
	}
	c.JSON(http.StatusOK, dto.InitiativesResponse{Initiatives: initiatives})
}

func (h *HubHandler) ListTeams(c *gin.Context) {
	teams, err := h.hub.ListTeams(c.Request.Context(), c.Param("tenant_id"))
	if err != nil {
		respondError(c, "failed to list teams", err)
		return
	}
	c.JSON(http.StatusOK, dto.TeamsResponse{Teams: teams})
}

// queryList accepts both ?status=a&status=b and ?status=a,b.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// respondError writes the status for a service error. Unexpected errors are
// logged with msg and reported as 500.
func respondError(c *gin.Context, msg string, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrTenantUnauthorized):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: service.ErrTenantUnauthorized.Error()})
	case errors.Is(err, service.ErrIntegrationNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "integration not found"})
	case errors.Is(err, service.ErrMappingNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "mapping not found"})
	case errors.Is(err, service.ErrIntegrationDisabled):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "integration disabled"})
	case errors.Is(err, service.ErrTeamAlreadyMapped), errors.Is(err, service.ErrMappingOwnerMismatch):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		slog.ErrorContext(ctx, msg, "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "storage unavailable"})
	default:
		slog.ErrorContext(ctx, msg, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
	}
}
