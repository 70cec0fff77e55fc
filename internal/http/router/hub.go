package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/internal/http/handler"
)

// HubRouter expects rg to carry the :tenant_id param and membership check.
func HubRouter(rg *gin.RouterGroup, h *handler.HubHandler) {
	rg.GET("/issues", h.ListIssues)
	rg.GET("/issues/:issue_key", h.GetIssue)
	rg.GET("/issues/:issue_key/comments", h.ListComments)
	rg.GET("/projects", h.ListProjects)
	rg.GET("/initiatives", h.ListInitiatives)
	rg.GET("/teams", h.ListTeams)
}

func SchemaRouter(rg *gin.RouterGroup, h *handler.SchemaHandler) {
	rg.GET("/:entity", h.Get)
}
