package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/internal/http/dto"
	"basegraph.app/hubsync/internal/model"
)

// SchemaSource publishes JSON schemas. *schema.Validator satisfies it.
type SchemaSource interface {
	EnvelopeSchema() []byte
	CanonicalSchema(entityType model.EntityType) ([]byte, bool)
}

type SchemaHandler struct {
	schemas SchemaSource
}

func NewSchemaHandler(schemas SchemaSource) *SchemaHandler {
	return &SchemaHandler{schemas: schemas}
}

// Get serves the schema of a canonical shape, or of the webhook envelope
// for :entity "envelope".
func (h *SchemaHandler) Get(c *gin.Context) {
	name := c.Param("entity")
	if name == "envelope" {
		c.Data(http.StatusOK, "application/schema+json", h.schemas.EnvelopeSchema())
		return
	}

	entityType, ok := model.ParseEntityType(name)
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "unknown entity type"})
		return
	}
	doc, ok := h.schemas.CanonicalSchema(entityType)
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "unknown entity type"})
		return
	}
	c.Data(http.StatusOK, "application/schema+json", doc)
}
