package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/internal/http/dto"
	"basegraph.app/hubsync/internal/service"
)

const maxBodyBytes = 5 << 20

type LinearWebhookHandler struct {
	ingest          service.IngestService
	signatureHeader string
	deliveryHeader  string
}

func NewLinearWebhookHandler(ingest service.IngestService, signatureHeader, deliveryHeader string) *LinearWebhookHandler {
	return &LinearWebhookHandler{
		ingest:          ingest,
		signatureHeader: signatureHeader,
		deliveryHeader:  deliveryHeader,
	}
}

// HandleEvent verifies and applies one delivery. The body is read raw: the
// signature covers the exact bytes sent.
func (h *LinearWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := c.Param("owner_id")

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failed to read request body"})
		return
	}

	result, err := h.ingest.Ingest(ctx, service.IngestParams{
		OwnerID:    ownerID,
		RawBody:    body,
		Signature:  c.GetHeader(h.signatureHeader),
		DeliveryID: c.GetHeader(h.deliveryHeader),
	})
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "webhook delivery failed", "owner_id", ownerID, "error", err)
		}
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{
		Status:     "ok",
		Outcome:    result.Outcome,
		EntityType: result.EntityType,
		NaturalKey: result.NaturalKey,
	})
}

// statusFor maps ingestion errors so the tracker retries only what can
// succeed on a later attempt.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSignatureInvalid), errors.Is(err, service.ErrSignatureMalformed):
		return http.StatusUnauthorized, "invalid signature"
	case errors.Is(err, service.ErrMalformedPayload):
		return http.StatusBadRequest, "malformed payload"
	case errors.Is(err, service.ErrIntegrationNotFound):
		return http.StatusNotFound, "integration not found"
	case errors.Is(err, service.ErrIntegrationDisabled):
		return http.StatusConflict, "integration disabled"
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, "failed to process delivery"
	}
}
