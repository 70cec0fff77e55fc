package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/internal/service"
)

const (
	AdminAPIKeyHeader = "X-Admin-API-Key"
	HubUserHeader     = "X-Hub-User-ID"
)

// RequireAdminAPIKey rejects requests without the configured admin key. An
// empty key closes the admin API entirely.
func RequireAdminAPIKey(adminAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminAPIKeyHeader)
		if adminAPIKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(adminAPIKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireTenantMember admits the caller named by X-Hub-User-ID only when
// they belong to the :tenant_id in the path. Every refusal gets the same
// body so callers cannot probe which tenants exist.
func RequireTenantMember(checker service.MembershipChecker, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.Param("tenant_id")
		userID := c.GetHeader(HubUserHeader)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			TenantID:  &tenantID,
			Component: "hubsync.http.membership",
		})
		c.Request = c.Request.WithContext(ctx)

		if tenantID == "" || userID == "" {
			forbid(c)
			return
		}

		member, err := checker.IsMember(ctx, tenantID, userID, role)
		if err != nil {
			slog.ErrorContext(ctx, "membership check failed", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "membership check unavailable"})
			return
		}
		if !member {
			forbid(c)
			return
		}
		c.Next()
	}
}

func forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrTenantUnauthorized.Error()})
}
