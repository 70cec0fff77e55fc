package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/hubsync/core/config"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/workos/workos-go/v6/pkg/usermanagement"
)

const membershipCacheSize = 4096

// MembershipChecker answers whether a user belongs to a hub tenant. role is
// optional; when set the membership must carry that role.
type MembershipChecker interface {
	IsMember(ctx context.Context, tenantID, userID, role string) (bool, error)
}

// MembershipLister lists organization memberships. usermanagement.ListOrganizationMemberships
// satisfies it.
type MembershipLister func(ctx context.Context, opts usermanagement.ListOrganizationMembershipsOpts) (usermanagement.ListOrganizationMembershipsResponse, error)

type workOSMembershipChecker struct {
	list  MembershipLister
	cache *expirable.LRU[string, bool]
}

// NewWorkOSMembershipChecker treats a tenant id as a WorkOS organization id.
func NewWorkOSMembershipChecker(cfg config.WorkOSConfig) MembershipChecker {
	usermanagement.SetAPIKey(cfg.APIKey)
	return NewMembershipChecker(usermanagement.ListOrganizationMemberships, cfg.MembershipCacheTTL)
}

// NewMembershipChecker caches decisions for ttl; a zero ttl disables caching.
func NewMembershipChecker(list MembershipLister, ttl time.Duration) MembershipChecker {
	c := &workOSMembershipChecker{list: list}
	if ttl > 0 {
		c.cache = expirable.NewLRU[string, bool](membershipCacheSize, nil, ttl)
	}
	return c
}

func (c *workOSMembershipChecker) IsMember(ctx context.Context, tenantID, userID, role string) (bool, error) {
	if tenantID == "" || userID == "" {
		return false, nil
	}

	key := tenantID + "\x00" + userID + "\x00" + role
	if c.cache != nil {
		if member, ok := c.cache.Get(key); ok {
			return member, nil
		}
	}

	resp, err := c.list(ctx, usermanagement.ListOrganizationMembershipsOpts{
		OrganizationID: tenantID,
		UserID:         userID,
	})
	if err != nil {
		return false, fmt.Errorf("listing organization memberships: %w", err)
	}

	member := false
	for _, m := range resp.Data {
		if m.OrganizationID != tenantID || m.UserID != userID {
			continue
		}
		if string(m.Status) != "active" {
			continue
		}
		if role != "" && m.Role.Slug != role {
			continue
		}
		member = true
		break
	}

	if c.cache != nil {
		c.cache.Add(key, member)
	}
	if !member {
		slog.DebugContext(ctx, "hub membership denied", "tenant_id", tenantID, "user_id", userID)
	}
	return member, nil
}
