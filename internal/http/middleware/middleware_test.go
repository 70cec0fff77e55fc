package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/hubsync/internal/http/middleware"
)

type fakeChecker struct {
	members map[string]bool
	err     error
	role    string
}

func (f *fakeChecker) IsMember(_ context.Context, tenantID, userID, role string) (bool, error) {
	f.role = role
	if f.err != nil {
		return false, f.err
	}
	return f.members[tenantID+"/"+userID], nil
}

var _ = Describe("middleware", func() {
	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
	})

	Describe("RequestID", func() {
		var router *gin.Engine

		BeforeEach(func() {
			router = gin.New()
			router.Use(middleware.RequestID())
			router.GET("/", func(c *gin.Context) {
				c.String(http.StatusOK, middleware.GetRequestID(c))
			})
		})

		It("mints a uuid when none is sent", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			id := w.Header().Get(middleware.RequestIDHeader)
			_, err := uuid.Parse(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Body.String()).To(Equal(id))
		})

		It("keeps a caller supplied id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "req-42")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-42"))
		})
	})

	Describe("RequireAdminAPIKey", func() {
		serve := func(key, sent string) int {
			router := gin.New()
			router.Use(middleware.RequireAdminAPIKey(key))
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if sent != "" {
				req.Header.Set(middleware.AdminAPIKeyHeader, sent)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code
		}

		It("admits the configured key", func() {
			Expect(serve("secret", "secret")).To(Equal(http.StatusOK))
		})

		It("rejects a wrong or missing key", func() {
			Expect(serve("secret", "nope")).To(Equal(http.StatusUnauthorized))
			Expect(serve("secret", "")).To(Equal(http.StatusUnauthorized))
		})

		It("closes the admin API when no key is configured", func() {
			Expect(serve("", "")).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("RequireTenantMember", func() {
		var (
			router  *gin.Engine
			checker *fakeChecker
		)

		BeforeEach(func() {
			checker = &fakeChecker{members: map[string]bool{"hub_1/user_1": true}}
			router = gin.New()
			hubs := router.Group("/hubs/:tenant_id")
			hubs.Use(middleware.RequireTenantMember(checker, "member"))
			hubs.GET("/issues", func(c *gin.Context) { c.Status(http.StatusOK) })
		})

		serve := func(tenant, user string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/hubs/"+tenant+"/issues", nil)
			if user != "" {
				req.Header.Set(middleware.HubUserHeader, user)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("admits a member and passes the role", func() {
			Expect(serve("hub_1", "user_1").Code).To(Equal(http.StatusOK))
			Expect(checker.role).To(Equal("member"))
		})

		It("answers every refusal with the same body", func() {
			missing := serve("hub_1", "")
			foreign := serve("hub_2", "user_1")
			stranger := serve("hub_1", "user_9")

			Expect(missing.Code).To(Equal(http.StatusForbidden))
			Expect(foreign.Code).To(Equal(http.StatusForbidden))
			Expect(stranger.Code).To(Equal(http.StatusForbidden))
			Expect(foreign.Body.String()).To(Equal(missing.Body.String()))
			Expect(stranger.Body.String()).To(Equal(missing.Body.String()))
		})

		It("returns 503 when membership cannot be checked", func() {
			checker.err = errors.New("workos down")
			Expect(serve("hub_1", "user_1").Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("Recovery", func() {
		It("turns a panic into a 500", func() {
			router := gin.New()
			router.Use(middleware.Recovery())
			router.GET("/", func(*gin.Context) { panic("boom") })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
