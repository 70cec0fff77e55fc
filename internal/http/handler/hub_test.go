package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/http/dto"
	"basegraph.app/hubsync/internal/http/handler"
	"basegraph.app/hubsync/internal/service"
)

var _ = Describe("HubHandler", func() {
	var (
		router *gin.Engine
		hub    *mockHubService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		hub = &mockHubService{}
		h := handler.NewHubHandler(hub)

		hubs := router.Group("/hubs/:tenant_id")
		hubs.GET("/issues", h.ListIssues)
		hubs.GET("/issues/:issue_key", h.GetIssue)
		hubs.GET("/issues/:issue_key/comments", h.ListComments)
		hubs.GET("/projects", h.ListProjects)
		hubs.GET("/initiatives", h.ListInitiatives)
		hubs.GET("/teams", h.ListTeams)
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("ListIssues", func() {
		It("passes the tenant and query filters through", func() {
			var gotTenant string
			var gotFilter service.IssueFilter
			hub.listIssuesFn = func(_ context.Context, tenantID string, filter service.IssueFilter) ([]domain.Issue, error) {
				gotTenant, gotFilter = tenantID, filter
				return []domain.Issue{{ID: "iss_1", Title: "Crash on save"}}, nil
			}

			w := get("/hubs/hub_1/issues?project_id=prj_1&team_id=team_a&status=Todo,started&status=Done&limit=10")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotTenant).To(Equal("hub_1"))
			Expect(gotFilter.ProjectID).To(Equal("prj_1"))
			Expect(gotFilter.TeamID).To(Equal("team_a"))
			Expect(gotFilter.Statuses).To(Equal([]string{"Todo", "started", "Done"}))
			Expect(gotFilter.Limit).To(Equal(int32(10)))

			var resp dto.IssuesResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Issues).To(HaveLen(1))
			Expect(resp.Issues[0].ID).To(Equal("iss_1"))
		})

		It("renders an empty scope as an empty list", func() {
			w := get("/hubs/hub_1/issues")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"issues": []}`))
		})

		It("rejects a bad limit", func() {
			w := get("/hubs/hub_1/issues?limit=abc")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 503 when storage is down", func() {
			hub.listIssuesFn = func(context.Context, string, service.IssueFilter) ([]domain.Issue, error) {
				return nil, fmt.Errorf("%w: connection refused", service.ErrStorageUnavailable)
			}

			w := get("/hubs/hub_1/issues")

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Body.String()).NotTo(ContainSubstring("connection refused"))
		})
	})

	Describe("GetIssue", func() {
		It("returns the scoped issue", func() {
			hub.getIssueDetailFn = func(_ context.Context, tenantID, issueKey string) (*domain.Issue, error) {
				Expect(tenantID).To(Equal("hub_1"))
				return &domain.Issue{ID: issueKey, Identifier: "ENG-1"}, nil
			}

			w := get("/hubs/hub_1/issues/iss_1")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp dto.IssueResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Issue.Identifier).To(Equal("ENG-1"))
		})

		It("returns 404 when the issue is missing or out of scope", func() {
			w := get("/hubs/hub_1/issues/iss_9")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	It("lists comments for an issue", func() {
		hub.listCommentsFn = func(_ context.Context, _ string, issueKey string) ([]domain.Comment, error) {
			return []domain.Comment{{ID: "c1", IssueID: issueKey}}, nil
		}

		w := get("/hubs/hub_1/issues/iss_1/comments")

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp dto.CommentsResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Comments).To(ConsistOf(HaveField("IssueID", "iss_1")))
	})

	It("lists projects with team and status filters", func() {
		var got service.ProjectFilter
		hub.listProjectsFn = func(_ context.Context, _ string, filter service.ProjectFilter) ([]domain.Project, error) {
			got = filter
			return []domain.Project{{ID: "prj_1"}}, nil
		}

		w := get("/hubs/hub_1/projects?team_id=team_a&status=started")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got.TeamID).To(Equal("team_a"))
		Expect(got.Statuses).To(Equal([]string{"started"}))
	})

	It("lists initiatives", func() {
		hub.listInitiativesFn = func(context.Context, string, service.InitiativeFilter) ([]domain.Initiative, error) {
			return []domain.Initiative{{ID: "ini_1"}}, nil
		}

		w := get("/hubs/hub_1/initiatives")

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp dto.InitiativesResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Initiatives).To(HaveLen(1))
	})

	It("lists teams", func() {
		hub.listTeamsFn = func(context.Context, string) ([]domain.Team, error) {
			return []domain.Team{{ID: "team_a", Key: "ENG"}}, nil
		}

		w := get("/hubs/hub_1/teams")

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp dto.TeamsResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Teams[0].Key).To(Equal("ENG"))
	})
})
