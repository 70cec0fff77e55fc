package tracker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/tracker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		client   *tracker.Client
		requests []capturedRequest
		auth     string
		calls    atomic.Int32
		respond  func(w http.ResponseWriter)
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		requests = nil
		calls.Store(0)
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			auth = r.Header.Get("Authorization")
			var req capturedRequest
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			requests = append(requests, req)
			respond(w)
		}))
		client = tracker.NewClient(config.TrackerConfig{
			APIBaseURL: server.URL,
			PageSize:   2,
			MaxRetries: 0,
		})
	})

	AfterEach(func() {
		server.Close()
	})

	It("fetches a page and normalizes connections", func() {
		respond = func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"issues":{
				"nodes":[{"id":"iss_1","title":"Fix login",
					"team":{"id":"team_a","key":"ENG","name":"Engineering"},
					"project":null,
					"labels":{"nodes":[{"id":"lbl_1","name":"bug"}]}}],
				"pageInfo":{"hasNextPage":true,"endCursor":"c1"}}}}`))
		}

		page, err := client.FetchPage(ctx, tracker.Credentials{APIKey: "lin_key"}, model.EntityIssue, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(page.HasNextPage).To(BeTrue())
		Expect(page.EndCursor).To(Equal("c1"))
		Expect(page.Nodes).To(HaveLen(1))

		doc := page.Nodes[0]
		Expect(doc.StringOr("teamId", "")).To(Equal("team_a"))
		Expect(doc.IsNull("projectId")).To(BeTrue())
		labelIDs, ok := doc.Strings("labelIds")
		Expect(ok).To(BeTrue())
		Expect(labelIDs).To(Equal([]string{"lbl_1"}))
		Expect(doc["labels"]).To(BeAssignableToTypeOf([]any{}))

		Expect(auth).To(Equal("lin_key"))
		Expect(requests).To(HaveLen(1))
		Expect(requests[0].Query).To(ContainSubstring("issues(first: $first, after: $after)"))
		Expect(requests[0].Variables).To(HaveKeyWithValue("first", BeNumerically("==", 2)))
		Expect(requests[0].Variables).NotTo(HaveKey("after"))
	})

	It("passes the cursor for later pages", func() {
		respond = func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(`{"data":{"teams":{"nodes":[],"pageInfo":{"hasNextPage":false,"endCursor":""}}}}`))
		}

		page, err := client.FetchPage(ctx, tracker.Credentials{APIKey: "k"}, model.EntityTeam, "c9")
		Expect(err).NotTo(HaveOccurred())
		Expect(page.HasNextPage).To(BeFalse())
		Expect(page.Nodes).To(BeEmpty())
		Expect(requests[0].Variables).To(HaveKeyWithValue("after", "c9"))
	})

	It("maps rejected credentials to ErrUnauthorized", func() {
		respond = func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusUnauthorized)
		}

		_, err := client.FetchPage(ctx, tracker.Credentials{APIKey: "bad"}, model.EntityProject, "")
		Expect(err).To(MatchError(tracker.ErrUnauthorized))
	})

	It("surfaces GraphQL errors", func() {
		respond = func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(`{"errors":[{"message":"rate limited"}]}`))
		}

		_, err := client.FetchPage(ctx, tracker.Credentials{APIKey: "k"}, model.EntityComment, "")
		Expect(err).To(MatchError(tracker.ErrUpstream))
		Expect(err.Error()).To(ContainSubstring("rate limited"))
	})

	It("opens the circuit after repeated failures", func() {
		respond = func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(`not json`))
		}

		for range 5 {
			_, err := client.FetchPage(ctx, tracker.Credentials{APIKey: "k"}, model.EntityTeam, "")
			Expect(err).To(MatchError(tracker.ErrUpstream))
		}
		_, err := client.FetchPage(ctx, tracker.Credentials{APIKey: "k"}, model.EntityTeam, "")
		Expect(err).To(MatchError(tracker.ErrCircuitOpen))
		Expect(calls.Load()).To(Equal(int32(5)))
	})

	It("uses the owner's base URL when set", func() {
		other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"initiatives":{"nodes":[{"id":"ini_1","projects":{"nodes":[{"id":"prj_1"}]}}],"pageInfo":{"hasNextPage":false}}}}`))
		}))
		defer other.Close()

		page, err := client.FetchPage(ctx, tracker.Credentials{APIKey: "k", BaseURL: other.URL}, model.EntityInitiative, "")
		Expect(err).NotTo(HaveOccurred())
		projectIDs, _ := page.Nodes[0].Strings("projectIds")
		Expect(projectIDs).To(Equal([]string{"prj_1"}))
		Expect(calls.Load()).To(BeZero())
	})
})

var _ = Describe("Normalize", func() {
	It("keeps explicit flat ids over derived ones", func() {
		doc := tracker.Normalize(model.EntityIssue, model.Document{
			"teamId": "team_x",
			"team":   map[string]any{"id": "team_y"},
		})
		Expect(doc.StringOr("teamId", "")).To(Equal("team_x"))
	})

	It("derives project team ids", func() {
		doc := tracker.Normalize(model.EntityProject, model.Document{
			"teams": map[string]any{"nodes": []any{
				map[string]any{"id": "team_a"},
				map[string]any{"id": "team_b"},
			}},
		})
		ids, ok := doc.Strings("teamIds")
		Expect(ok).To(BeTrue())
		Expect(ids).To(Equal([]string{"team_a", "team_b"}))
	})
})
