package projector_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/mapper"
	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/projector"
)

var syncedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func record(doc model.Document) model.Record {
	return model.Record{NaturalKey: doc.StringOr("id", ""), Document: doc, SyncedAt: syncedAt}
}

func mapAndStore(rec model.Record, err error) model.Record {
	Expect(err).NotTo(HaveOccurred())
	rec.SyncedAt = syncedAt
	return rec
}

var _ = Describe("PriorityToLabel", func() {
	DescribeTable("maps every int",
		func(priority int, label string) {
			Expect(projector.PriorityToLabel(priority)).To(Equal(label))
		},
		Entry("no priority", 0, "No priority"),
		Entry("urgent", 1, "Urgent"),
		Entry("high", 2, "High"),
		Entry("medium", 3, "Medium"),
		Entry("low", 4, "Low"),
		Entry("above range", 5, "No priority"),
		Entry("negative", -1, "No priority"),
		Entry("far out", 99, "No priority"),
	)
})

var _ = Describe("Issue", func() {
	It("fills every default for a bare document", func() {
		issue := projector.Issue(record(model.Document{"id": "iss_1"}))

		Expect(issue.ID).To(Equal("iss_1"))
		Expect(issue.State).To(Equal(domain.State{ID: "", Name: "Unknown", Color: "", Type: ""}))
		Expect(issue.Priority).To(Equal(0))
		Expect(issue.PriorityLabel).To(Equal("No priority"))
		Expect(issue.Assignee).To(BeNil())
		Expect(issue.Labels).NotTo(BeNil())
		Expect(issue.Labels).To(BeEmpty())
		Expect(issue.URL).To(Equal(""))
		Expect(issue.Description).To(BeNil())
		Expect(issue.CreatedAt).To(Equal(syncedAt))
		Expect(issue.UpdatedAt).To(Equal(syncedAt))
	})

	It("falls back to the record's source timestamps before the sync time", func() {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		rec := record(model.Document{"id": "iss_1"})
		rec.SourceCreatedAt = &created

		issue := projector.Issue(rec)
		Expect(issue.CreatedAt).To(Equal(created))
		Expect(issue.UpdatedAt).To(Equal(syncedAt))
	})

	It("treats an explicit null assignee as absent", func() {
		issue := projector.Issue(record(model.Document{"id": "iss_1", "assignee": nil}))
		Expect(issue.Assignee).To(BeNil())
	})

	It("reproduces every field of a full create payload", func() {
		payload := model.Document{
			"id":          "iss_1",
			"identifier":  "ENG-42",
			"title":       "Fix login",
			"description": "Users cannot log in",
			"priority":    float64(1),
			"url":         "https://linear.app/acme/issue/ENG-42",
			"state":       map[string]any{"id": "st_1", "name": "In Progress", "color": "#f2c94c", "type": "started"},
			"assignee":    map[string]any{"id": "usr_1", "name": "Ada"},
			"labels": []any{
				map[string]any{"id": "lbl_1", "name": "bug", "color": "#ff0000"},
			},
			"team":      map[string]any{"id": "team_a", "name": "Engineering", "key": "ENG"},
			"projectId": "proj_1",
			"dueDate":   "2024-03-01",
			"createdAt": "2024-01-01T10:00:00.000Z",
			"updatedAt": "2024-01-02T11:30:00.000Z",
		}

		issue := projector.Issue(mapAndStore(mapper.MapIssue(model.ActionCreate, payload, "owner_1")))

		Expect(issue.ID).To(Equal("iss_1"))
		Expect(issue.Identifier).To(Equal("ENG-42"))
		Expect(issue.Title).To(Equal("Fix login"))
		Expect(*issue.Description).To(Equal("Users cannot log in"))
		Expect(issue.Priority).To(Equal(1))
		Expect(issue.PriorityLabel).To(Equal("Urgent"))
		Expect(issue.URL).To(Equal("https://linear.app/acme/issue/ENG-42"))
		Expect(issue.State).To(Equal(domain.State{ID: "st_1", Name: "In Progress", Color: "#f2c94c", Type: "started"}))
		Expect(issue.Assignee).To(Equal(&domain.User{ID: "usr_1", Name: "Ada"}))
		Expect(issue.Labels).To(Equal([]domain.Label{{ID: "lbl_1", Name: "bug", Color: "#ff0000"}}))
		Expect(issue.Team).To(Equal(&domain.Ref{ID: "team_a", Name: "Engineering", Key: "ENG"}))
		Expect(issue.ProjectID()).To(Equal("proj_1"))
		Expect(*issue.DueDate).To(Equal("2024-03-01"))
		Expect(issue.CreatedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))).To(BeTrue())
		Expect(issue.UpdatedAt.Equal(time.Date(2024, 1, 2, 11, 30, 0, 0, time.UTC))).To(BeTrue())
	})

	It("keeps state, priority, assignee and labels after a title-only update", func() {
		full := model.Document{
			"id":       "iss_1",
			"title":    "Old",
			"priority": float64(3),
			"state":    map[string]any{"id": "st_1", "name": "Todo", "type": "unstarted"},
			"assignee": map[string]any{"id": "usr_1", "name": "Ada"},
			"labels":   []any{map[string]any{"id": "lbl_1", "name": "bug"}},
		}
		stored := mapAndStore(mapper.MapIssue(model.ActionCreate, full, "owner_1"))
		before := projector.Issue(stored)

		partial := mapAndStore(mapper.MapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "title": "New"}, "owner_1"))
		after := projector.Issue(model.MergeRecord(&stored, partial))

		Expect(after.Title).To(Equal("New"))
		Expect(after.State).To(Equal(before.State))
		Expect(after.Priority).To(Equal(before.Priority))
		Expect(after.Assignee).To(Equal(before.Assignee))
		Expect(after.Labels).To(Equal(before.Labels))
	})

	It("derives the team from a flat id", func() {
		issue := projector.Issue(record(model.Document{"id": "iss_1", "teamId": "team_a"}))
		Expect(issue.TeamID()).To(Equal("team_a"))
	})

	It("lets the flat id win over an embedded object that disagrees", func() {
		issue := projector.Issue(record(model.Document{
			"id":         "iss_1",
			"teamId":     "team_b",
			"team":       map[string]any{"id": "team_a", "name": "Engineering"},
			"stateId":    "st_2",
			"state":      map[string]any{"id": "st_1", "name": "Todo"},
			"assigneeId": "usr_2",
			"assignee":   map[string]any{"id": "usr_1", "name": "Ada"},
		}))
		Expect(issue.Team).To(Equal(&domain.Ref{ID: "team_b"}))
		Expect(issue.State).To(Equal(domain.State{ID: "st_2", Name: "Unknown"}))
		Expect(issue.Assignee).To(Equal(&domain.User{ID: "usr_2", Name: "Unknown"}))
	})

	It("reads the same team the indexed column does", func() {
		doc := model.Document{"id": "iss_1", "teamId": "team_b", "team": map[string]any{"id": "team_a"}}
		rec := mapAndStore(mapper.MapIssue(model.ActionCreate, doc, "owner_1"))
		Expect(projector.Issue(rec).TeamID()).To(Equal(rec.Columns.(model.IssueColumns).TeamID.Value()))
	})

	It("treats a null flat id as no reference", func() {
		issue := projector.Issue(record(model.Document{"id": "iss_1", "teamId": nil, "team": map[string]any{"id": "team_a"}}))
		Expect(issue.Team).To(BeNil())
	})
})

var _ = Describe("Comment", func() {
	It("defaults a missing user to Unknown", func() {
		comment := projector.Comment(record(model.Document{"id": "cmt_1", "body": "hi", "issueId": "iss_1"}))
		Expect(comment.User).To(Equal(domain.User{ID: "", Name: "Unknown"}))
		Expect(comment.IssueID).To(Equal("iss_1"))
		Expect(comment.CreatedAt).To(Equal(syncedAt))
	})

	It("keeps the author when present", func() {
		comment := projector.Comment(record(model.Document{"id": "cmt_1", "user": map[string]any{"id": "usr_1", "name": "Ada"}}))
		Expect(comment.User).To(Equal(domain.User{ID: "usr_1", Name: "Ada"}))
	})
})

var _ = Describe("Team", func() {
	It("defaults displayName to name and empty collections", func() {
		team := projector.Team(record(model.Document{"id": "team_a", "name": "Engineering", "key": "ENG"}))
		Expect(team.DisplayName).To(Equal("Engineering"))
		Expect(team.Private).To(BeFalse())
		Expect(team.Children).To(BeEmpty())
		Expect(team.Children).NotTo(BeNil())
		Expect(team.Members).NotTo(BeNil())
	})

	It("reads members from a connection", func() {
		team := projector.Team(record(model.Document{
			"id": "team_a", "name": "Eng", "displayName": "Engineering", "private": true,
			"members": map[string]any{"nodes": []any{map[string]any{"id": "usr_1", "name": "Ada"}}},
		}))
		Expect(team.DisplayName).To(Equal("Engineering"))
		Expect(team.Private).To(BeTrue())
		Expect(team.Members).To(Equal([]domain.User{{ID: "usr_1", Name: "Ada"}}))
	})
})

var _ = Describe("Project", func() {
	It("defaults status to an Unknown state and arrays to empty", func() {
		project := projector.Project(record(model.Document{"id": "proj_1", "name": "Auth"}))
		Expect(project.Status).To(Equal(domain.State{Name: "Unknown"}))
		Expect(project.Lead).To(BeNil())
		Expect(project.Teams).NotTo(BeNil())
		Expect(project.Teams).To(BeEmpty())
		Expect(project.Initiatives).To(BeEmpty())
		Expect(project.Members).To(BeEmpty())
	})

	It("falls back to team ids when teams are not embedded", func() {
		project := projector.Project(record(model.Document{"id": "proj_1", "teamIds": []any{"team_a"}}))
		Expect(project.TeamIDs()).To(Equal([]string{"team_a"}))
	})
})

var _ = Describe("Initiative", func() {
	It("defaults status to Planned", func() {
		initiative := projector.Initiative(record(model.Document{"id": "init_1"}))
		Expect(initiative.Status).To(Equal("Planned"))
		Expect(initiative.Teams).To(BeEmpty())
		Expect(initiative.Projects).To(BeEmpty())
		Expect(initiative.Owner).To(BeNil())
	})

	It("keeps a delivered status", func() {
		initiative := projector.Initiative(record(model.Document{"id": "init_1", "status": "Active"}))
		Expect(initiative.Status).To(Equal("Active"))
	})
})
