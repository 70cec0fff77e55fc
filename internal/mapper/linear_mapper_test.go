package mapper_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/hubsync/internal/mapper"
	"basegraph.app/hubsync/internal/model"
)

func fullIssuePayload() model.Document {
	return model.Document{
		"id":          "iss_1",
		"identifier":  "ENG-42",
		"title":       "Fix login",
		"description": "Users cannot log in",
		"priority":    float64(2),
		"url":         "https://linear.app/acme/issue/ENG-42",
		"stateId":     "st_1",
		"state":       map[string]any{"id": "st_1", "name": "In Progress", "color": "#f2c94c", "type": "started"},
		"assigneeId":  "usr_1",
		"assignee":    map[string]any{"id": "usr_1", "name": "Ada"},
		"teamId":      "team_a",
		"projectId":   "proj_1",
		"labelIds":    []any{"lbl_1", "lbl_2"},
		"labels": []any{
			map[string]any{"id": "lbl_1", "name": "bug", "color": "#ff0000"},
			map[string]any{"id": "lbl_2", "name": "auth", "color": "#00ff00"},
		},
		"dueDate":   "2024-03-01",
		"createdAt": "2024-01-01T10:00:00.000Z",
		"updatedAt": "2024-01-02T11:30:00.000Z",
	}
}

var _ = Describe("Linear mappers", func() {
	Describe("MapIssue", func() {
		It("keeps the payload verbatim and extracts every column", func() {
			payload := fullIssuePayload()

			rec, err := mapper.MapIssue(model.ActionCreate, payload, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.EntityType).To(Equal(model.EntityIssue))
			Expect(rec.NaturalKey).To(Equal("iss_1"))
			Expect(rec.OwnerID).To(Equal("owner_1"))
			Expect(rec.Document).To(Equal(payload))

			cols := rec.Columns.(model.IssueColumns)
			Expect(cols.Identifier.Value()).To(Equal("ENG-42"))
			Expect(cols.StateName.Value()).To(Equal("In Progress"))
			Expect(cols.StateType.Value()).To(Equal("started"))
			Expect(cols.Priority.Value()).To(Equal(2))
			Expect(cols.AssigneeName.Value()).To(Equal("Ada"))
			Expect(cols.TeamID.Value()).To(Equal("team_a"))
			Expect(cols.ProjectID.Value()).To(Equal("proj_1"))
			Expect(cols.LabelIDs.Value()).To(Equal([]string{"lbl_1", "lbl_2"}))
		})

		It("sets the source creation time only on create", func() {
			created, err := mapper.MapIssue(model.ActionCreate, fullIssuePayload(), "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.SourceCreatedAt).NotTo(BeNil())
			Expect(created.SourceCreatedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))).To(BeTrue())

			updated, err := mapper.MapIssue(model.ActionUpdate, fullIssuePayload(), "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.SourceCreatedAt).To(BeNil())
			Expect(updated.SourceUpdatedAt).NotTo(BeNil())
		})

		It("leaves the update time unset when the payload has none", func() {
			rec, err := mapper.MapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "title": "x"}, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.SourceUpdatedAt).To(BeNil())
		})

		It("preserves priority 0 as a value", func() {
			rec, err := mapper.MapIssue(model.ActionCreate, model.Document{"id": "iss_1", "priority": float64(0)}, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			priority := rec.Columns.(model.IssueColumns).Priority
			Expect(priority.Present()).To(BeTrue())
			Expect(priority.Value()).To(Equal(0))
		})

		It("omits nested columns when the parent object is absent", func() {
			rec, err := mapper.MapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "title": "New"}, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			cols := rec.Columns.(model.IssueColumns)
			Expect(cols.Title.Value()).To(Equal("New"))
			Expect(cols.StateName.Present()).To(BeFalse())
			Expect(cols.AssigneeID.Present()).To(BeFalse())
			Expect(cols.Priority.Present()).To(BeFalse())
			Expect(cols.LabelIDs.Present()).To(BeFalse())
		})

		It("clears nested columns when the parent is explicitly null", func() {
			rec, err := mapper.MapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "assignee": nil, "assigneeId": nil}, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			cols := rec.Columns.(model.IssueColumns)
			Expect(cols.AssigneeID.IsNull()).To(BeTrue())
			Expect(cols.AssigneeName.IsNull()).To(BeTrue())
		})

		It("clears the stale name when only a new reference id arrives", func() {
			rec, err := mapper.MapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "assigneeId": "usr_2"}, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			cols := rec.Columns.(model.IssueColumns)
			Expect(cols.AssigneeID.Value()).To(Equal("usr_2"))
			Expect(cols.AssigneeName.IsNull()).To(BeTrue())
		})

		It("reads label ids from a GraphQL connection", func() {
			payload := model.Document{
				"id": "iss_1",
				"labels": map[string]any{"nodes": []any{
					map[string]any{"id": "lbl_9", "name": "ops"},
				}},
			}
			rec, err := mapper.MapIssue(model.ActionCreate, payload, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Columns.(model.IssueColumns).LabelIDs.Value()).To(Equal([]string{"lbl_9"}))
		})

		It("does not throw on wrongly typed fields", func() {
			payload := model.Document{"id": "iss_1", "state": "done", "priority": "high", "labels": 3}
			rec, err := mapper.MapIssue(model.ActionCreate, payload, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			cols := rec.Columns.(model.IssueColumns)
			Expect(cols.StateName.Present()).To(BeFalse())
			Expect(cols.Priority.Present()).To(BeFalse())
			Expect(cols.LabelIDs.Present()).To(BeFalse())
		})

		It("rejects a payload without id", func() {
			_, err := mapper.MapIssue(model.ActionCreate, model.Document{"title": "no id"}, "owner_1")
			Expect(err).To(MatchError(mapper.ErrMissingNaturalKey))

			_, err = mapper.MapIssue(model.ActionCreate, model.Document{"id": ""}, "owner_1")
			Expect(err).To(MatchError(mapper.ErrMissingNaturalKey))
		})

		It("rejects remove actions", func() {
			_, err := mapper.MapIssue(model.ActionRemove, fullIssuePayload(), "owner_1")
			Expect(err).To(MatchError(mapper.ErrUnsupportedAction))
		})
	})

	Describe("MapComment", func() {
		It("extracts the owning issue and author", func() {
			rec, err := mapper.MapComment(model.ActionCreate, model.Document{
				"id":      "cmt_1",
				"body":    "LGTM",
				"issueId": "iss_1",
				"user":    map[string]any{"id": "usr_1", "name": "Ada"},
			}, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			cols := rec.Columns.(model.CommentColumns)
			Expect(cols.IssueRef.Value()).To(Equal("iss_1"))
			Expect(cols.UserID.Value()).To(Equal("usr_1"))
			Expect(cols.UserName.Value()).To(Equal("Ada"))
		})

		It("falls back to the nested issue object", func() {
			rec, err := mapper.MapComment(model.ActionCreate, model.Document{
				"id":    "cmt_1",
				"issue": map[string]any{"id": "iss_7"},
			}, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Columns.(model.CommentColumns).IssueRef.Value()).To(Equal("iss_7"))
		})
	})

	Describe("MapProject", func() {
		It("reads the status object and team connection", func() {
			rec, err := mapper.MapProject(model.ActionCreate, model.Document{
				"id":     "proj_1",
				"name":   "Auth revamp",
				"status": map[string]any{"id": "ps_1", "name": "In Progress", "type": "started"},
				"lead":   map[string]any{"id": "usr_1", "name": "Ada"},
				"teams":  map[string]any{"nodes": []any{map[string]any{"id": "team_a"}, map[string]any{"id": "team_b"}}},
			}, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			cols := rec.Columns.(model.ProjectColumns)
			Expect(cols.StatusName.Value()).To(Equal("In Progress"))
			Expect(cols.LeadID.Value()).To(Equal("usr_1"))
			Expect(cols.TeamIDs.Value()).To(Equal([]string{"team_a", "team_b"}))
			Expect(cols.InitiativeIDs.Present()).To(BeFalse())
		})

		It("falls back to the legacy state string", func() {
			rec, err := mapper.MapProject(model.ActionUpdate, model.Document{"id": "proj_1", "state": "completed"}, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Columns.(model.ProjectColumns).StatusName.Value()).To(Equal("completed"))
		})
	})

	Describe("MapInitiative", func() {
		It("accepts status as a string or an object", func() {
			rec, err := mapper.MapInitiative(model.ActionCreate, model.Document{"id": "init_1", "status": "Active"}, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Columns.(model.InitiativeColumns).Status.Value()).To(Equal("Active"))

			rec, err = mapper.MapInitiative(model.ActionCreate, model.Document{"id": "init_1", "status": map[string]any{"name": "Completed"}}, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Columns.(model.InitiativeColumns).Status.Value()).To(Equal("Completed"))
		})

		It("extracts project ids", func() {
			rec, err := mapper.MapInitiative(model.ActionCreate, model.Document{
				"id":       "init_1",
				"projects": []any{map[string]any{"id": "proj_1"}},
			}, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Columns.(model.InitiativeColumns).ProjectIDs.Value()).To(Equal([]string{"proj_1"}))
		})
	})

	Describe("MapTeam", func() {
		It("preserves private false", func() {
			rec, err := mapper.MapTeam(model.ActionCreate, model.Document{"id": "team_a", "key": "ENG", "private": false}, "owner_1")
			Expect(err).NotTo(HaveOccurred())

			private := rec.Columns.(model.TeamColumns).Private
			Expect(private.Present()).To(BeTrue())
			Expect(private.Value()).To(BeFalse())
		})
	})

	Describe("Registry", func() {
		It("dispatches by entity type", func() {
			r := mapper.NewLinearRegistry()
			for _, t := range model.EntityTypes {
				Expect(r.Supports(t)).To(BeTrue())
			}

			rec, err := r.Map(model.EntityComment, model.ActionCreate, model.Document{"id": "cmt_1"}, "owner_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.EntityType).To(Equal(model.EntityComment))
		})

		It("rejects unregistered types", func() {
			_, err := mapper.NewRegistry().Map(model.EntityIssue, model.ActionCreate, model.Document{"id": "x"}, "owner_1")
			Expect(err).To(MatchError(mapper.ErrUnknownEntityType))
		})
	})
})
