package mapper_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/hubsync/internal/mapper"
	"basegraph.app/hubsync/internal/model"
)

var _ = Describe("Registry.Merge", func() {
	var (
		registry *mapper.Registry
		stored   model.Record
	)

	mapIssue := func(action model.Action, doc model.Document) model.Record {
		rec, err := registry.Map(model.EntityIssue, action, doc, "owner_1")
		Expect(err).NotTo(HaveOccurred())
		return rec
	}

	BeforeEach(func() {
		registry = mapper.NewLinearRegistry()
		stored = mapIssue(model.ActionCreate, model.Document{
			"id":      "iss_1",
			"title":   "Fix login",
			"teamId":  "team_a",
			"team":    map[string]any{"id": "team_a", "name": "Engineering"},
			"stateId": "st_1",
			"state":   map[string]any{"id": "st_1", "name": "Todo", "type": "unstarted"},
		})
		stored.ID = 7
	})

	It("returns the delivery as is when nothing is stored", func() {
		next := mapIssue(model.ActionCreate, model.Document{"id": "iss_1", "title": "New"})
		merged, err := registry.Merge(nil, next)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged).To(Equal(next))
	})

	It("drops the embedded object when only the flat id moves", func() {
		next := mapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "teamId": "team_b", "stateId": "st_2"})

		merged, err := registry.Merge(&stored, next)
		Expect(err).NotTo(HaveOccurred())

		Expect(merged.ID).To(Equal(int64(7)))
		Expect(merged.Document).NotTo(HaveKey("team"))
		Expect(merged.Document).NotTo(HaveKey("state"))
		cols := merged.Columns.(model.IssueColumns)
		Expect(cols.TeamID.Value()).To(Equal("team_b"))
		Expect(cols.StateID.Value()).To(Equal("st_2"))
		Expect(cols.StateName.IsNull()).To(BeTrue())
		Expect(cols.Title.Value()).To(Equal("Fix login"))
	})

	It("drops the flat id when only the embedded object moves", func() {
		next := mapIssue(model.ActionUpdate, model.Document{
			"id":    "iss_1",
			"state": map[string]any{"id": "st_3", "name": "Done", "type": "completed"},
		})

		merged, err := registry.Merge(&stored, next)
		Expect(err).NotTo(HaveOccurred())

		Expect(merged.Document).NotTo(HaveKey("stateId"))
		cols := merged.Columns.(model.IssueColumns)
		Expect(cols.StateID.Value()).To(Equal("st_3"))
		Expect(cols.StateName.Value()).To(Equal("Done"))
		Expect(cols.StateType.Value()).To(Equal("completed"))
		Expect(cols.TeamID.Value()).To(Equal("team_a"))
	})

	It("keeps both forms when they still agree", func() {
		next := mapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "teamId": "team_a"})

		merged, err := registry.Merge(&stored, next)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged.Document).To(HaveKey("team"))
		Expect(merged.Columns.(model.IssueColumns).StateName.Value()).To(Equal("Todo"))
	})

	It("clears both forms when the flat id is nulled", func() {
		next := mapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "teamId": nil})

		merged, err := registry.Merge(&stored, next)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged.Document).NotTo(HaveKey("team"))
		Expect(merged.Columns.(model.IssueColumns).TeamID.IsNull()).To(BeTrue())
	})

	It("rebuilds columns a partial update left untouched", func() {
		next := mapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "title": "Fix login on Safari"})

		merged, err := registry.Merge(&stored, next)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged.Columns).To(Equal(mapIssue(model.ActionUpdate, merged.Document).Columns))
	})

	It("leaves a replayed delivery unchanged", func() {
		next := mapIssue(model.ActionUpdate, model.Document{"id": "iss_1", "teamId": "team_b"})

		once, err := registry.Merge(&stored, next)
		Expect(err).NotTo(HaveOccurred())
		twice, err := registry.Merge(&once, next)
		Expect(err).NotTo(HaveOccurred())

		Expect(twice.Document).To(Equal(once.Document))
		Expect(model.Unchanged(&once, twice)).To(BeTrue())
		Expect(model.Unchanged(&stored, once)).To(BeFalse())
	})
})

var _ = Describe("reference fields", func() {
	It("clears a name whose object points at another id", func() {
		rec, err := mapper.MapIssue(model.ActionUpdate, model.Document{
			"id":         "iss_1",
			"assigneeId": "usr_2",
			"assignee":   map[string]any{"id": "usr_1", "name": "Ada"},
		}, "owner_1")
		Expect(err).NotTo(HaveOccurred())

		cols := rec.Columns.(model.IssueColumns)
		Expect(cols.AssigneeID.Value()).To(Equal("usr_2"))
		Expect(cols.AssigneeName.IsNull()).To(BeTrue())
	})
})
