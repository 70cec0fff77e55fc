package visibility_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/visibility"
)

func mapping(team string, projects, initiatives, labels []string) model.TeamMapping {
	return model.TeamMapping{
		TenantID:             "org_1",
		TeamID:               team,
		OwnerID:              "owner_1",
		VisibleProjectIDs:    projects,
		VisibleInitiativeIDs: initiatives,
		VisibleLabelIDs:      labels,
		Active:               true,
	}
}

func issue(id, team, project string, labelIDs ...string) domain.Issue {
	i := domain.Issue{
		ID:       id,
		Assignee: &domain.User{ID: "usr_1", Name: "Ada"},
		Labels:   []domain.Label{},
	}
	if team != "" {
		i.Team = &domain.Ref{ID: team}
	}
	if project != "" {
		i.Project = &domain.Ref{ID: project}
	}
	for _, l := range labelIDs {
		i.Labels = append(i.Labels, domain.Label{ID: l, Name: l})
	}
	return i
}

var _ = Describe("Compute", func() {
	It("opens a dimension when any mapping leaves it unscoped", func() {
		v := visibility.Compute([]model.TeamMapping{
			mapping("A", nil, nil, nil),
			mapping("B", []string{"P1"}, nil, nil),
		})
		Expect(v.Projects).To(BeNil())
		Expect(v.Projects.Unscoped()).To(BeTrue())
	})

	It("unions explicit allow-lists", func() {
		v := visibility.Compute([]model.TeamMapping{
			mapping("A", nil, nil, []string{"L1"}),
			mapping("B", nil, nil, []string{"L2", "L3"}),
		})
		Expect(v.Labels.IDs()).To(Equal([]string{"L1", "L2", "L3"}))
	})

	It("merges each dimension independently", func() {
		v := visibility.Compute([]model.TeamMapping{
			mapping("A", []string{"P1"}, nil, []string{"L1"}),
			mapping("B", []string{"P2"}, []string{"I1"}, []string{"L2"}),
		})
		Expect(v.Projects.IDs()).To(Equal([]string{"P1", "P2"}))
		Expect(v.Initiatives).To(BeNil())
		Expect(v.TeamIDs.IDs()).To(Equal([]string{"A", "B"}))
		Expect(v.OwnerID).To(Equal("owner_1"))
	})

	It("skips inactive mappings", func() {
		inactive := mapping("A", nil, nil, nil)
		inactive.Active = false
		v := visibility.Compute([]model.TeamMapping{inactive, mapping("B", []string{"P1"}, nil, nil)})

		Expect(v.TeamIDs.IDs()).To(Equal([]string{"B"}))
		Expect(v.Projects.IDs()).To(Equal([]string{"P1"}))
	})

	It("sees nothing with zero active mappings", func() {
		v := visibility.Compute(nil)
		Expect(v.Empty()).To(BeTrue())
		Expect(v.FilterIssues([]domain.Issue{issue("i1", "A", "")})).To(BeEmpty())
		Expect(v.FilterTeams([]domain.Team{{ID: "A"}})).To(BeEmpty())
	})

	It("ignores mappings of a second owner", func() {
		foreign := mapping("B", nil, nil, nil)
		foreign.OwnerID = "owner_2"
		v := visibility.Compute([]model.TeamMapping{mapping("A", nil, nil, nil), foreign})
		Expect(v.TeamIDs.IDs()).To(Equal([]string{"A"}))
	})

	It("serializes unscoped filters as null", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", nil, nil, []string{"L1"})})
		raw, err := json.Marshal(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(MatchJSON(`{"owner_id":"owner_1","team_ids":["A"],"project_filter":null,"initiative_filter":null,"label_filter":["L1"]}`))
	})
})

var _ = Describe("Issues", func() {
	It("keeps issues of mapped teams and redacts every assignee", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", nil, nil, nil)})

		out := v.FilterIssues([]domain.Issue{issue("i1", "A", ""), issue("i2", "B", ""), issue("i3", "", "")})

		Expect(out).To(HaveLen(1))
		Expect(out[0].ID).To(Equal("i1"))
		Expect(out[0].Assignee).To(BeNil())
	})

	It("applies the project allow-list", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", []string{"P1"}, nil, nil)})

		out := v.FilterIssues([]domain.Issue{
			issue("i1", "A", "P1"),
			issue("i2", "A", "P2"),
			issue("i3", "A", ""),
		})
		Expect(out).To(HaveLen(1))
		Expect(out[0].ID).To(Equal("i1"))
	})

	It("filters labels element-wise and keeps issues with none left", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", nil, nil, []string{"L1"})})

		out := v.FilterIssues([]domain.Issue{
			issue("i1", "A", "", "L1", "L2"),
			issue("i2", "A", "", "L9"),
		})
		Expect(out).To(HaveLen(2))
		Expect(out[0].Labels).To(Equal([]domain.Label{{ID: "L1", Name: "L1"}}))
		Expect(out[1].Labels).To(BeEmpty())
		Expect(out[1].Labels).NotTo(BeNil())
	})

	It("does not mutate the input issue", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", nil, nil, []string{"L1"})})
		in := issue("i1", "A", "", "L1", "L2")

		_, ok := v.ScopeIssue(in)
		Expect(ok).To(BeTrue())
		Expect(in.Assignee).NotTo(BeNil())
		Expect(in.Labels).To(HaveLen(2))
	})

	It("re-verifies the team on a single fetch", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", nil, nil, nil)})
		_, ok := v.ScopeIssue(issue("i1", "B", ""))
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Projects and initiatives", func() {
	projects := []domain.Project{
		{ID: "P1", Teams: []domain.Ref{{ID: "A"}}},
		{ID: "P2", Teams: []domain.Ref{{ID: "A"}, {ID: "B"}}},
		{ID: "P3", Teams: []domain.Ref{{ID: "C"}}},
	}

	It("keeps projects touching a mapped team", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("B", nil, nil, nil)})
		out := v.FilterProjects(projects)
		Expect(out).To(HaveLen(1))
		Expect(out[0].ID).To(Equal("P2"))
	})

	It("applies the project allow-list", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", []string{"P2"}, nil, nil)})
		out := v.FilterProjects(projects)
		Expect(out).To(HaveLen(1))
		Expect(out[0].ID).To(Equal("P2"))
	})

	It("keeps initiatives reached through a team or a visible project", func() {
		v := visibility.Compute([]model.TeamMapping{mapping("A", nil, []string{"I1", "I2"}, nil)})
		visible := v.FilterProjects(projects)

		out := v.FilterInitiatives([]domain.Initiative{
			{ID: "I1", Teams: []domain.Ref{{ID: "A"}}},
			{ID: "I2", Projects: []domain.Ref{{ID: "P1"}}},
			{ID: "I3", Teams: []domain.Ref{{ID: "A"}}},
			{ID: "I4", Projects: []domain.Ref{{ID: "P3"}}},
		}, visible)

		ids := []string{}
		for _, i := range out {
			ids = append(ids, i.ID)
		}
		Expect(ids).To(Equal([]string{"I1", "I2"}))
	})
})

var _ = Describe("IDSet", func() {
	It("allows everything when nil", func() {
		var s *visibility.IDSet
		Expect(s.Allows("x")).To(BeTrue())
		Expect(s.AllowsAny(nil)).To(BeTrue())
		Expect(s.IDs()).To(BeNil())
	})

	It("allows nothing when empty", func() {
		s := visibility.NewIDSet()
		Expect(s.Allows("x")).To(BeFalse())
		Expect(s.AllowsAny([]string{"x"})).To(BeFalse())
	})
})
