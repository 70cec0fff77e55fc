// Package visibility decides which synced entities a hub tenant may see.
//
// The tenant's team mappings are merged per dimension (projects,
// initiatives, labels) into allow-lists, then applied to projected entities.
// Everything here is pure: the only input is the stored mapping set.
package visibility

import (
	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/model"
)

// Visibility is the merged scope of one tenant.
type Visibility struct {
	// OwnerID is the account whose data the tenant reads. Empty when the
	// tenant has no active mappings.
	OwnerID string `json:"owner_id"`
	// TeamIDs is never nil; a tenant sees only its mapped teams.
	TeamIDs     *IDSet `json:"team_ids"`
	Projects    *IDSet `json:"project_filter"`
	Initiatives *IDSet `json:"initiative_filter"`
	Labels      *IDSet `json:"label_filter"`
}

// Compute merges the active mappings of one tenant. For each dimension, one
// mapping with an empty list makes the dimension unscoped; otherwise the
// allow-list is the union of every mapping's list. Mappings belonging to a
// different owner than the first active one are skipped.
func Compute(mappings []model.TeamMapping) Visibility {
	active := make([]model.TeamMapping, 0, len(mappings))
	owner := ""
	for _, m := range mappings {
		if !m.Active {
			continue
		}
		if owner == "" {
			owner = m.OwnerID
		}
		if m.OwnerID != owner {
			continue
		}
		active = append(active, m)
	}

	v := Visibility{OwnerID: owner, TeamIDs: NewIDSet()}
	if len(active) == 0 {
		// Nothing is visible; keep the dimensions closed rather than open.
		v.Projects, v.Initiatives, v.Labels = NewIDSet(), NewIDSet(), NewIDSet()
		return v
	}

	for _, m := range active {
		v.TeamIDs.Add(m.TeamID)
	}
	v.Projects = mergeDimension(active, func(m model.TeamMapping) []string { return m.VisibleProjectIDs })
	v.Initiatives = mergeDimension(active, func(m model.TeamMapping) []string { return m.VisibleInitiativeIDs })
	v.Labels = mergeDimension(active, func(m model.TeamMapping) []string { return m.VisibleLabelIDs })
	return v
}

func mergeDimension(mappings []model.TeamMapping, ids func(model.TeamMapping) []string) *IDSet {
	allowed := NewIDSet()
	for _, m := range mappings {
		list := ids(m)
		if len(list) == 0 {
			return nil
		}
		allowed.Add(list...)
	}
	return allowed
}

// Empty reports whether the tenant can see nothing at all.
func (v Visibility) Empty() bool {
	return v.TeamIDs == nil || v.TeamIDs.Len() == 0
}

// HasTeam reports whether teamID is one of the tenant's mapped teams.
func (v Visibility) HasTeam(teamID string) bool {
	return !v.Empty() && teamID != "" && v.TeamIDs.Allows(teamID)
}

// ScopeIssue returns the issue as a tenant may see it, or false when the
// issue is outside the tenant's scope. The assignee is always removed and
// labels are filtered one by one; an issue with no allowed labels is kept.
func (v Visibility) ScopeIssue(issue domain.Issue) (domain.Issue, bool) {
	if !v.HasTeam(issue.TeamID()) {
		return domain.Issue{}, false
	}
	if !v.Projects.Unscoped() && !v.Projects.Allows(issue.ProjectID()) {
		return domain.Issue{}, false
	}

	scoped := issue
	scoped.Assignee = nil
	scoped.Labels = v.filterLabels(issue.Labels)
	return scoped, true
}

func (v Visibility) FilterIssues(issues []domain.Issue) []domain.Issue {
	out := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if scoped, ok := v.ScopeIssue(issue); ok {
			out = append(out, scoped)
		}
	}
	return out
}

func (v Visibility) filterLabels(labels []domain.Label) []domain.Label {
	out := make([]domain.Label, 0, len(labels))
	for _, l := range labels {
		if v.Labels.Allows(l.ID) {
			out = append(out, l)
		}
	}
	return out
}

// ProjectVisible requires the project to belong to a mapped team and to
// pass the project allow-list.
func (v Visibility) ProjectVisible(p domain.Project) bool {
	if v.Empty() || !v.TeamIDs.AllowsAny(p.TeamIDs()) {
		return false
	}
	return v.Projects.Allows(p.ID)
}

func (v Visibility) FilterProjects(projects []domain.Project) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if v.ProjectVisible(p) {
			out = append(out, p)
		}
	}
	return out
}

// InitiativeVisible admits an initiative that names a mapped team, or that
// groups one of the projects the tenant can already see, and that passes
// the initiative allow-list.
func (v Visibility) InitiativeVisible(i domain.Initiative, visibleProjects *IDSet) bool {
	if v.Empty() {
		return false
	}
	inScope := v.TeamIDs.AllowsAny(i.TeamIDs())
	if !inScope && visibleProjects != nil {
		for _, id := range i.ProjectIDs() {
			if visibleProjects.Allows(id) {
				inScope = true
				break
			}
		}
	}
	return inScope && v.Initiatives.Allows(i.ID)
}

// FilterInitiatives keeps initiatives in scope. visibleProjects are the
// projects already filtered for this tenant.
func (v Visibility) FilterInitiatives(initiatives []domain.Initiative, visibleProjects []domain.Project) []domain.Initiative {
	projectIDs := NewIDSet()
	for _, p := range visibleProjects {
		projectIDs.Add(p.ID)
	}

	out := make([]domain.Initiative, 0, len(initiatives))
	for _, i := range initiatives {
		if v.InitiativeVisible(i, projectIDs) {
			out = append(out, i)
		}
	}
	return out
}

func (v Visibility) FilterTeams(teams []domain.Team) []domain.Team {
	out := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if v.HasTeam(t.ID) {
			out = append(out, t)
		}
	}
	return out
}
