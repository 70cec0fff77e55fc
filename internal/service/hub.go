package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/projector"
	"basegraph.app/hubsync/internal/store"
	"basegraph.app/hubsync/internal/visibility"
)

const (
	DefaultIssueLimit int32 = 250
	MaxIssueLimit     int32 = 1000
)

type IssueFilter struct {
	ProjectID string
	TeamID    string
	// Statuses match a state name or state type.
	Statuses []string
	Limit    int32
}

type ProjectFilter struct {
	TeamID   string
	Statuses []string
}

type InitiativeFilter struct {
	Statuses []string
}

// HubService answers tenant-scoped reads. Callers check membership first;
// scope misses are empty results, never errors.
type HubService interface {
	Visibility(ctx context.Context, tenantID string) (visibility.Visibility, error)
	ListIssues(ctx context.Context, tenantID string, filter IssueFilter) ([]domain.Issue, error)
	// GetIssueDetail returns nil when the issue is missing or out of scope.
	GetIssueDetail(ctx context.Context, tenantID, issueKey string) (*domain.Issue, error)
	ListComments(ctx context.Context, tenantID, issueKey string) ([]domain.Comment, error)
	ListProjects(ctx context.Context, tenantID string, filter ProjectFilter) ([]domain.Project, error)
	ListInitiatives(ctx context.Context, tenantID string, filter InitiativeFilter) ([]domain.Initiative, error)
	ListTeams(ctx context.Context, tenantID string) ([]domain.Team, error)
}

type hubService struct {
	stores StoreProvider
}

func NewHubService(stores StoreProvider) HubService {
	return &hubService{stores: stores}
}

func (s *hubService) Visibility(ctx context.Context, tenantID string) (visibility.Visibility, error) {
	mappings, err := s.stores.Mappings().ListActiveByTenant(ctx, tenantID)
	if err != nil {
		return visibility.Visibility{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return visibility.Compute(mappings), nil
}

func (s *hubService) ListIssues(ctx context.Context, tenantID string, filter IssueFilter) ([]domain.Issue, error) {
	ctx, sc := s.span(ctx, tenantID, "hubsync.hub.list_issues")
	defer sc.End()

	vis, err := s.Visibility(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if vis.Empty() {
		return []domain.Issue{}, nil
	}

	teamIDs := vis.TeamIDs.IDs()
	if filter.TeamID != "" {
		if !vis.HasTeam(filter.TeamID) {
			return []domain.Issue{}, nil
		}
		teamIDs = []string{filter.TeamID}
	}

	var projectIDs []string
	switch {
	case filter.ProjectID != "":
		if !vis.Projects.Allows(filter.ProjectID) {
			return []domain.Issue{}, nil
		}
		projectIDs = []string{filter.ProjectID}
	case !vis.Projects.Unscoped():
		projectIDs = vis.Projects.IDs()
	}

	recs, err := s.stores.Issues().List(ctx, store.IssueQuery{
		OwnerID:    vis.OwnerID,
		TeamIDs:    teamIDs,
		ProjectIDs: projectIDs,
		Statuses:   nilIfEmpty(filter.Statuses),
		Limit:      issueLimit(filter.Limit),
	})
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	issues := vis.FilterIssues(projector.Issues(recs))
	slog.DebugContext(ctx, "listed tenant issues", "stored", len(recs), "visible", len(issues))
	return issues, nil
}

func (s *hubService) GetIssueDetail(ctx context.Context, tenantID, issueKey string) (*domain.Issue, error) {
	ctx, sc := s.span(ctx, tenantID, "hubsync.hub.get_issue")
	defer sc.End()

	vis, err := s.Visibility(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.scopedIssue(ctx, vis, issueKey)
}

func (s *hubService) scopedIssue(ctx context.Context, vis visibility.Visibility, issueKey string) (*domain.Issue, error) {
	if vis.Empty() || issueKey == "" {
		return nil, nil
	}

	rec, err := s.stores.Issues().Get(ctx, vis.OwnerID, issueKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	issue, ok := vis.ScopeIssue(projector.Issue(*rec))
	if !ok {
		return nil, nil
	}
	return &issue, nil
}

func (s *hubService) ListComments(ctx context.Context, tenantID, issueKey string) ([]domain.Comment, error) {
	ctx, sc := s.span(ctx, tenantID, "hubsync.hub.list_comments")
	defer sc.End()

	vis, err := s.Visibility(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	issue, err := s.scopedIssue(ctx, vis, issueKey)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return []domain.Comment{}, nil
	}

	recs, err := s.stores.Comments().ListByIssue(ctx, vis.OwnerID, issue.ID)
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return projector.Comments(recs), nil
}

func (s *hubService) ListProjects(ctx context.Context, tenantID string, filter ProjectFilter) ([]domain.Project, error) {
	ctx, sc := s.span(ctx, tenantID, "hubsync.hub.list_projects")
	defer sc.End()

	vis, err := s.Visibility(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if vis.Empty() {
		return []domain.Project{}, nil
	}

	if filter.TeamID != "" && !vis.HasTeam(filter.TeamID) {
		return []domain.Project{}, nil
	}
	return s.visibleProjects(ctx, vis, filter.TeamID, nilIfEmpty(filter.Statuses))
}

// visibleProjects narrows to one team when teamID is set.
func (s *hubService) visibleProjects(ctx context.Context, vis visibility.Visibility, teamID string, statuses []string) ([]domain.Project, error) {
	teamIDs := vis.TeamIDs.IDs()
	if teamID != "" {
		teamIDs = []string{teamID}
	}

	recs, err := s.stores.Projects().List(ctx, store.ProjectQuery{
		OwnerID:  vis.OwnerID,
		TeamIDs:  teamIDs,
		Statuses: statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	projects := vis.FilterProjects(projector.Projects(recs))
	if teamID == "" {
		return projects, nil
	}

	kept := projects[:0]
	for _, p := range projects {
		if slices.Contains(p.TeamIDs(), teamID) {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func (s *hubService) ListInitiatives(ctx context.Context, tenantID string, filter InitiativeFilter) ([]domain.Initiative, error) {
	ctx, sc := s.span(ctx, tenantID, "hubsync.hub.list_initiatives")
	defer sc.End()

	vis, err := s.Visibility(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if vis.Empty() {
		return []domain.Initiative{}, nil
	}

	projects, err := s.visibleProjects(ctx, vis, "", nil)
	if err != nil {
		return nil, err
	}

	recs, err := s.stores.Initiatives().List(ctx, vis.OwnerID, nilIfEmpty(filter.Statuses))
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return vis.FilterInitiatives(projector.Initiatives(recs), projects), nil
}

func (s *hubService) ListTeams(ctx context.Context, tenantID string) ([]domain.Team, error) {
	ctx, sc := s.span(ctx, tenantID, "hubsync.hub.list_teams")
	defer sc.End()

	vis, err := s.Visibility(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if vis.Empty() {
		return []domain.Team{}, nil
	}

	recs, err := s.stores.Teams().ListByKeys(ctx, vis.OwnerID, vis.TeamIDs.IDs())
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return vis.FilterTeams(projector.Teams(recs)), nil
}

func (s *hubService) span(ctx context.Context, tenantID, name string) (context.Context, *logger.SpanContext) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TenantID:  &tenantID,
		Component: "hubsync.service.hub",
	})
	sc := logger.StartSpan(ctx, name)
	return sc.Context(), sc
}

func issueLimit(limit int32) int32 {
	switch {
	case limit <= 0:
		return DefaultIssueLimit
	case limit > MaxIssueLimit:
		return MaxIssueLimit
	}
	return limit
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
