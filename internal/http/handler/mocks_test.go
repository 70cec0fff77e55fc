package handler_test

import (
	"context"

	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/service"
	"basegraph.app/hubsync/internal/visibility"
)

type mockHubService struct {
	visibilityFn      func(ctx context.Context, tenantID string) (visibility.Visibility, error)
	listIssuesFn      func(ctx context.Context, tenantID string, filter service.IssueFilter) ([]domain.Issue, error)
	getIssueDetailFn  func(ctx context.Context, tenantID, issueKey string) (*domain.Issue, error)
	listCommentsFn    func(ctx context.Context, tenantID, issueKey string) ([]domain.Comment, error)
	listProjectsFn    func(ctx context.Context, tenantID string, filter service.ProjectFilter) ([]domain.Project, error)
	listInitiativesFn func(ctx context.Context, tenantID string, filter service.InitiativeFilter) ([]domain.Initiative, error)
	listTeamsFn       func(ctx context.Context, tenantID string) ([]domain.Team, error)
}

func (m *mockHubService) Visibility(ctx context.Context, tenantID string) (visibility.Visibility, error) {
	if m.visibilityFn != nil {
		return m.visibilityFn(ctx, tenantID)
	}
	return visibility.Compute(nil), nil
}

func (m *mockHubService) ListIssues(ctx context.Context, tenantID string, filter service.IssueFilter) ([]domain.Issue, error) {
	if m.listIssuesFn != nil {
		return m.listIssuesFn(ctx, tenantID, filter)
	}
	return []domain.Issue{}, nil
}

func (m *mockHubService) GetIssueDetail(ctx context.Context, tenantID, issueKey string) (*domain.Issue, error) {
	if m.getIssueDetailFn != nil {
		return m.getIssueDetailFn(ctx, tenantID, issueKey)
	}
	return nil, nil
}

func (m *mockHubService) ListComments(ctx context.Context, tenantID, issueKey string) ([]domain.Comment, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, tenantID, issueKey)
	}
	return []domain.Comment{}, nil
}

func (m *mockHubService) ListProjects(ctx context.Context, tenantID string, filter service.ProjectFilter) ([]domain.Project, error) {
	if m.listProjectsFn != nil {
		return m.listProjectsFn(ctx, tenantID, filter)
	}
	return []domain.Project{}, nil
}

func (m *mockHubService) ListInitiatives(ctx context.Context, tenantID string, filter service.InitiativeFilter) ([]domain.Initiative, error) {
	if m.listInitiativesFn != nil {
		return m.listInitiativesFn(ctx, tenantID, filter)
	}
	return []domain.Initiative{}, nil
}

func (m *mockHubService) ListTeams(ctx context.Context, tenantID string) ([]domain.Team, error) {
	if m.listTeamsFn != nil {
		return m.listTeamsFn(ctx, tenantID)
	}
	return []domain.Team{}, nil
}

type mockMappingService struct {
	upsertFn     func(ctx context.Context, params service.UpsertMappingParams) (*model.TeamMapping, error)
	deactivateFn func(ctx context.Context, tenantID, teamID string) error
	listFn       func(ctx context.Context, tenantID string) ([]model.TeamMapping, error)
}

func (m *mockMappingService) Upsert(ctx context.Context, params service.UpsertMappingParams) (*model.TeamMapping, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, params)
	}
	return nil, nil
}

func (m *mockMappingService) Deactivate(ctx context.Context, tenantID, teamID string) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, tenantID, teamID)
	}
	return nil
}

func (m *mockMappingService) List(ctx context.Context, tenantID string) ([]model.TeamMapping, error) {
	if m.listFn != nil {
		return m.listFn(ctx, tenantID)
	}
	return nil, nil
}

type mockIntegrationService struct {
	upsertFn      func(ctx context.Context, params service.UpsertIntegrationParams) (*model.Integration, error)
	getFn         func(ctx context.Context, ownerID string) (*model.Integration, error)
	listEnabledFn func(ctx context.Context) ([]model.Integration, error)
}

func (m *mockIntegrationService) Upsert(ctx context.Context, params service.UpsertIntegrationParams) (*model.Integration, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, params)
	}
	return nil, nil
}

func (m *mockIntegrationService) Get(ctx context.Context, ownerID string) (*model.Integration, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID)
	}
	return nil, service.ErrIntegrationNotFound
}

func (m *mockIntegrationService) ListEnabled(ctx context.Context) ([]model.Integration, error) {
	if m.listEnabledFn != nil {
		return m.listEnabledFn(ctx)
	}
	return nil, nil
}

type mockBackfillService struct {
	runFn        func(ctx context.Context, ownerID string) (*service.BackfillResult, error)
	enqueueFn    func(ctx context.Context, ownerID string, trigger queue.Trigger) error
	enqueueAllFn func(ctx context.Context) (int, error)
}

func (m *mockBackfillService) Run(ctx context.Context, ownerID string) (*service.BackfillResult, error) {
	if m.runFn != nil {
		return m.runFn(ctx, ownerID)
	}
	return &service.BackfillResult{OwnerID: ownerID}, nil
}

func (m *mockBackfillService) Enqueue(ctx context.Context, ownerID string, trigger queue.Trigger) error {
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, ownerID, trigger)
	}
	return nil
}

func (m *mockBackfillService) EnqueueAll(ctx context.Context) (int, error) {
	if m.enqueueAllFn != nil {
		return m.enqueueAllFn(ctx)
	}
	return 0, nil
}

type mockSchemaSource struct {
	envelope  []byte
	canonical map[model.EntityType][]byte
}

func (m *mockSchemaSource) EnvelopeSchema() []byte {
	return m.envelope
}

func (m *mockSchemaSource) CanonicalSchema(entityType model.EntityType) ([]byte, bool) {
	doc, ok := m.canonical[entityType]
	return doc, ok
}
