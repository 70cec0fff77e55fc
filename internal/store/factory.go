package store

import (
	"fmt"

	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Issues() IssueStore {
	return newIssueStore(s.queries)
}

func (s *Stores) Comments() CommentStore {
	return newCommentStore(s.queries)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.queries)
}

func (s *Stores) Initiatives() InitiativeStore {
	return newInitiativeStore(s.queries)
}

func (s *Stores) Teams() TeamStore {
	return newTeamStore(s.queries)
}

func (s *Stores) Mappings() MappingStore {
	return newMappingStore(s.queries)
}

func (s *Stores) Integrations() IntegrationStore {
	return newIntegrationStore(s.queries)
}

func (s *Stores) Locks() LockStore {
	return newLockStore(s.queries)
}

// Records returns the store for an entity type.
func (s *Stores) Records(entityType model.EntityType) (RecordStore, error) {
	switch entityType {
	case model.EntityIssue:
		return s.Issues(), nil
	case model.EntityComment:
		return s.Comments(), nil
	case model.EntityProject:
		return s.Projects(), nil
	case model.EntityInitiative:
		return s.Initiatives(), nil
	case model.EntityTeam:
		return s.Teams(), nil
	}
	return nil, fmt.Errorf("no record store for entity type %q", entityType)
}
