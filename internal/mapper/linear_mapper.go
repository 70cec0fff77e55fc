package mapper

import (
	"fmt"

	"basegraph.app/hubsync/internal/model"
)

// Registry dispatches payloads to the mapper registered for their type.
type Registry struct {
	mappers map[model.EntityType]EntityMapper
}

func NewRegistry() *Registry {
	return &Registry{mappers: make(map[model.EntityType]EntityMapper)}
}

// NewLinearRegistry registers the mappers for every entity the mirror stores.
func NewLinearRegistry() *Registry {
	r := NewRegistry()
	r.Register(model.EntityIssue, MapperFunc(MapIssue))
	r.Register(model.EntityComment, MapperFunc(MapComment))
	r.Register(model.EntityProject, MapperFunc(MapProject))
	r.Register(model.EntityInitiative, MapperFunc(MapInitiative))
	r.Register(model.EntityTeam, MapperFunc(MapTeam))
	return r
}

func (r *Registry) Register(entityType model.EntityType, m EntityMapper) {
	r.mappers[entityType] = m
}

func (r *Registry) Supports(entityType model.EntityType) bool {
	_, ok := r.mappers[entityType]
	return ok
}

func (r *Registry) Map(entityType model.EntityType, action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	m, ok := r.mappers[entityType]
	if !ok {
		return model.Record{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
	return m.Map(action, payload, ownerID)
}

func MapIssue(action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	rec, err := baseRecord(model.EntityIssue, action, payload, ownerID)
	if err != nil {
		return model.Record{}, err
	}
	rec.Columns = IssueColumns(payload)
	return rec, nil
}

// IssueColumns derives the indexed issue columns from a payload.
func IssueColumns(doc model.Document) model.IssueColumns {
	return model.IssueColumns{
		Identifier:   optString(doc, "identifier"),
		Title:        optString(doc, "title"),
		StateID:      optRef(doc, "stateId", "state"),
		StateName:    optRefField(doc, "stateId", "state", "name"),
		StateType:    optRefField(doc, "stateId", "state", "type"),
		Priority:     optInt(doc, "priority"),
		AssigneeID:   optRef(doc, "assigneeId", "assignee"),
		AssigneeName: optRefField(doc, "assigneeId", "assignee", "name"),
		TeamID:       optRef(doc, "teamId", "team"),
		ProjectID:    optRef(doc, "projectId", "project"),
		CycleID:      optRef(doc, "cycleId", "cycle"),
		LabelIDs:     optIDs(doc, "labelIds", "labels"),
		DueDate:      optString(doc, "dueDate"),
	}
}

func MapComment(action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	rec, err := baseRecord(model.EntityComment, action, payload, ownerID)
	if err != nil {
		return model.Record{}, err
	}
	rec.Columns = CommentColumns(payload)
	return rec, nil
}

func CommentColumns(doc model.Document) model.CommentColumns {
	return model.CommentColumns{
		IssueRef: optRef(doc, "issueId", "issue"),
		UserID:   optRef(doc, "userId", "user"),
		UserName: optRefField(doc, "userId", "user", "name"),
	}
}

func MapProject(action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	rec, err := baseRecord(model.EntityProject, action, payload, ownerID)
	if err != nil {
		return model.Record{}, err
	}
	rec.Columns = ProjectColumns(payload)
	return rec, nil
}

func ProjectColumns(doc model.Document) model.ProjectColumns {
	// Older payloads carry the status as a bare "state" string.
	status := optNested(doc, "status", "name")
	if !status.Present() {
		status = optString(doc, "state")
	}
	return model.ProjectColumns{
		Name:          optString(doc, "name"),
		StatusName:    status,
		LeadID:        optRef(doc, "leadId", "lead"),
		TeamIDs:       optIDs(doc, "teamIds", "teams"),
		InitiativeIDs: optIDs(doc, "initiativeIds", "initiatives"),
	}
}

func MapInitiative(action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	rec, err := baseRecord(model.EntityInitiative, action, payload, ownerID)
	if err != nil {
		return model.Record{}, err
	}
	rec.Columns = InitiativeColumns(payload)
	return rec, nil
}

func InitiativeColumns(doc model.Document) model.InitiativeColumns {
	status := optString(doc, "status")
	if _, isObject := doc.Object("status"); isObject {
		status = optNested(doc, "status", "name")
	}
	return model.InitiativeColumns{
		Name:       optString(doc, "name"),
		Status:     status,
		OwnerID:    optRef(doc, "ownerId", "owner"),
		TeamIDs:    optIDs(doc, "teamIds", "teams"),
		ProjectIDs: optIDs(doc, "projectIds", "projects"),
	}
}

func MapTeam(action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	rec, err := baseRecord(model.EntityTeam, action, payload, ownerID)
	if err != nil {
		return model.Record{}, err
	}
	rec.Columns = TeamColumns(payload)
	return rec, nil
}

func TeamColumns(doc model.Document) model.TeamColumns {
	return model.TeamColumns{
		Key:      optString(doc, "key"),
		Name:     optString(doc, "name"),
		ParentID: optRef(doc, "parentId", "parent"),
		Private:  optBool(doc, "private"),
	}
}
