// Package projector rebuilds canonical entity shapes from stored records.
//
// Every function here is total. A record synced from a partial payload is
// still presentable: absent fields are filled from a fixed default table.
package projector

import (
	"time"

	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/model"
)

const (
	UnknownName       = "Unknown"
	DefaultInitStatus = "Planned"
	NoPriority        = "No priority"
)

var priorityLabels = map[int]string{
	0: NoPriority,
	1: "Urgent",
	2: "High",
	3: "Medium",
	4: "Low",
}

// PriorityToLabel is defined for every int; anything outside 0..4 has no
// priority.
func PriorityToLabel(priority int) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}
	return NoPriority
}

func Issue(rec model.Record) domain.Issue {
	doc := rec.Document
	priority, _ := doc.Int("priority")

	return domain.Issue{
		ID:            naturalKey(rec),
		Identifier:    doc.StringOr("identifier", ""),
		Title:         doc.StringOr("title", ""),
		Description:   doc.StringPtr("description"),
		Priority:      priority,
		PriorityLabel: PriorityToLabel(priority),
		URL:           doc.StringOr("url", ""),
		State:         state(doc, "state", "stateId"),
		Assignee:      userRef(doc, "assignee", "assigneeId"),
		Labels:        labels(doc),
		Team:          ref(doc, "team", "teamId"),
		Project:       ref(doc, "project", "projectId"),
		DueDate:       doc.StringPtr("dueDate"),
		CreatedAt:     createdAt(rec),
		UpdatedAt:     updatedAt(rec),
	}
}

func Issues(recs []model.Record) []domain.Issue {
	out := make([]domain.Issue, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Issue(rec))
	}
	return out
}

func Comment(rec model.Record) domain.Comment {
	doc := rec.Document

	author := domain.User{ID: "", Name: UnknownName}
	if u := userRef(doc, "user", "userId"); u != nil {
		author = *u
	}

	issueID := doc.StringOr("issueId", "")
	if issueID == "" {
		if r := ref(doc, "issue", "issueId"); r != nil {
			issueID = r.ID
		}
	}

	return domain.Comment{
		ID:        naturalKey(rec),
		Body:      doc.StringOr("body", ""),
		IssueID:   issueID,
		User:      author,
		CreatedAt: createdAt(rec),
		UpdatedAt: updatedAt(rec),
	}
}

func Comments(recs []model.Record) []domain.Comment {
	out := make([]domain.Comment, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Comment(rec))
	}
	return out
}

func Team(rec model.Record) domain.Team {
	doc := rec.Document
	name := doc.StringOr("name", "")
	private, _ := doc.Bool("private")

	children := refs(doc, "children")
	members := users(doc, "members")

	return domain.Team{
		ID:          naturalKey(rec),
		Key:         doc.StringOr("key", ""),
		Name:        name,
		DisplayName: doc.StringOr("displayName", name),
		Description: doc.StringPtr("description"),
		Color:       doc.StringPtr("color"),
		Icon:        doc.StringPtr("icon"),
		Private:     private,
		Parent:      ref(doc, "parent", "parentId"),
		Children:    children,
		Members:     members,
		CreatedAt:   createdAt(rec),
		UpdatedAt:   updatedAt(rec),
	}
}

func Teams(recs []model.Record) []domain.Team {
	out := make([]domain.Team, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Team(rec))
	}
	return out
}

func Project(rec model.Record) domain.Project {
	doc := rec.Document
	progress, _ := doc.Float("progress")

	status := state(doc, "status", "")
	if _, ok := doc.Object("status"); !ok {
		if legacy, ok := doc.String("state"); ok && legacy != "" {
			status.Name = legacy
		}
	}

	return domain.Project{
		ID:          naturalKey(rec),
		Name:        doc.StringOr("name", ""),
		Description: doc.StringPtr("description"),
		URL:         doc.StringOr("url", ""),
		Icon:        doc.StringPtr("icon"),
		Color:       doc.StringPtr("color"),
		Status:      status,
		Lead:        user(doc, "lead"),
		Progress:    progress,
		StartDate:   doc.StringPtr("startDate"),
		TargetDate:  doc.StringPtr("targetDate"),
		Teams:       refsOrIDs(doc, "teams", "teamIds"),
		Initiatives: refsOrIDs(doc, "initiatives", "initiativeIds"),
		Members:     users(doc, "members"),
		CreatedAt:   createdAt(rec),
		UpdatedAt:   updatedAt(rec),
	}
}

func Projects(recs []model.Record) []domain.Project {
	out := make([]domain.Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Project(rec))
	}
	return out
}

func Initiative(rec model.Record) domain.Initiative {
	doc := rec.Document

	status := DefaultInitStatus
	if s, ok := doc.String("status"); ok && s != "" {
		status = s
	} else if obj, ok := doc.Object("status"); ok {
		status = obj.StringOr("name", DefaultInitStatus)
	}

	return domain.Initiative{
		ID:          naturalKey(rec),
		Name:        doc.StringOr("name", ""),
		Description: doc.StringPtr("description"),
		URL:         doc.StringOr("url", ""),
		Status:      status,
		Owner:       user(doc, "owner"),
		TargetDate:  doc.StringPtr("targetDate"),
		Teams:       refsOrIDs(doc, "teams", "teamIds"),
		Projects:    refsOrIDs(doc, "projects", "projectIds"),
		CreatedAt:   createdAt(rec),
		UpdatedAt:   updatedAt(rec),
	}
}

func Initiatives(recs []model.Record) []domain.Initiative {
	out := make([]domain.Initiative, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Initiative(rec))
	}
	return out
}

func naturalKey(rec model.Record) string {
	if id, ok := rec.Document.String("id"); ok && id != "" {
		return id
	}
	return rec.NaturalKey
}

// createdAt falls back from the document to the record's source timestamp
// and finally to the time the record was synced.
func createdAt(rec model.Record) time.Time {
	if t, ok := rec.Document.Time("createdAt"); ok {
		return t
	}
	if rec.SourceCreatedAt != nil {
		return *rec.SourceCreatedAt
	}
	return rec.SyncedAt
}

func updatedAt(rec model.Record) time.Time {
	if t, ok := rec.Document.Time("updatedAt"); ok {
		return t
	}
	if rec.SourceUpdatedAt != nil {
		return *rec.SourceUpdatedAt
	}
	return rec.SyncedAt
}
