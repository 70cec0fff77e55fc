package model

import "strings"

// EntityType names a tracker entity the way webhook envelopes do.
type EntityType string

const (
	EntityIssue      EntityType = "Issue"
	EntityComment    EntityType = "Comment"
	EntityProject    EntityType = "Project"
	EntityInitiative EntityType = "Initiative"
	EntityTeam       EntityType = "Team"
)

// EntityTypes lists the synced types in backfill order: parents before the
// records that reference them.
var EntityTypes = []EntityType{EntityTeam, EntityProject, EntityInitiative, EntityIssue, EntityComment}

// ParseEntityType matches case-insensitively; ok is false for types the
// mirror does not store (e.g. "IssueLabel", "Reaction").
func ParseEntityType(s string) (EntityType, bool) {
	for _, t := range EntityTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
)

func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(s)); a {
	case ActionCreate, ActionUpdate, ActionRemove:
		return a, true
	}
	return "", false
}

// Outcome is what ingestion did with one delivery or backfilled entity.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeStale     Outcome = "stale"
	OutcomeDuplicate Outcome = "duplicate"
)
