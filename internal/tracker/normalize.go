package tracker

import "basegraph.app/hubsync/internal/model"

type derivedID struct {
	objKey string
	idKey  string
}

// Flat ids webhooks send next to their nested objects.
var derivedIDs = map[model.EntityType][]derivedID{
	model.EntityIssue: {
		{"state", "stateId"},
		{"assignee", "assigneeId"},
		{"team", "teamId"},
		{"project", "projectId"},
		{"cycle", "cycleId"},
	},
	model.EntityComment: {
		{"issue", "issueId"},
		{"user", "userId"},
	},
	model.EntityProject: {
		{"lead", "leadId"},
	},
	model.EntityInitiative: {
		{"owner", "ownerId"},
	},
	model.EntityTeam: {
		{"parent", "parentId"},
	},
}

var derivedIDLists = map[model.EntityType][]derivedID{
	model.EntityIssue:      {{"labels", "labelIds"}},
	model.EntityProject:    {{"teams", "teamIds"}, {"initiatives", "initiativeIds"}},
	model.EntityInitiative: {{"projects", "projectIds"}},
}

// Normalize turns a GraphQL node into the shape of a create webhook payload:
// connections become plain arrays and nested references gain their flat id.
func Normalize(entityType model.EntityType, node model.Document) model.Document {
	doc := make(model.Document, len(node))
	for key, value := range node {
		if conn, ok := value.(map[string]any); ok {
			if nodes, isConn := conn["nodes"]; isConn && len(conn) == 1 {
				value = nodes
			}
		}
		doc[key] = value
	}

	for _, d := range derivedIDs[entityType] {
		if doc.Has(d.idKey) {
			continue
		}
		if doc.IsNull(d.objKey) {
			doc[d.idKey] = nil
			continue
		}
		if obj, ok := doc.Object(d.objKey); ok {
			if id, ok := obj.String("id"); ok {
				doc[d.idKey] = id
			}
		}
	}

	for _, d := range derivedIDLists[entityType] {
		if doc.Has(d.idKey) || !doc.Has(d.objKey) {
			continue
		}
		ids := []any{}
		objs, _ := doc.Objects(d.objKey)
		for _, obj := range objs {
			if id, ok := obj.String("id"); ok {
				ids = append(ids, id)
			}
		}
		doc[d.idKey] = ids
	}
	return doc
}
