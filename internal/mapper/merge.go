package mapper

import (
	"fmt"

	"basegraph.app/hubsync/internal/model"
)

// refKeys names a reference the tracker may send flat, as an embedded
// object, or both.
type refKeys struct {
	id  string
	obj string
}

var references = map[model.EntityType][]refKeys{
	model.EntityIssue: {
		{id: "stateId", obj: "state"},
		{id: "assigneeId", obj: "assignee"},
		{id: "teamId", obj: "team"},
		{id: "projectId", obj: "project"},
		{id: "cycleId", obj: "cycle"},
	},
	model.EntityComment: {
		{id: "issueId", obj: "issue"},
		{id: "userId", obj: "user"},
	},
	model.EntityProject: {
		{id: "leadId", obj: "lead"},
	},
	model.EntityInitiative: {
		{id: "ownerId", obj: "owner"},
	},
	model.EntityTeam: {
		{id: "parentId", obj: "parent"},
	},
}

// Merge folds a mapped delivery into the stored record and rebuilds the
// columns from the merged document, so indexed columns and projection read
// the same references. When the delivery moves one form of a reference and
// not the other, the form it left behind is dropped.
func (r *Registry) Merge(prior *model.Record, next model.Record) (model.Record, error) {
	merged := model.MergeRecord(prior, next)
	if prior == nil {
		return merged, nil
	}

	dropStaleRefs(merged.Document, next.Document, references[merged.EntityType])

	m, ok := r.mappers[merged.EntityType]
	if !ok {
		return model.Record{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, merged.EntityType)
	}
	remapped, err := m.Map(model.ActionUpdate, merged.Document, merged.OwnerID)
	if err != nil {
		return model.Record{}, fmt.Errorf("remapping merged %s %s: %w", merged.EntityType, merged.NaturalKey, err)
	}
	merged.Columns = remapped.Columns
	return merged, nil
}

// dropStaleRefs edits merged in place. A reference whose flat id and object
// disagree keeps whichever form the delivery carried.
func dropStaleRefs(merged, delivery model.Document, refs []refKeys) {
	for _, ref := range refs {
		if !merged.Has(ref.id) || !merged.Has(ref.obj) {
			continue
		}
		flat, _ := merged.String(ref.id)
		nested := ""
		if obj, ok := merged.Object(ref.obj); ok {
			nested = obj.StringOr("id", "")
		}
		if flat == nested {
			continue
		}

		switch {
		case delivery.Has(ref.id) && !delivery.Has(ref.obj):
			delete(merged, ref.obj)
		case delivery.Has(ref.obj) && !delivery.Has(ref.id):
			delete(merged, ref.id)
		}
	}
}
