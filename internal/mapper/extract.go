package mapper

import "basegraph.app/hubsync/internal/model"

// Extraction helpers. Each returns an absent Opt when the delivery does not
// mention the field or holds a value of the wrong type, and a null Opt when
// the delivery explicitly clears it.

func optString(doc model.Document, key string) model.Opt[string] {
	v, ok := doc.Lookup(key)
	if !ok {
		return model.Opt[string]{}
	}
	if v == nil {
		return model.Null[string]()
	}
	if s, ok := v.(string); ok {
		return model.Some(s)
	}
	return model.Opt[string]{}
}

func optInt(doc model.Document, key string) model.Opt[int] {
	if doc.IsNull(key) {
		return model.Null[int]()
	}
	if n, ok := doc.Int(key); ok {
		return model.Some(n)
	}
	return model.Opt[int]{}
}

func optBool(doc model.Document, key string) model.Opt[bool] {
	if doc.IsNull(key) {
		return model.Null[bool]()
	}
	if b, ok := doc.Bool(key); ok {
		return model.Some(b)
	}
	return model.Opt[bool]{}
}

// optNested reads parent.field. The parent being absent leaves the column
// absent; the parent being null clears it.
func optNested(doc model.Document, parent, field string) model.Opt[string] {
	v, ok := doc.Lookup(parent)
	if !ok {
		return model.Opt[string]{}
	}
	if v == nil {
		return model.Null[string]()
	}
	obj, ok := doc.Object(parent)
	if !ok {
		return model.Opt[string]{}
	}
	return optString(obj, field)
}

// optRef reads a reference delivered either flat (teamId) or as an object
// (team.id). The flat key wins when both are present.
func optRef(doc model.Document, idKey, objKey string) model.Opt[string] {
	if doc.Has(idKey) {
		return optString(doc, idKey)
	}
	return optNested(doc, objKey, "id")
}

// optRefField reads a descriptive field of a referenced object. The object
// only describes the reference when it agrees with the flat id; a flat id
// arriving alone or pointing elsewhere clears the field.
func optRefField(doc model.Document, idKey, objKey, field string) model.Opt[string] {
	if doc.Has(idKey) && !refAgrees(doc, idKey, objKey) {
		return model.Null[string]()
	}
	if doc.Has(objKey) {
		return optNested(doc, objKey, field)
	}
	return model.Opt[string]{}
}

func refAgrees(doc model.Document, idKey, objKey string) bool {
	flat, ok := doc.String(idKey)
	if !ok || flat == "" {
		return false
	}
	obj, ok := doc.Object(objKey)
	return ok && obj.StringOr("id", "") == flat
}

// optIDs reads a list of ids delivered either as an id array (labelIds) or
// as a list/connection of objects (labels).
func optIDs(doc model.Document, idsKey, listKey string) model.Opt[[]string] {
	if doc.Has(idsKey) {
		if doc.IsNull(idsKey) {
			return model.Null[[]string]()
		}
		if ids, ok := doc.Strings(idsKey); ok {
			return model.Some(ids)
		}
		return model.Opt[[]string]{}
	}

	if !doc.Has(listKey) {
		return model.Opt[[]string]{}
	}
	if doc.IsNull(listKey) {
		return model.Null[[]string]()
	}
	objs, ok := doc.Objects(listKey)
	if !ok {
		return model.Opt[[]string]{}
	}
	ids := make([]string, 0, len(objs))
	for _, obj := range objs {
		if id, ok := obj.String("id"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return model.Some(ids)
}
