package projector

import (
	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/model"
)

// state follows the same precedence as ref: a flat id the object does not
// agree with leaves the state unnamed.
func state(doc model.Document, objKey, idKey string) domain.State {
	obj, ok := doc.Object(objKey)
	if idKey != "" && doc.Has(idKey) {
		id, _ := doc.String(idKey)
		if !ok || id == "" || obj.StringOr("id", "") != id {
			return domain.State{ID: id, Name: UnknownName}
		}
	}
	if !ok {
		return domain.State{Name: UnknownName}
	}
	return domain.State{
		ID:    obj.StringOr("id", ""),
		Name:  obj.StringOr("name", UnknownName),
		Color: obj.StringOr("color", ""),
		Type:  obj.StringOr("type", ""),
	}
}

// user returns nil for a missing or null user, never an empty struct.
func user(doc model.Document, key string) *domain.User {
	obj, ok := doc.Object(key)
	if !ok {
		return nil
	}
	return &domain.User{
		ID:   obj.StringOr("id", ""),
		Name: obj.StringOr("name", UnknownName),
	}
}

// userRef is user with the flat id taking precedence, as in ref.
func userRef(doc model.Document, objKey, idKey string) *domain.User {
	if !doc.Has(idKey) {
		return user(doc, objKey)
	}
	id, _ := doc.String(idKey)
	if id == "" {
		return nil
	}
	if obj, ok := doc.Object(objKey); ok && obj.StringOr("id", "") == id {
		return user(doc, objKey)
	}
	return &domain.User{ID: id, Name: UnknownName}
}

func users(doc model.Document, key string) []domain.User {
	objs, _ := doc.Objects(key)
	out := make([]domain.User, 0, len(objs))
	for _, obj := range objs {
		out = append(out, domain.User{
			ID:   obj.StringOr("id", ""),
			Name: obj.StringOr("name", UnknownName),
		})
	}
	return out
}

func labels(doc model.Document) []domain.Label {
	objs, _ := doc.Objects("labels")
	out := make([]domain.Label, 0, len(objs))
	for _, obj := range objs {
		out = append(out, domain.Label{
			ID:    obj.StringOr("id", ""),
			Name:  obj.StringOr("name", ""),
			Color: obj.StringOr("color", ""),
		})
	}
	return out
}

// ref reads a reference the way the indexed columns do. The flat id wins;
// the embedded object supplies name and key only when its id matches.
func ref(doc model.Document, objKey, idKey string) *domain.Ref {
	obj, isObj := doc.Object(objKey)
	if doc.Has(idKey) {
		id, _ := doc.String(idKey)
		if id == "" {
			return nil
		}
		if isObj && obj.StringOr("id", "") == id {
			r := toRef(obj)
			return &r
		}
		return &domain.Ref{ID: id}
	}
	if isObj && obj.StringOr("id", "") != "" {
		r := toRef(obj)
		return &r
	}
	return nil
}

func refs(doc model.Document, key string) []domain.Ref {
	objs, _ := doc.Objects(key)
	out := make([]domain.Ref, 0, len(objs))
	for _, obj := range objs {
		out = append(out, toRef(obj))
	}
	return out
}

func refsOrIDs(doc model.Document, listKey, idsKey string) []domain.Ref {
	if _, ok := doc.List(listKey); ok {
		return refs(doc, listKey)
	}
	ids, _ := doc.Strings(idsKey)
	out := make([]domain.Ref, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Ref{ID: id})
	}
	return out
}

func toRef(obj model.Document) domain.Ref {
	return domain.Ref{
		ID:   obj.StringOr("id", ""),
		Name: obj.StringOr("name", ""),
		Key:  obj.StringOr("key", ""),
	}
}
