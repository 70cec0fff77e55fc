package model

import (
	"encoding/json"
	"math"
	"time"
)

// Document is a tracker payload stored verbatim. Accessors are total: a
// missing key, an explicit null and a value of the wrong type all read as
// "not there" and never panic.
type Document map[string]any

// ParseDocument decodes a JSON object. Numbers decode as float64.
func ParseDocument(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Lookup reports the raw value and whether the key is present at all. An
// explicit null is present with a nil value.
func (d Document) Lookup(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d[key]
	return v, ok
}

func (d Document) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

func (d Document) IsNull(key string) bool {
	v, ok := d.Lookup(key)
	return ok && v == nil
}

func (d Document) String(key string) (string, bool) {
	v, _ := d.Lookup(key)
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the string at key or fallback when it is not a string.
func (d Document) StringOr(key, fallback string) string {
	if s, ok := d.String(key); ok {
		return s
	}
	return fallback
}

// StringPtr returns nil unless key holds a string.
func (d Document) StringPtr(key string) *string {
	if s, ok := d.String(key); ok {
		return &s
	}
	return nil
}

func (d Document) Float(key string) (float64, bool) {
	v, _ := d.Lookup(key)
	return toFloat(v)
}

// Int reads integral numbers only; 2.5 is not an int.
func (d Document) Int(key string) (int, bool) {
	f, ok := d.Float(key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func (d Document) Bool(key string) (bool, bool) {
	v, _ := d.Lookup(key)
	b, ok := v.(bool)
	return b, ok
}

func (d Document) Object(key string) (Document, bool) {
	v, _ := d.Lookup(key)
	return toDocument(v)
}

// List returns the elements at key. GraphQL connections ({"nodes": [...]})
// are unwrapped so webhook and query payloads read the same way.
func (d Document) List(key string) ([]any, bool) {
	v, _ := d.Lookup(key)
	switch t := v.(type) {
	case []any:
		return t, true
	case []Document:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	}
	if conn, ok := toDocument(v); ok {
		if nodes, ok := conn.List("nodes"); ok {
			return nodes, true
		}
	}
	return nil, false
}

// Objects returns the object elements of the list at key, skipping anything
// that is not an object.
func (d Document) Objects(key string) ([]Document, bool) {
	items, ok := d.List(key)
	if !ok {
		return nil, false
	}
	out := make([]Document, 0, len(items))
	for _, item := range items {
		if obj, ok := toDocument(item); ok {
			out = append(out, obj)
		}
	}
	return out, true
}

// Strings returns the string elements of the list at key.
func (d Document) Strings(key string) ([]string, bool) {
	items, ok := d.List(key)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// Time parses an RFC 3339 timestamp.
func (d Document) Time(key string) (time.Time, bool) {
	s, ok := d.String(key)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Document) TimePtr(key string) *time.Time {
	if t, ok := d.Time(key); ok {
		return &t
	}
	return nil
}

// Merge lays next over a copy of d key by key. Keys absent from next keep
// their value from d; an explicit null in next is kept as null.
func (d Document) Merge(next Document) Document {
	out := d.Clone()
	if out == nil {
		out = Document{}
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}

// Clone is shallow: nested values are shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d Document) Marshal() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(d))
}

func toDocument(v any) (Document, bool) {
	switch t := v.(type) {
	case Document:
		return t, t != nil
	case map[string]any:
		return Document(t), t != nil
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
