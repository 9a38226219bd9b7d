// Package resource shapes models into their public JSON form. Transformers
// are where timestamps become RFC 3339 strings and internal columns stay
// internal.
//
//	type MedicineResource struct{}
//	func (MedicineResource) ToMap(v interface{}) resource.Map {
//	    m := v.(models.Medicine)
//	    return resource.Map{"id": m.ID, "name": m.Name, ...}
//	}
package resource

import (
	"reflect"
	"time"
)

// Map is the output shape of a transformer.
type Map = map[string]interface{}

// Transformer converts one model into its API representation.
type Transformer interface {
	ToMap(v interface{}) Map
}

// One transforms a single model.
func One(t Transformer, v interface{}) Map {
	return t.ToMap(v)
}

// Many transforms a slice of models. items must be a slice; anything else
// yields an empty list.
func Many(t Transformer, items interface{}) []Map {
	rv := reflect.ValueOf(items)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return []Map{}
	}

	out := make([]Map, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, t.ToMap(rv.Index(i).Interface()))
	}
	return out
}

// Time renders t in RFC 3339 UTC, the timestamp format of the whole API.
func Time(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimePtr renders an optional timestamp, nil when unset.
func TimePtr(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return Time(*t)
}
