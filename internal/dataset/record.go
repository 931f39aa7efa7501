// Package dataset loads and saves the key-value datasets that fade annotates.
//
// A dataset is a top-level mapping from an identifier to a record, where each
// record is itself a mapping of named fields. Both levels keep their source
// order so traversal and output follow the file.
package dataset

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Record is one dataset entry: named fields in source order.
type Record struct {
	names  []string
	fields map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]any)}
}

// Fields returns the field names in order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get returns the raw value of a field. Fields loaded from YAML are held as
// their source *yaml.Node until overwritten.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Set adds or overwrites a field. An existing field keeps its position.
func (r *Record) Set(name string, value any) {
	if _, ok := r.fields[name]; !ok {
		r.names = append(r.names, name)
	}
	r.fields[name] = value
}

// Text returns the field as display text, or fallback when the field is
// absent or null. Non-string values are rendered as compact JSON.
func (r *Record) Text(name, fallback string) string {
	v, ok := r.fields[name]
	if !ok || v == nil {
		return fallback
	}
	if n, isNode := v.(*yaml.Node); isNode {
		if text, ok := yamlText(n); ok {
			return text
		}
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Bool reports a boolean field. ok is false when the field is absent or not
// a boolean.
func (r *Record) Bool(name string) (value bool, ok bool) {
	v, present := r.fields[name]
	if !present {
		return false, false
	}
	if n, isNode := v.(*yaml.Node); isNode {
		return yamlBool(n)
	}
	b, isBool := v.(bool)
	return b, isBool
}

// Collection is an insertion-ordered mapping from identifier to record.
type Collection struct {
	keys    []string
	records map[string]*Record
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{records: make(map[string]*Record)}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.keys)
}

// Keys returns a snapshot of the identifiers in order. Later changes to the
// collection do not affect the returned slice.
func (c *Collection) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Get returns the record for key.
func (c *Collection) Get(key string) (*Record, bool) {
	r, ok := c.records[key]
	return r, ok
}

// Put stores a record. A repeated key keeps its first position and takes the
// new record, matching how duplicate keys decode.
func (c *Collection) Put(key string, r *Record) {
	if _, ok := c.records[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.records[key] = r
}
