package paths

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NotAvailable is how a Value with no match is rendered.
const NotAvailable = "path NA"

// Value is one resolved entry: no path (not available), one path, or an
// ordered list of paths.
type Value struct {
	paths []string
}

// Single builds a Value holding one path.
func Single(p string) Value { return Value{paths: []string{p}} }

// Many builds a Value from a match list. An empty list is NotAvailable.
func Many(ps []string) Value {
	if len(ps) == 0 {
		return Value{}
	}
	return Value{paths: append([]string(nil), ps...)}
}

// Available reports whether at least one path was found.
func (v Value) Available() bool { return len(v.paths) > 0 }

// IsList reports whether the search returned more than one match.
func (v Value) IsList() bool { return len(v.paths) > 1 }

// Path returns the path of a single-match Value.
func (v Value) Path() (string, bool) {
	if len(v.paths) != 1 {
		return "", false
	}
	return v.paths[0], true
}

// Paths returns a copy of every path, empty when not available.
func (v Value) Paths() []string { return append([]string(nil), v.paths...) }

func (v Value) String() string {
	switch len(v.paths) {
	case 0:
		return NotAvailable
	case 1:
		return v.paths[0]
	default:
		return fmt.Sprint(v.paths)
	}
}

func (v Value) encodable() any {
	switch len(v.paths) {
	case 0:
		return NotAvailable
	case 1:
		return v.paths[0]
	default:
		return v.paths
	}
}

// MarshalJSON renders the sentinel string, a single string or an array.
func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.encodable()) }

// UnmarshalJSON accepts the forms produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = decodeString(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("paths: value must be a string or list of strings: %w", err)
	}
	*v = Many(list)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (v Value) MarshalYAML() (any, error) { return v.encodable(), nil }

func decodeString(s string) Value {
	if s == NotAvailable {
		return Value{}
	}
	return Single(s)
}

// Entry is one named Value in a Result.
type Entry struct {
	Name  string
	Value Value
}

// Result is the flat, ordered output of a resolution: the three drive keys
// first, then every catalog artifact. It is not modified after Resolve returns.
type Result struct {
	entries []Entry
	index   map[string]int
	drives  DriveSet
}

func newResult(entries []Entry, drives DriveSet) *Result {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		idx[e.Name] = i
	}
	return &Result{entries: entries, index: idx, drives: drives}
}

// Get returns the Value stored under name.
func (r *Result) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.entries[i].Value, true
}

// Keys returns every entry name in output order.
func (r *Result) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Name
	}
	return keys
}

// Entries returns a copy of the ordered entries.
func (r *Result) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Name: e.Name, Value: Many(e.Value.paths)}
	}
	return out
}

// Drives returns the roots the result was derived from.
func (r *Result) Drives() DriveSet { return r.drives }

// Len is the number of entries.
func (r *Result) Len() int { return len(r.entries) }

// MarshalJSON writes a single JSON object with keys in output order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		v, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML produces a mapping node so key order survives encoding.
func (r *Result) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range r.entries {
		var val yaml.Node
		if err := val.Encode(e.Value.encodable()); err != nil {
			return nil, fmt.Errorf("encode %s: %w", e.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&val,
		)
	}
	return node, nil
}
