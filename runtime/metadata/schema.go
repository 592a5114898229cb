package metadata

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the version written into every snapshot.
const SchemaVersion = "1.0"

// Schema is a JSON-ready snapshot of a registry for use by tooling.
// Snapshots are exports only; they are never loaded back into a registry.
type Schema struct {
	ID        string       `json:"id"`        // Unique snapshot identifier
	Version   string       `json:"version"`   // Schema version for evolution
	Generated time.Time    `json:"generated"` // Timestamp of snapshot generation
	Types     []TypeSchema `json:"types"`     // One entry per declaring type, sorted by name
}

// TypeSchema captures the metadata of one declaring type.
type TypeSchema struct {
	Name    string         `json:"name"`              // Package-qualified type name
	Short   string         `json:"short"`             // Package-local name (e.g. "main.Account")
	Kind    string         `json:"kind"`              // reflect.Kind of the type
	Class   []EntrySchema  `json:"class,omitempty"`   // Class-level metadata
	Members []MemberSchema `json:"members,omitempty"` // Field, method and constructor metadata
}

// MemberSchema captures the metadata of one member.
type MemberSchema struct {
	Name        string            `json:"name"`                  // Member name, empty for the constructor
	Constructor bool              `json:"constructor,omitempty"` // Whether this is the constructor pseudo-member
	Entries     []EntrySchema     `json:"entries,omitempty"`     // Member-level metadata
	Parameters  []ParameterSchema `json:"parameters,omitempty"`  // Parameter metadata by index
}

// ParameterSchema captures the metadata of one parameter.
type ParameterSchema struct {
	Index   int           `json:"index"`   // Zero-based parameter position
	Entries []EntrySchema `json:"entries"` // Parameter metadata
}

// EntrySchema is one (key, value) pair.
type EntrySchema struct {
	Key    string        `json:"key"`    // Key rendered with fmt
	Shape  string        `json:"shape"`  // scalar, sequence or tagset
	Values []ValueSchema `json:"values"` // Scalar has one value; sequences keep their order
}

// ValueSchema renders one stored value.
type ValueSchema struct {
	Type string `json:"type"` // Go type of the value
	Text string `json:"text"` // fmt %+v rendering of the value
}

// Lookup finds a type by package-qualified name, short name, or bare name.
func (s *Schema) Lookup(name string) (*TypeSchema, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %s (snapshot is empty)", ErrTypeNotFound, name)
	}
	var matches []*TypeSchema
	for i := range s.Types {
		t := &s.Types[i]
		if t.Name == name || t.Short == name {
			return t, nil
		}
		if bareName(t.Short) == name {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, fmt.Errorf("%w: %s matches %s", ErrAmbiguousType, name, strings.Join(names, ", "))
	}
}

// Names returns the package-qualified names of all types.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Types))
	for i, t := range s.Types {
		names[i] = t.Name
	}
	return names
}

func bareName(short string) string {
	if i := strings.LastIndex(short, "."); i >= 0 {
		return short[i+1:]
	}
	return short
}

// Snapshot captures the registry contents. Types, members, parameters and
// keys are sorted so two snapshots of the same registry differ only in ID
// and Generated.
func (r *Registry) Snapshot() *Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema := &Schema{
		ID:        uuid.New().String(),
		Version:   SchemaVersion,
		Generated: time.Now().UTC(),
		Types:     []TypeSchema{},
	}

	for _, handle := range r.store.Handles() {
		ts := TypeSchema{
			Name:  typeName(handle),
			Short: handle.String(),
			Kind:  handle.Kind().String(),
			Class: entrySchemas(r.store.ClassEntries(handle)),
		}

		fields := r.store.FieldEntries(handle)
		members := make([]Member, 0, len(fields))
		for m := range fields {
			members = append(members, m)
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })

		for _, m := range members {
			ms := MemberSchema{
				Name:        string(m),
				Constructor: m.IsConstructor(),
				Entries:     entrySchemas(fields[m]),
			}
			if params, ok := fields[m][MethodParameterNamespace].(*Parameters); ok {
				for _, index := range params.Indices() {
					ms.Parameters = append(ms.Parameters, ParameterSchema{
						Index:   index,
						Entries: entrySchemas(params.byIndex[index]),
					})
				}
			}
			ts.Members = append(ts.Members, ms)
		}

		schema.Types = append(schema.Types, ts)
	}

	return schema
}

func entrySchemas(entries map[Key]Value) []EntrySchema {
	var out []EntrySchema
	for key, v := range entries {
		if key == MethodParameterNamespace {
			continue
		}
		out = append(out, EntrySchema{
			Key:    fmt.Sprint(key),
			Shape:  v.Shape().String(),
			Values: valueSchemas(v),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func valueSchemas(v Value) []ValueSchema {
	items := Items(v)
	out := make([]ValueSchema, len(items))
	for i, item := range items {
		out[i] = ValueSchema{Type: valueType(item), Text: fmt.Sprintf("%+v", item)}
	}
	return out
}

func valueType(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
