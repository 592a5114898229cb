package metadata

import (
	"reflect"
	"sort"
)

// Store maps (handle, key) and (handle, member, key) to values. Getters never
// fail: a missing entry is reported through the boolean.
//
// Stores need not be safe for concurrent use; the Registry serializes access.
type Store interface {
	GetClass(handle reflect.Type, key Key) (Value, bool)
	SetClass(handle reflect.Type, key Key, value Value)
	GetField(handle reflect.Type, member Member, key Key) (Value, bool)
	SetField(handle reflect.Type, member Member, key Key, value Value)

	// ClassEntries returns the class namespace of handle, or nil.
	ClassEntries(handle reflect.Type) map[Key]Value
	// FieldEntries returns the field namespace of handle, or nil.
	FieldEntries(handle reflect.Type) map[Member]map[Key]Value
	// Handles returns every handle with stored metadata.
	Handles() []reflect.Type
}

// record is the metadata of one declaring type.
type record struct {
	class  map[Key]Value
	fields map[Member]map[Key]Value
}

// MemoryStore is the in-process Store used by NewRegistry.
type MemoryStore struct {
	records map[reflect.Type]*record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[reflect.Type]*record)}
}

func (s *MemoryStore) lookup(handle reflect.Type) *record {
	return s.records[handle]
}

func (s *MemoryStore) ensure(handle reflect.Type) *record {
	rec, ok := s.records[handle]
	if !ok {
		rec = &record{}
		s.records[handle] = rec
	}
	return rec
}

// GetClass implements Store.
func (s *MemoryStore) GetClass(handle reflect.Type, key Key) (Value, bool) {
	rec := s.lookup(handle)
	if rec == nil || rec.class == nil {
		return nil, false
	}
	v, ok := rec.class[key]
	return v, ok
}

// SetClass implements Store.
func (s *MemoryStore) SetClass(handle reflect.Type, key Key, value Value) {
	rec := s.ensure(handle)
	if rec.class == nil {
		rec.class = make(map[Key]Value)
	}
	rec.class[key] = value
}

// GetField implements Store.
func (s *MemoryStore) GetField(handle reflect.Type, member Member, key Key) (Value, bool) {
	rec := s.lookup(handle)
	if rec == nil || rec.fields == nil {
		return nil, false
	}
	entries, ok := rec.fields[member]
	if !ok {
		return nil, false
	}
	v, ok := entries[key]
	return v, ok
}

// SetField implements Store. The member's map is created on first write.
func (s *MemoryStore) SetField(handle reflect.Type, member Member, key Key, value Value) {
	rec := s.ensure(handle)
	if rec.fields == nil {
		rec.fields = make(map[Member]map[Key]Value)
	}
	entries, ok := rec.fields[member]
	if !ok {
		entries = make(map[Key]Value)
		rec.fields[member] = entries
	}
	entries[key] = value
}

// ClassEntries implements Store.
func (s *MemoryStore) ClassEntries(handle reflect.Type) map[Key]Value {
	rec := s.lookup(handle)
	if rec == nil {
		return nil
	}
	return rec.class
}

// FieldEntries implements Store.
func (s *MemoryStore) FieldEntries(handle reflect.Type) map[Member]map[Key]Value {
	rec := s.lookup(handle)
	if rec == nil {
		return nil
	}
	return rec.fields
}

// Handles implements Store. Handles are ordered by their string form.
func (s *MemoryStore) Handles() []reflect.Type {
	handles := make([]reflect.Type, 0, len(s.records))
	for h := range s.records {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool {
		return typeName(handles[i]) < typeName(handles[j])
	})
	return handles
}

// typeName returns the package-qualified name of t.
func typeName(t reflect.Type) string {
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
