package metadata

import (
	"errors"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// MethodParameterNamespace is the field-level key under which the metadata of
// a member's parameters is stored.
var MethodParameterNamespace = NewKey("flute.reflection.metadata.for-method-parameter")

// Policy is the rule that folds a new value into a stored one.
type Policy int

const (
	// PolicySet overwrites the stored value.
	PolicySet Policy = iota + 1
	// PolicyAppend adds to the end of a Sequence.
	PolicyAppend
	// PolicyPrepend adds to the start of a Sequence.
	PolicyPrepend
	// PolicyPut adds to a Tagset, ignoring duplicates.
	PolicyPut
)

// String returns the string representation of Policy
func (p Policy) String() string {
	switch p {
	case PolicySet:
		return "set"
	case PolicyAppend:
		return "append"
	case PolicyPrepend:
		return "prepend"
	case PolicyPut:
		return "put"
	default:
		return "unknown"
	}
}

// Registry attaches metadata to declaring types and reads it back.
// Every write is a read-modify-write on the underlying Store performed under
// the registry lock.
type Registry struct {
	mu     sync.RWMutex
	store  Store
	logger *zap.Logger
}

// Option configures a Registry constructed by NewRegistry.
type Option func(*Registry)

// WithStore replaces the default MemoryStore.
func WithStore(s Store) Option {
	return func(r *Registry) {
		if s != nil {
			r.store = s
		}
	}
}

// WithLogger sets the logger used for write tracing. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		store:  NewMemoryStore(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Global registry instance
var globalRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level functions.
func Default() *Registry {
	return globalRegistry
}

// Reset clears the default registry (used for testing).
func Reset() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.store = NewMemoryStore()
}

// SetLogger replaces the logger of the default registry.
func SetLogger(l *zap.Logger) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	WithLogger(l)(globalRegistry)
}

// combine folds data into the stored value according to policy.
func combine(policy Policy, key Key, existing Value, present bool, data any) (Value, error) {
	switch policy {
	case PolicySet:
		return toValue(data), nil

	case PolicyAppend, PolicyPrepend:
		var seq Sequence
		if present {
			s, ok := existing.(Sequence)
			if !ok {
				return nil, &ShapeError{Policy: policy, Key: key, Have: existing.Shape()}
			}
			seq = s
		}
		out := make(Sequence, 0, len(seq)+1)
		if policy == PolicyPrepend {
			out = append(out, data)
			out = append(out, seq...)
		} else {
			out = append(out, seq...)
			out = append(out, data)
		}
		return out, nil

	case PolicyPut:
		if !present {
			return NewTagset(data), nil
		}
		switch v := existing.(type) {
		case *Tagset:
			set := v.clone().(*Tagset)
			set.Add(data)
			return set, nil
		case Sequence:
			// Legacy sequence values keep their shape and only suppress duplicates.
			if v.contains(data) {
				return v, nil
			}
			out := make(Sequence, 0, len(v)+1)
			out = append(out, v...)
			return append(out, data), nil
		default:
			return nil, &ShapeError{Policy: policy, Key: key, Have: existing.Shape()}
		}
	}
	return nil, errors.New("metadata: unknown policy " + policy.String())
}

func (r *Registry) writeClass(target any, kind ObjectType, key Key, policy Policy, data any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	handle, err := Resolve(target, kind.or(Constructor))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store.GetClass(handle, key)
	v, err := combine(policy, key, existing, ok, data)
	if err != nil {
		r.logRejected(handle, "class", policy, key, err)
		return err
	}
	r.store.SetClass(handle, key, v)
	r.logger.Debug("class metadata written",
		zap.Stringer("type", handle),
		zap.Stringer("policy", policy),
		zap.Any("key", key))
	return nil
}

func (r *Registry) writeField(target any, member Member, kind ObjectType, key Key, policy Policy, data any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	handle, err := Resolve(target, kind.or(memberDefault(member)))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store.GetField(handle, member, key)
	v, err := combine(policy, key, existing, ok, data)
	if err != nil {
		r.logRejected(handle, "field "+string(member), policy, key, err)
		return err
	}
	r.store.SetField(handle, member, key, v)
	r.logger.Debug("field metadata written",
		zap.Stringer("type", handle),
		zap.String("member", string(member)),
		zap.Stringer("policy", policy),
		zap.Any("key", key))
	return nil
}

func (r *Registry) writeParameter(target any, member Member, index int, kind ObjectType, key Key, policy Policy, data any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := validateIndex(index); err != nil {
		return err
	}
	handle, err := Resolve(target, kind.or(memberDefault(member)))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	params, err := r.ensureParameters(handle, member, policy)
	if err != nil {
		r.logRejected(handle, "parameters of "+string(member), policy, MethodParameterNamespace, err)
		return err
	}

	existing, ok := params.get(index, key)
	v, err := combine(policy, key, existing, ok, data)
	if err != nil {
		r.logRejected(handle, "parameter of "+string(member), policy, key, err)
		return err
	}
	params.entries(index)[key] = v
	r.store.SetField(handle, member, MethodParameterNamespace, params)
	r.logger.Debug("parameter metadata written",
		zap.Stringer("type", handle),
		zap.String("member", string(member)),
		zap.Int("index", index),
		zap.Stringer("policy", policy),
		zap.Any("key", key))
	return nil
}

// ensureParameters returns the parameter container of member, storing a new
// empty one at field level first when none exists.
func (r *Registry) ensureParameters(handle reflect.Type, member Member, policy Policy) (*Parameters, error) {
	existing, ok := r.store.GetField(handle, member, MethodParameterNamespace)
	if !ok {
		params := newParameters()
		r.store.SetField(handle, member, MethodParameterNamespace, params)
		return params, nil
	}
	params, isParams := existing.(*Parameters)
	if !isParams || params == nil {
		return nil, &ShapeError{Policy: policy, Key: MethodParameterNamespace, Have: existing.Shape()}
	}
	return params, nil
}

func (r *Registry) logRejected(handle reflect.Type, site string, policy Policy, key Key, err error) {
	r.logger.Warn("metadata write rejected",
		zap.Stringer("type", handle),
		zap.String("site", site),
		zap.Stringer("policy", policy),
		zap.Any("key", key),
		zap.Error(err))
}

// GetClassMetadata returns the class metadata stored under key, or nil.
func (r *Registry) GetClassMetadata(target any, key Key, kind ObjectType) (Value, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	handle, err := Resolve(target, kind.or(Instance))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.store.GetClass(handle, key)
	if !ok {
		return nil, nil
	}
	return cloneValue(v), nil
}

// GetAllFieldsMetadata returns the metadata of every member of the declaring
// type, or nil when no member has any.
func (r *Registry) GetAllFieldsMetadata(target any, kind ObjectType) (map[Member]map[Key]Value, error) {
	handle, err := Resolve(target, kind.or(Instance))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := r.store.FieldEntries(handle)
	if fields == nil {
		return nil, nil
	}
	out := make(map[Member]map[Key]Value, len(fields))
	for member, entries := range fields {
		out[member] = cloneEntries(entries)
	}
	return out, nil
}

// GetAllMetadataOfField returns every value stored for member, or nil.
func (r *Registry) GetAllMetadataOfField(target any, member Member, kind ObjectType) (map[Key]Value, error) {
	handle, err := Resolve(target, kind.or(Instance))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := r.store.FieldEntries(handle)
	entries, ok := fields[member]
	if !ok {
		return nil, nil
	}
	return cloneEntries(entries), nil
}

// GetFieldMetadata returns the value stored for member under key, or nil.
func (r *Registry) GetFieldMetadata(target any, member Member, key Key, kind ObjectType) (Value, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	handle, err := Resolve(target, kind.or(Instance))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.store.GetField(handle, member, key)
	if !ok {
		return nil, nil
	}
	return cloneValue(v), nil
}

// GetAllMethodParametersMetadata returns the parameter metadata of member,
// or nil. Use ConstructorMember for constructor parameters.
func (r *Registry) GetAllMethodParametersMetadata(target any, member Member, kind ObjectType) (*Parameters, error) {
	handle, err := Resolve(target, kind.or(Instance))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	params := r.parametersOf(handle, member)
	if params == nil {
		return nil, nil
	}
	return params.clone().(*Parameters), nil
}

// GetAllMetadataForMethodParameter returns every value stored for the
// parameter at index of member, or nil.
func (r *Registry) GetAllMetadataForMethodParameter(target any, member Member, index int, kind ObjectType) (map[Key]Value, error) {
	handle, err := Resolve(target, kind.or(Instance))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.parametersOf(handle, member).At(index), nil
}

// GetMethodParameterMetadata returns the value stored under key for the
// parameter at index of member, or nil.
func (r *Registry) GetMethodParameterMetadata(target any, member Member, index int, key Key, kind ObjectType) (Value, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	handle, err := Resolve(target, kind.or(Instance))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	params := r.parametersOf(handle, member)
	if params == nil {
		return nil, nil
	}
	v, ok := params.get(index, key)
	if !ok {
		return nil, nil
	}
	return cloneValue(v), nil
}

// parametersOf returns the live parameter container of member, or nil.
func (r *Registry) parametersOf(handle reflect.Type, member Member) *Parameters {
	v, ok := r.store.GetField(handle, member, MethodParameterNamespace)
	if !ok {
		return nil
	}
	params, _ := v.(*Parameters)
	return params
}
