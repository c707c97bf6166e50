// Package registry implements the contextual-instance resolver: an explicit,
// injectable registry of instances keyed by requested type name. Callers
// populate it before invoking derivation; the engine queries it, never
// mutates it.
package registry

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/typeforge/derive/internal/utils"
)

// ValueRef is a handle to a contextually resolved instance. A non-strict
// lookup always yields a ref, resolved or not; unresolved refs fail later,
// at value-tree finalization, so structural matching stays independent of
// instance resolvability.
type ValueRef struct {
	ID       uuid.UUID // stable handle used in finalization diagnostics
	TypeName string
	value    interface{}
	resolved bool
}

// Resolved reports whether the ref points at a registered instance.
func (r *ValueRef) Resolved() bool {
	return r != nil && r.resolved
}

// Value returns the referenced instance, or false when unresolved.
func (r *ValueRef) Value() (interface{}, bool) {
	if !r.Resolved() {
		return nil, false
	}
	return r.value, true
}

func (r *ValueRef) String() string {
	if r.Resolved() {
		return fmt.Sprintf("ref<%s>", r.TypeName)
	}
	return fmt.Sprintf("ref<%s, unresolved>", r.TypeName)
}

// Contextual resolves registered instances by type name. Safe for concurrent
// lookups; idempotent and side-effect-free once populated.
type Contextual struct {
	refs   *utils.Registry[string, *ValueRef]
	misses *utils.Registry[string, *ValueRef]
}

// NewContextual creates an empty contextual resolver.
func NewContextual() *Contextual {
	return &Contextual{
		refs:   utils.NewRegistry[string, *ValueRef](),
		misses: utils.NewRegistry[string, *ValueRef](),
	}
}

// Register binds an instance to a type name. Registering the same type name
// twice is an error: the resolver is populated once, before derivation.
func (c *Contextual) Register(typeName string, instance interface{}) error {
	ref := &ValueRef{
		ID:       uuid.New(),
		TypeName: typeName,
		value:    instance,
		resolved: true,
	}
	return c.refs.RegisterWithValidator(typeName, ref, func(key string, _ *ValueRef, items map[string]*ValueRef) error {
		if _, exists := items[key]; exists {
			return fmt.Errorf("type %q is already registered", key)
		}
		return nil
	})
}

// RegisterValue binds an instance under its own reflected type name.
func (c *Contextual) RegisterValue(instance interface{}) error {
	return c.Register(reflect.TypeOf(instance).String(), instance)
}

// Lookup is the non-strict variant: it always returns a ref. An unknown type
// yields an unresolved ref, cached so repeated lookups of the same type
// return the same handle within one resolver.
func (c *Contextual) Lookup(typeName string) *ValueRef {
	if ref, ok := c.refs.Get(typeName); ok {
		return ref
	}
	if ref, ok := c.misses.Get(typeName); ok {
		return ref
	}
	ref := &ValueRef{ID: uuid.New(), TypeName: typeName}
	c.misses.Register(typeName, ref)
	return ref
}

// LookupStrict is the strict variant: absence reports false and influences
// which real declaration is considered matching.
func (c *Contextual) LookupStrict(typeName string) (*ValueRef, bool) {
	ref, ok := c.refs.Get(typeName)
	return ref, ok
}

// Has reports whether an instance is registered for the type name.
func (c *Contextual) Has(typeName string) bool {
	return c.refs.Has(typeName)
}

// Size returns the number of registered instances.
func (c *Contextual) Size() int {
	return c.refs.Size()
}
