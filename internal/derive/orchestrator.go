package derive

import (
	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/registry"
	"github.com/typeforge/derive/internal/schema"
)

// Result is one completed derivation: the immutable value tree for one
// (schema, interface) pair. The tree may still carry deferred contextual
// references; Finalize checks them.
type Result struct {
	Schema    *schema.Schema
	Interface *model.Interface
	Root      *Object
}

// Derive resolves a metadata schema against a real interface, producing
// either a fully constructed value tree or one error enumerating every
// independent failure.
//
// Schema-shape problems abort immediately as a single fatal cause and poison
// every derivation attempt using that schema. Matching problems against this
// particular interface are collected: two parameters failing on two methods
// are both reported.
func Derive(s *schema.Schema, iface *model.Interface, reg *registry.Contextual) (*Result, error) {
	if err := schema.Validate(s); err != nil {
		return nil, err
	}
	if s.Scope != model.ScopeInterface {
		return nil, errors.NewSchemaConfigError(s.Name, "top-level derivation requires an interface-scope schema")
	}
	if reg == nil {
		reg = registry.NewContextual()
	}

	ctx := &context{reg: reg, errs: errors.NewAggregate()}
	subj := subject{scope: model.ScopeInterface, iface: iface}
	root, _ := ctx.resolveObject(s, subj, nil, s.Name)
	if err := ctx.errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return &Result{Schema: s, Interface: iface, Root: root}, nil
}

// Finalize verifies that every deferred contextual reference in the tree
// resolved. Structural matching succeeded independently of instance
// resolvability; this second phase distinguishes "no matching declaration"
// from "matching declaration but unresolved dependency".
func (r *Result) Finalize() error {
	errs := errors.NewAggregate()
	walkRefs(r.Root, r.Schema.Name, func(path string, ref *registry.ValueRef) {
		if !ref.Resolved() {
			errs.Add(errors.NewLookupFailureError(path, ref.TypeName))
		}
	})
	return errs.ErrOrNil()
}

// Unresolved returns every deferred reference still unresolved, with the
// owner chain of the parameter that produced it.
func (r *Result) Unresolved() map[string]*registry.ValueRef {
	out := make(map[string]*registry.ValueRef)
	walkRefs(r.Root, r.Schema.Name, func(path string, ref *registry.ValueRef) {
		if !ref.Resolved() {
			out[path] = ref
		}
	})
	return out
}
