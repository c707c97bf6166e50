// Package derive implements the metadata-derivation engine: it structurally
// matches the parameters of a metadata schema against the members of a real
// interface and produces an immutable value tree mirroring the schema.
package derive

import (
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/registry"
	"github.com/typeforge/derive/internal/schema"
)

// Value is one node of a derived value tree. The variants are closed: every
// consumer can switch exhaustively. A tree is immutable once built and safe
// to treat as plain data.
type Value interface {
	isValue()
}

// Str is a captured identifier.
type Str string

// Flag is a boolean presence result.
type Flag bool

// Position is a parameter's resolved positional indices.
type Position struct {
	Global  int // index across all parameter groups
	Group   int // parameter group index
	InGroup int // index within the group
	InScope int // index within the matched scope
}

// FlagSet is a captured parameter flag bit-set.
type FlagSet model.ParamFlags

// Ref is a contextual reference, resolved or deferred.
type Ref struct {
	Target *registry.ValueRef
}

// Annot is a single captured annotation instance.
type Annot struct {
	Annotation model.Annotation
}

// Annots is an ordered collection of captured annotation instances.
type Annots []model.Annotation

// Absent marks an empty zero-or-one slot.
type Absent struct{}

// List is an ordered collection, declaration order preserved.
type List []Value

// NamedMap is a name-keyed collection with stable key order.
type NamedMap struct {
	Keys  []string
	Items map[string]Value
}

// Field is one populated schema parameter of an object.
type Field struct {
	Param *schema.Param
	Value Value
}

// Object mirrors one schema: its parameters in declaration order.
type Object struct {
	Schema *schema.Schema
	Fields []Field
}

// Get returns the value of the named schema parameter.
func (o *Object) Get(name string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Param.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (Str) isValue()      {}
func (Flag) isValue()     {}
func (Position) isValue() {}
func (FlagSet) isValue()  {}
func (Ref) isValue()      {}
func (Annot) isValue()    {}
func (Annots) isValue()   {}
func (Absent) isValue()   {}
func (List) isValue()     {}
func (NamedMap) isValue() {}
func (*Object) isValue()  {}

// walkRefs visits every contextual reference in the tree, reporting the
// owner chain of the schema parameter that produced it.
func walkRefs(v Value, path string, visit func(path string, ref *registry.ValueRef)) {
	switch t := v.(type) {
	case Ref:
		visit(path, t.Target)
	case List:
		for _, e := range t {
			walkRefs(e, path, visit)
		}
	case NamedMap:
		for _, k := range t.Keys {
			walkRefs(t.Items[k], path+"["+k+"]", visit)
		}
	case *Object:
		for _, f := range t.Fields {
			walkRefs(f.Value, path+"."+f.Param.Name, visit)
		}
	}
}
