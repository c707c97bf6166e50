package model

import (
	"github.com/typeforge/derive/internal/errors"
)

// Scope identifies which kind of real declaration a schema describes.
type Scope int

const (
	ScopeInterface Scope = iota
	ScopeMethod
	ScopeParameter
)

// String returns the string representation of the scope
func (s Scope) String() string {
	switch s {
	case ScopeInterface:
		return "interface"
	case ScopeMethod:
		return "method"
	case ScopeParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Inner returns the next scope down, or false at parameter scope.
func (s Scope) Inner() (Scope, bool) {
	switch s {
	case ScopeInterface:
		return ScopeMethod, true
	case ScopeMethod:
		return ScopeParameter, true
	default:
		return s, false
	}
}

// MemberKind names the member kind matched at this scope, for diagnostics.
func (s Scope) MemberKind() string {
	switch s {
	case ScopeInterface:
		return "method"
	case ScopeMethod:
		return "parameter"
	default:
		return "member"
	}
}

// ParamFlags is the bit-set of structural parameter properties.
type ParamFlags uint8

const (
	FlagContextual ParamFlags = 1 << iota
	FlagByRef
	FlagVariadic
	FlagHasDefault
	FlagSynthetic
)

// Has reports whether every bit of f2 is set.
func (f ParamFlags) Has(f2 ParamFlags) bool {
	return f&f2 == f2
}

// Param is one concrete parameter declaration of a real method.
type Param struct {
	Name        string
	Type        string // declared type
	Index       int    // global index across all groups
	Group       int    // parameter group index
	IndexInGrp  int    // index within the group
	Flags       ParamFlags
	Annotations []Annotation // own annotations only
	Loc         errors.SourceLocation
}

// OwnTag returns the parameter's own tag annotation, if any.
func (p *Param) OwnTag() (Tag, bool) {
	return TagIn(p.Annotations, KindTag)
}

// EffectiveName returns the declared alias if one exists, else the name.
func (p *Param) EffectiveName() string {
	if alias, ok := AliasIn(p.Annotations); ok {
		return alias
	}
	return p.Name
}

// Method is one concrete method declaration of a real interface.
type Method struct {
	Name        string
	Groups      [][]*Param // ordered parameter groups
	Result      string     // result type
	Annotations []Annotation
	Overrides   []*Method // overridden/implemented declarations, outermost first
	Loc         errors.SourceLocation
}

// Params returns every parameter in declaration order across groups.
func (m *Method) Params() []*Param {
	var out []*Param
	for _, g := range m.Groups {
		out = append(out, g...)
	}
	return out
}

// AllAnnotations returns the method's own annotations followed by those
// inherited from every overridden declaration, in override order.
func (m *Method) AllAnnotations() []Annotation {
	out := append([]Annotation(nil), m.Annotations...)
	for _, o := range m.Overrides {
		out = append(out, o.AllAnnotations()...)
	}
	return out
}

// ParamAnnotations returns the annotations of the parameter at the given
// global index, followed by those of the index-corresponding parameters of
// every overridden declaration.
func (m *Method) ParamAnnotations(global int) []Annotation {
	var out []Annotation
	if p := m.ParamAt(global); p != nil {
		out = append(out, p.Annotations...)
	}
	for _, o := range m.Overrides {
		out = append(out, o.ParamAnnotations(global)...)
	}
	return out
}

// ParamAt returns the parameter with the given global index, or nil.
func (m *Method) ParamAt(global int) *Param {
	for _, g := range m.Groups {
		for _, p := range g {
			if p.Index == global {
				return p
			}
		}
	}
	return nil
}

// OwnTag returns the method's tag annotation, searching its own
// declarations before inherited ones.
func (m *Method) OwnTag() (Tag, bool) {
	return TagIn(m.AllAnnotations(), KindTag)
}

// DefaultParamTag returns the default tag this method declares for its
// untagged parameters, if any.
func (m *Method) DefaultParamTag() (Tag, bool) {
	return TagIn(m.AllAnnotations(), KindDefaultTag)
}

// EffectiveName returns the declared alias if one exists, else the name.
func (m *Method) EffectiveName() string {
	if alias, ok := AliasIn(m.AllAnnotations()); ok {
		return alias
	}
	return m.Name
}

// Interface is the real interface under reflection.
type Interface struct {
	Name        string
	Methods     []*Method // declaration order
	Annotations []Annotation
	Supers      []*Interface // supertypes, for annotation inheritance
	Loc         errors.SourceLocation
}

// AllAnnotations returns the interface's own annotations followed by those
// inherited from every supertype.
func (i *Interface) AllAnnotations() []Annotation {
	out := append([]Annotation(nil), i.Annotations...)
	for _, s := range i.Supers {
		out = append(out, s.AllAnnotations()...)
	}
	return out
}

// DefaultMethodTag returns the default tag this interface declares for its
// untagged methods, if any, searching supertypes as well.
func (i *Interface) DefaultMethodTag() (Tag, bool) {
	return TagIn(i.AllAnnotations(), KindDefaultTag)
}
