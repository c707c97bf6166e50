package schema

import (
	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
)

// Param is one parameter of a metadata schema: one fact to gather about a
// real declaration, qualified by a strategy and, where applicable, a
// cardinality and a tag restriction.
type Param struct {
	Name        string
	Strategy    Strategy
	Cardinality Cardinality // meaningful only when Strategy.Cardinal()
	Tag         model.Tag   // tag restriction; zero inherits the schema default
	TypeName    string      // declared type; the requested type for lookups
	AnnotKind   model.Tag   // requested kind for annotation capture / presence
	Strict      bool        // strict contextual lookup: absence unmatches
	RawName     bool        // name capture ignores aliases
	Aux         bool        // auxiliary: matches without consuming
	Elem        *Schema     // per-member schema for PerMethod/PerParameter
	Embed       *Schema     // nested schema for Embedded
	Loc         errors.SourceLocation
}

// Nested returns the schema this parameter descends into, if any.
func (p *Param) Nested() *Schema {
	if p.Embed != nil {
		return p.Embed
	}
	return p.Elem
}

// Schema is a declarative description of facts to gather about one real
// declaration at a given scope. A schema value is plain data; the same value
// may be derived against any number of interfaces.
type Schema struct {
	Name       string
	Scope      model.Scope
	DefaultTag model.Tag  // default tag restriction for params without one
	Groups     [][]*Param // ordered parameter groups
	// SelfDescribing marks a nested schema whose subject is its enclosing
	// declaration: annotation lookups fall back to the enclosing
	// declaration's annotations.
	SelfDescribing bool
	Loc            errors.SourceLocation
}

// Params returns every parameter in declaration order across groups.
func (s *Schema) Params() []*Param {
	var out []*Param
	for _, g := range s.Groups {
		out = append(out, g...)
	}
	return out
}

// EffectiveTag computes a parameter's effective tag restriction: its own
// restriction, else the schema's declared default, else the member kind's
// built-in default (unrestricted).
func (s *Schema) EffectiveTag(p *Param) model.Tag {
	if !p.Tag.IsZero() {
		return p.Tag
	}
	return s.DefaultTag
}

// New builds a schema from a single parameter group.
func New(name string, scope model.Scope, params ...*Param) *Schema {
	return &Schema{
		Name:   name,
		Scope:  scope,
		Groups: [][]*Param{params},
	}
}
