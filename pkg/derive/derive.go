// Package derive is the public surface of the metadata-derivation engine.
//
// A metadata schema declares facts to gather about an interface: names,
// positions, annotations, contextual dependencies, and recursive per-method
// or per-parameter sub-schemas. Deriving matches those declarations against a
// real interface model and yields either a complete value tree or one error
// enumerating every independent failure.
//
// Schemas are usually written as tagged Go structs and built with
// FromStruct; interface models come from Scan, which reads `derive::`
// annotations out of doc comments in real Go source.
package derive

import (
	"reflect"

	enginederive "github.com/typeforge/derive/internal/derive"
	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/registry"
	"github.com/typeforge/derive/internal/schema"
	"github.com/typeforge/derive/internal/source"
)

// Schema building blocks.
type (
	Schema      = schema.Schema
	SchemaParam = schema.Param
	Strategy    = schema.Strategy
	Cardinality = schema.Cardinality
)

// Interface model.
type (
	Interface  = model.Interface
	Method     = model.Method
	Param      = model.Param
	Annotation = model.Annotation
	Tag        = model.Tag
	Scope      = model.Scope
	ParamFlags = model.ParamFlags
)

// Derivation results. The Value variants form a closed set; consumers may
// switch exhaustively.
type (
	Result   = enginederive.Result
	Value    = enginederive.Value
	Object   = enginederive.Object
	Str      = enginederive.Str
	Flag     = enginederive.Flag
	Position = enginederive.Position
	FlagSet  = enginederive.FlagSet
	Annot    = enginederive.Annot
	Annots   = enginederive.Annots
	Absent   = enginederive.Absent
	List     = enginederive.List
	NamedMap = enginederive.NamedMap
	Ref      = enginederive.Ref
	Registry = registry.Contextual
	ValueRef = registry.ValueRef
)

// Error taxonomy.
type (
	Error     = errors.DeriveError
	ErrorCode = errors.ErrorCode
	Aggregate = errors.Aggregate
)

const (
	ScopeInterface = model.ScopeInterface
	ScopeMethod    = model.ScopeMethod
	ScopeParameter = model.ScopeParameter

	One       = schema.One
	AtMostOne = schema.AtMostOne
	Many      = schema.Many
	NamedMany = schema.NamedMany

	StrategyContextualLookup  = schema.StrategyContextualLookup
	StrategyCaptureAnnotation = schema.StrategyCaptureAnnotation
	StrategyCaptureName       = schema.StrategyCaptureName
	StrategyCapturePosition   = schema.StrategyCapturePosition
	StrategyCaptureFlags      = schema.StrategyCaptureFlags
	StrategyPresenceCheck     = schema.StrategyPresenceCheck
	StrategyEmbedded          = schema.StrategyEmbedded
	StrategyPerMethod         = schema.StrategyPerMethod
	StrategyPerParameter      = schema.StrategyPerParameter
)

// FromStruct builds an interface-scope schema from a tagged struct value or
// type. See schema struct tags under the `derive` key.
func FromStruct(prototype interface{}) (*Schema, error) {
	return schema.FromStruct(reflect.TypeOf(prototype))
}

// New builds a schema programmatically from a single parameter group.
func New(name string, scope Scope, params ...*SchemaParam) *Schema {
	return schema.New(name, scope, params...)
}

// NewRegistry creates an empty contextual-instance registry.
func NewRegistry() *Registry {
	return registry.NewContextual()
}

// Derive resolves a schema against an interface model. reg may be nil when
// the schema has no contextual parameters.
func Derive(s *Schema, iface *Interface, reg *Registry) (*Result, error) {
	return enginederive.Derive(s, iface, reg)
}

// Populate fills a struct of the shape handed to FromStruct from a derived
// value tree.
func Populate(r *Result, target interface{}) error {
	return enginederive.Populate(r, target)
}

// Scan loads the packages matching the patterns, rooted at dir, and returns
// an interface model for every interface declaration found.
func Scan(dir string, patterns ...string) ([]*Interface, error) {
	return source.NewScanner(dir).Load(patterns...)
}

// Run derives a schema against one named interface found under dir,
// finalizes contextual references, and populates target. The convenience
// path for the common scan-derive-populate flow.
func Run(dir, ifaceName string, prototype interface{}, reg *Registry, patterns ...string) error {
	s, err := FromStruct(prototype)
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	ifaces, err := Scan(dir, patterns...)
	if err != nil {
		return err
	}
	for _, iface := range ifaces {
		if iface.Name != ifaceName {
			continue
		}
		res, err := Derive(s, iface, reg)
		if err != nil {
			return err
		}
		if err := res.Finalize(); err != nil {
			return err
		}
		return Populate(res, prototype)
	}
	return errors.Newf(errors.LoadErrorCode, "interface %q not found under %s", ifaceName, dir)
}
