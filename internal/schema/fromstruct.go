package schema

import (
	"reflect"

	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
)

// StructTag is the struct tag key carrying derivation qualifiers.
const StructTag = "derive"

// FromStruct builds an interface-scope schema from a tagged Go struct type.
// Each exported field with a `derive` tag becomes one schema parameter; the
// qualifier tokens in the tag select its strategy, cardinality and tag
// restriction. Fields without the tag are ignored. A blank field named "_"
// configures the schema itself (default tag, self marker).
//
// Nesting follows the field types: a `methods` field of type map[string]T or
// []T descends into T as a method-scope schema, a `params` field likewise at
// parameter scope, and an `embed` field descends at the same scope. A struct
// type that embeds itself, directly or transitively, is a cycle error.
func FromStruct(t reflect.Type) (*Schema, error) {
	return fromStruct(t, model.ScopeInterface, map[reflect.Type]bool{}, rootName(t))
}

// FromStructAt builds a schema from a tagged struct type at an explicit
// scope, for schemas meant to be embedded programmatically.
func FromStructAt(t reflect.Type, scope model.Scope) (*Schema, error) {
	return fromStruct(t, scope, map[reflect.Type]bool{}, rootName(t))
}

// rootName names the diagnostic path root. Prototypes usually arrive as
// pointers, whose reflect name is empty.
func rootName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func fromStruct(t reflect.Type, scope model.Scope, visiting map[reflect.Type]bool, path string) (*Schema, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.NewSchemaConfigError(path, "schema type must be a struct, got "+t.Kind().String())
	}
	if visiting[t] {
		return nil, errors.NewCycleError(t.Name(), path)
	}
	visiting[t] = true
	defer delete(visiting, t)

	s := &Schema{Name: t.Name(), Scope: scope}
	var group []*Param
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		raw, ok := f.Tag.Lookup(StructTag)
		if !ok {
			continue
		}
		q := parseQualifiers(raw)
		if f.Name == "_" {
			s.DefaultTag = q.tag
			s.SelfDescribing = q.self
			continue
		}
		p, err := paramFromField(f, q, scope, visiting, path+"."+f.Name)
		if err != nil {
			return nil, err
		}
		group = append(group, p)
	}
	s.Groups = [][]*Param{group}
	return s, nil
}

func paramFromField(f reflect.StructField, q qualifiers, scope model.Scope, visiting map[reflect.Type]bool, path string) (*Param, error) {
	p := &Param{
		Name:      f.Name,
		Strategy:  classify(q),
		Tag:       q.tag,
		TypeName:  typeName(f.Type),
		AnnotKind: q.kind,
		Strict:    q.strict,
		RawName:   q.raw,
		Aux:       q.aux,
	}
	if q.cardSet {
		p.Cardinality = q.card
	} else {
		p.Cardinality = inferCardinality(f.Type)
	}

	switch p.Strategy {
	case StrategyPerMethod, StrategyPerParameter:
		inner, ok := scope.Inner()
		if !ok {
			return nil, errors.NewSchemaConfigError(path, "no inner scope to descend into")
		}
		if p.Strategy == StrategyPerParameter {
			inner = model.ScopeParameter
		}
		elemType, err := collectionElem(f.Type, path)
		if err != nil {
			return nil, err
		}
		elem, err := fromStruct(elemType, inner, visiting, path)
		if err != nil {
			return nil, err
		}
		p.Elem = elem
	case StrategyEmbedded:
		embed, err := fromStruct(f.Type, scope, visiting, path)
		if err != nil {
			return nil, err
		}
		embed.SelfDescribing = q.self
		p.Embed = embed
	case StrategyContextualLookup:
		// The requested type is the field's declared type.
	}
	return p, nil
}

// inferCardinality reads the cardinality off the field's shape: maps are
// name-keyed collections, slices positional ones, pointers optional.
func inferCardinality(t reflect.Type) Cardinality {
	switch t.Kind() {
	case reflect.Map:
		return NamedMany
	case reflect.Slice:
		return Many
	case reflect.Pointer:
		return AtMostOne
	default:
		return One
	}
}

// collectionElem returns the schema-bearing element type of a per-member
// field: the element of its map, slice or pointer, else the type itself.
func collectionElem(t reflect.Type, path string) (reflect.Type, error) {
	switch t.Kind() {
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, errors.NewSchemaConfigError(path, "name-keyed collections require string keys")
		}
		return t.Elem(), nil
	case reflect.Slice, reflect.Pointer:
		return t.Elem(), nil
	default:
		return t, nil
	}
}

func typeName(t reflect.Type) string {
	return t.String()
}
