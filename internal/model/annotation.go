package model

import (
	"github.com/typeforge/derive/internal/errors"
)

// Well-known annotation kinds understood by the engine itself. Anything else
// is an application-level annotation captured verbatim.
const (
	// KindTag tags a declaration; the tag value is in the "value" parameter.
	KindTag Tag = "tag"
	// KindName declares an externally-facing alias for a declaration.
	KindName Tag = "name"
	// KindDefaultTag declares the default tag an enclosing scope hands down
	// to members that carry no tag of their own.
	KindDefaultTag Tag = "default-tag"
)

// Annotation is one annotation instance attached to a declaration.
type Annotation struct {
	Kind   Tag                    // hierarchical annotation kind
	Params map[string]interface{} // typed parameters
	Loc    errors.SourceLocation  // where the annotation was declared
}

// Is reports whether the annotation's kind refines the requested kind.
func (a Annotation) Is(kind Tag) bool {
	return kind.Accepts(a.Kind)
}

// GetString returns a string parameter value with optional default
func (a Annotation) GetString(name string, defaultValue ...string) string {
	if value, exists := a.Params[name]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (a Annotation) GetBool(name string, defaultValue ...bool) bool {
	if value, exists := a.Params[name]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetInt returns an integer parameter value with optional default
func (a Annotation) GetInt(name string, defaultValue ...int) int {
	if value, exists := a.Params[name]; exists {
		if intValue, ok := value.(int); ok {
			return intValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// Value returns the annotation's "value" parameter, the conventional slot
// for single-argument annotations like tag and name.
func (a Annotation) Value() string {
	return a.GetString("value")
}

// NewTag builds a tag annotation.
func NewTag(value Tag) Annotation {
	return Annotation{Kind: KindTag, Params: map[string]interface{}{"value": string(value)}}
}

// NewName builds an alias annotation.
func NewName(alias string) Annotation {
	return Annotation{Kind: KindName, Params: map[string]interface{}{"value": alias}}
}

// NewDefaultTag builds a default-tag annotation for an enclosing scope.
func NewDefaultTag(value Tag) Annotation {
	return Annotation{Kind: KindDefaultTag, Params: map[string]interface{}{"value": string(value)}}
}

// FilterAnnotations returns, in order, every annotation whose kind refines
// the requested kind.
func FilterAnnotations(annots []Annotation, kind Tag) []Annotation {
	var out []Annotation
	for _, a := range annots {
		if a.Is(kind) {
			out = append(out, a)
		}
	}
	return out
}

// TagIn extracts the first single-value annotation of the exact kind from an
// annotation list. Own annotations sort before inherited ones, so the first
// hit is the most specific declaration.
func TagIn(annots []Annotation, kind Tag) (Tag, bool) {
	for _, a := range annots {
		if a.Kind == kind {
			return Tag(a.Value()), true
		}
	}
	return "", false
}

// AliasIn extracts an externally-facing alias from an annotation list.
func AliasIn(annots []Annotation) (string, bool) {
	for _, a := range annots {
		if a.Kind == KindName {
			return a.Value(), true
		}
	}
	return "", false
}
