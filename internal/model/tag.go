package model

import "strings"

// Tag is a hierarchical classification name. Segments are dot-separated and
// each added segment refines the parent: "http.query" refines "http". The
// zero Tag is the unrestricted tag, which accepts everything.
//
// The same hierarchy serves both member tags (restricting which declarations
// a schema parameter matches) and annotation kinds (annotation capture by
// requested kind including refinements).
type Tag string

// IsZero reports whether the tag carries no restriction.
func (t Tag) IsZero() bool {
	return t == ""
}

// Refines reports whether t equals parent or is a dotted refinement of it.
// Every tag refines the zero tag.
func (t Tag) Refines(parent Tag) bool {
	if parent.IsZero() {
		return true
	}
	if t == parent {
		return true
	}
	return strings.HasPrefix(string(t), string(parent)+".")
}

// Accepts reports whether a declaration carrying tag other satisfies a
// restriction of t. The zero restriction accepts any declaration, tagged or
// not; a non-zero restriction requires other to refine it.
func (t Tag) Accepts(other Tag) bool {
	if t.IsZero() {
		return true
	}
	return other.Refines(t)
}

// Parent returns the tag with the last segment removed, or the zero tag.
func (t Tag) Parent() Tag {
	if i := strings.LastIndexByte(string(t), '.'); i >= 0 {
		return t[:i]
	}
	return ""
}

func (t Tag) String() string {
	if t.IsZero() {
		return "<any>"
	}
	return string(t)
}

// EffectiveTag computes a declaration's effective tag: its own tag if it has
// one, else the enclosing scope's declared default, else none.
func EffectiveTag(own Tag, ok bool, enclosingDefault Tag) Tag {
	if ok {
		return own
	}
	return enclosingDefault
}
