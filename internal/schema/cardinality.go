package schema

// Cardinality is the contract between a schema parameter and the number of
// real declarations matching it.
type Cardinality int

const (
	// One requires exactly one qualifying candidate.
	One Cardinality = iota
	// AtMostOne accepts zero or one qualifying candidate.
	AtMostOne
	// Many accepts any number of candidates, declaration order preserved.
	Many
	// NamedMany accepts any number of candidates keyed by their
	// externally-facing names, which must be unique within the set.
	NamedMany
)

// String returns the string representation of the cardinality
func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case AtMostOne:
		return "opt"
	case Many:
		return "many"
	case NamedMany:
		return "many=named"
	default:
		return "unknown"
	}
}

// Multi reports whether the cardinality produces a collection.
func (c Cardinality) Multi() bool {
	return c == Many || c == NamedMany
}
