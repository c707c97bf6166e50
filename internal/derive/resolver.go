package derive

import (
	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/schema"
)

// resolveCardinality applies cardinality semantics to an ordered, already
// filtered candidate set. Pure: the only outputs are the matched set, in
// declaration order, or an error naming every offending candidate.
func resolveCardinality(path, memberKind string, card schema.Cardinality, cands []member) ([]member, *errors.BaseError) {
	switch card {
	case schema.One:
		switch len(cands) {
		case 1:
			return cands, nil
		case 0:
			return nil, errors.NewNoMatchError(path, memberKind)
		default:
			return nil, errors.NewAmbiguousMatchError(path, memberNames(cands))
		}

	case schema.AtMostOne:
		if len(cands) > 1 {
			return nil, errors.NewAmbiguousMatchError(path, memberNames(cands))
		}
		return cands, nil

	case schema.NamedMany:
		if name, dup, ok := firstNameCollision(cands); ok {
			return nil, errors.NewDuplicateNameError(path, name, dup)
		}
		return cands, nil

	default: // schema.Many
		// Never fails on candidate count; absence yields an empty set.
		return cands, nil
	}
}

// firstNameCollision finds the first externally-facing name shared by two or
// more candidates, returning the colliding declarations.
func firstNameCollision(cands []member) (string, []string, bool) {
	seen := make(map[string][]string, len(cands))
	for _, c := range cands {
		seen[c.name] = append(seen[c.name], c.rawName)
	}
	for _, c := range cands {
		if dup := seen[c.name]; len(dup) > 1 {
			return c.name, dup, true
		}
	}
	return "", nil, false
}

func memberNames(cands []member) []string {
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.rawName
	}
	return names
}
