package schema

import (
	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/utils"
)

// validated caches shape-validation results per schema value, so a schema
// derived against many interfaces is checked once.
var validated = utils.NewCache[*Schema, error]()

// Validate checks the schema's shape independent of any real interface.
// The first problem found aborts: schema-definition errors are fatal and
// never aggregated. Results are cached for the lifetime of the schema value.
func Validate(s *Schema) error {
	return validated.GetOrCompute(s, func() error {
		return validate(s, map[*Schema]bool{}, s.Name)
	})
}

func validate(s *Schema, visiting map[*Schema]bool, path string) error {
	if visiting[s] {
		return errors.NewCycleError(s.Name, path)
	}
	visiting[s] = true
	defer delete(visiting, s)

	for _, p := range s.Params() {
		if err := validateParam(s, p, visiting, path+"."+p.Name); err != nil {
			return err
		}
	}
	return nil
}

func validateParam(s *Schema, p *Param, visiting map[*Schema]bool, path string) error {
	switch p.Strategy {
	case StrategyUnrecognized:
		return errors.NewSchemaConfigError(path, "unrecognized derivation strategy").
			WithLocation(p.Loc).
			WithSuggestion("use one of: lookup, annot, name, pos, flags, present, embed, methods, params")

	case StrategyCapturePosition:
		if s.Scope != model.ScopeParameter {
			return errors.NewSchemaConfigError(path, "position capture is legal only on parameter-scope schemas").WithLocation(p.Loc)
		}

	case StrategyCaptureFlags:
		if s.Scope != model.ScopeParameter {
			return errors.NewSchemaConfigError(path, "flag capture is legal only on parameter-scope schemas").WithLocation(p.Loc)
		}

	case StrategyPresenceCheck:
		if p.TypeName != "bool" {
			return errors.NewSchemaConfigError(path, "presence checks are legal only on bool-typed parameters").WithLocation(p.Loc)
		}
		if p.AnnotKind.IsZero() {
			return errors.NewSchemaConfigError(path, "presence check names no annotation kind").WithLocation(p.Loc)
		}

	case StrategyCaptureAnnotation:
		if p.AnnotKind.IsZero() {
			return errors.NewSchemaConfigError(path, "annotation capture names no annotation kind").WithLocation(p.Loc)
		}
		if p.Cardinality == NamedMany {
			return errors.NewSchemaConfigError(path, "annotation captures cannot be name-keyed").WithLocation(p.Loc)
		}

	case StrategyPerMethod:
		if s.Scope != model.ScopeInterface {
			return errors.NewSchemaConfigError(path, "per-method parameters are legal only on interface-scope schemas").WithLocation(p.Loc)
		}
		if p.Elem == nil || p.Elem.Scope != model.ScopeMethod {
			return errors.NewSchemaConfigError(path, "per-method parameter needs a method-scope element schema").WithLocation(p.Loc)
		}

	case StrategyPerParameter:
		if s.Scope != model.ScopeMethod {
			return errors.NewSchemaConfigError(path, "per-parameter parameters are legal only on method-scope schemas").WithLocation(p.Loc)
		}
		if p.Elem == nil || p.Elem.Scope != model.ScopeParameter {
			return errors.NewSchemaConfigError(path, "per-parameter parameter needs a parameter-scope element schema").WithLocation(p.Loc)
		}

	case StrategyEmbedded:
		if p.Embed == nil {
			return errors.NewSchemaConfigError(path, "embedded parameter carries no nested schema").WithLocation(p.Loc)
		}
		// Scope crossings happen through per-member parameters inside the
		// embedded schema, never by embedding across scopes directly.
		if p.Embed.Scope != s.Scope {
			return errors.NewSchemaConfigError(path, "embedded schema must share its enclosing scope").WithLocation(p.Loc)
		}

	case StrategyContextualLookup:
		if p.TypeName == "" {
			return errors.NewSchemaConfigError(path, "contextual parameter declares no type").WithLocation(p.Loc)
		}
	}

	// Exactly one of Embed/Elem may be set, and only for the strategies
	// that use them.
	if p.Embed != nil && p.Strategy != StrategyEmbedded {
		return errors.NewSchemaConfigError(path, "only embedded parameters may carry an embedded schema").WithLocation(p.Loc)
	}
	if p.Elem != nil && !p.Strategy.PerMember() {
		return errors.NewSchemaConfigError(path, "only per-member parameters may carry an element schema").WithLocation(p.Loc)
	}

	// The revisit set follows the descent path only: sibling parameters may
	// embed the same schema, a descent revisiting an ancestor may not.
	if n := p.Nested(); n != nil {
		return validate(n, visiting, path)
	}
	return nil
}
