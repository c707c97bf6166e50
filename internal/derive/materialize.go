package derive

import (
	"fmt"

	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/registry"
	"github.com/typeforge/derive/internal/schema"
)

// context carries one derivation's shared state: the contextual resolver and
// the aggregate collecting every independent matching failure.
type context struct {
	reg  *registry.Contextual
	errs *errors.Aggregate
}

// SubjectType is the type-name placeholder resolved against the subject
// declaration itself: a parameter's declared type, or a method's result
// type. Strict lookups of the subject type make instance availability part
// of the matching decision.
const SubjectType = "$type"

// resolveTypeName resolves a contextual parameter's requested type, which
// may be subject-relative.
func resolveTypeName(p *schema.Param, subj subject) string {
	if p.TypeName != SubjectType {
		return p.TypeName
	}
	switch {
	case subj.param != nil:
		return subj.param.Type
	case subj.method != nil:
		return subj.method.Result
	default:
		return subj.iface.Name
	}
}

// materializeDirect produces a value for one non-recursive strategy applied
// to the subject declaration. A false return means the parameter produced
// nothing; any reportable failure has already been collected.
func (ctx *context) materializeDirect(s *schema.Schema, p *schema.Param, subj subject, enclosing []model.Annotation, path string) (Value, bool) {
	switch p.Strategy {
	case schema.StrategyContextualLookup:
		typeName := resolveTypeName(p, subj)
		if p.Strict {
			ref, ok := ctx.reg.LookupStrict(typeName)
			if !ok {
				// Candidate viability probing keeps strict misses out of
				// member matching; reaching one here means no matching
				// decision depended on it, so it is a plain failure.
				ctx.errs.Add(errors.NewLookupFailureError(path, typeName).WithLocation(subj.location()))
				return nil, false
			}
			return Ref{Target: ref}, true
		}
		// Non-strict lookups always produce a deferred reference; absence
		// surfaces at value-tree finalization, never during matching.
		return Ref{Target: ctx.reg.Lookup(typeName)}, true

	case schema.StrategyCaptureAnnotation:
		return ctx.captureAnnotations(s, p, subj, enclosing, path)

	case schema.StrategyCaptureName:
		if p.RawName {
			return Str(subj.rawName()), true
		}
		return Str(subj.name()), true

	case schema.StrategyCapturePosition:
		return Position{
			Global:  subj.param.Index,
			Group:   subj.param.Group,
			InGroup: subj.param.IndexInGrp,
			InScope: subj.scopeIdx,
		}, true

	case schema.StrategyCaptureFlags:
		return FlagSet(subj.param.Flags), true

	case schema.StrategyPresenceCheck:
		chain := ctx.annotationChain(s, subj, enclosing)
		for _, a := range chain {
			if a.Is(p.AnnotKind) {
				return Flag(true), true
			}
		}
		return Flag(false), true

	case schema.StrategyEmbedded:
		obj, ok := ctx.resolveObject(p.Embed, subj, enclosing, path)
		if !ok {
			return nil, false
		}
		return obj, true

	default:
		// Unrecognized strategies are rejected by schema validation.
		ctx.errs.Add(errors.NewSchemaConfigError(path, "unrecognized strategy reached materialization"))
		return nil, false
	}
}

// annotationChain is the subject's inherited annotation chain, extended with
// the enclosing declaration's annotations for self-describing schemas.
func (ctx *context) annotationChain(s *schema.Schema, subj subject, enclosing []model.Annotation) []model.Annotation {
	chain := subj.annotations()
	if s.SelfDescribing && len(enclosing) > 0 {
		chain = append(append([]model.Annotation(nil), chain...), enclosing...)
	}
	return chain
}

// captureAnnotations collects annotations of the requested kind, governed by
// the parameter's cardinality exactly as real-declaration matches are.
func (ctx *context) captureAnnotations(s *schema.Schema, p *schema.Param, subj subject, enclosing []model.Annotation, path string) (Value, bool) {
	matched := model.FilterAnnotations(ctx.annotationChain(s, subj, enclosing), p.AnnotKind)
	kindDesc := fmt.Sprintf("annotation of kind %q", p.AnnotKind)

	switch p.Cardinality {
	case schema.One:
		switch len(matched) {
		case 1:
			return Annot{Annotation: matched[0]}, true
		case 0:
			ctx.errs.Add(errors.NewNoMatchError(path, kindDesc).WithLocation(subj.location()))
			return nil, false
		default:
			ctx.errs.Add(errors.NewAmbiguousMatchError(path, annotationKinds(matched)).WithLocation(subj.location()))
			return nil, false
		}

	case schema.AtMostOne:
		switch len(matched) {
		case 0:
			return Absent{}, true
		case 1:
			return Annot{Annotation: matched[0]}, true
		default:
			ctx.errs.Add(errors.NewAmbiguousMatchError(path, annotationKinds(matched)).WithLocation(subj.location()))
			return nil, false
		}

	default: // Many; NamedMany is rejected by schema validation.
		return Annots(matched), true
	}
}

func annotationKinds(annots []model.Annotation) []string {
	kinds := make([]string, len(annots))
	for i, a := range annots {
		kinds[i] = string(a.Kind)
	}
	return kinds
}

// probeStrict reports whether every strict contextual lookup reachable from
// the schema without crossing a member-mapping boundary can resolve for this
// subject. Absence of a strict instance silently unmatches the candidate.
func (ctx *context) probeStrict(s *schema.Schema, subj subject) bool {
	for _, p := range s.Params() {
		switch {
		case p.Strategy == schema.StrategyContextualLookup && p.Strict:
			if !ctx.reg.Has(resolveTypeName(p, subj)) {
				return false
			}
		case p.Strategy == schema.StrategyEmbedded:
			if !ctx.probeStrict(p.Embed, subj) {
				return false
			}
		}
	}
	return true
}
