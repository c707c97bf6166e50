package derive

import (
	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/schema"
)

// resolveObject constructs the value tree for one schema against one subject
// declaration. Failures across independent parameters are collected, not
// short-circuited: every parameter gets a chance to report its own problem.
// A false return means at least one parameter failed to produce a value.
func (ctx *context) resolveObject(s *schema.Schema, subj subject, enclosing []model.Annotation, path string) (*Object, bool) {
	params := s.Params()

	var perMember []*schema.Param
	for _, p := range params {
		if p.Strategy.PerMember() {
			perMember = append(perMember, p)
		}
	}
	mapped := ctx.mapMembers(s, perMember, subj, path)

	obj := &Object{Schema: s, Fields: make([]Field, 0, len(params))}
	ok := true
	for _, p := range params {
		var v Value
		if p.Strategy.PerMember() {
			v = mapped[p]
		} else {
			v, _ = ctx.materializeDirect(s, p, subj, enclosing, path+"."+p.Name)
		}
		if v == nil {
			v = Absent{}
			ok = false
		}
		obj.Fields = append(obj.Fields, Field{Param: p, Value: v})
	}
	return obj, ok
}

// mapMembers is the member mapper: the central resolution procedure matching
// per-member schema parameters against the real members of the subject's
// scope. One algorithm serves both instantiations; the scope token picks the
// member set (methods of the interface, parameters of a matched method).
func (ctx *context) mapMembers(s *schema.Schema, params []*schema.Param, subj subject, path string) map[*schema.Param]Value {
	if len(params) == 0 {
		return nil
	}
	members := subj.members()
	memberKind := subj.scope.MemberKind()

	// Tag filtering plus strict-lookup viability: a member whose element
	// schema needs an unregistered strict instance is silently unmatched.
	cands := make(map[*schema.Param][]member, len(params))
	for _, p := range params {
		eff := s.EffectiveTag(p)
		for _, m := range members {
			if !eff.Accepts(m.tag) {
				continue
			}
			if p.Elem != nil && !ctx.probeStrict(p.Elem, subj.subjectFor(m, 0)) {
				continue
			}
			cands[p] = append(cands[p], m)
		}
	}

	// Consuming matches are mutually exclusive per member: auxiliary
	// parameters match without consuming.
	claims := make(map[int][]string)
	for _, p := range params {
		if p.Aux {
			continue
		}
		for _, m := range cands[p] {
			claims[m.ord] = append(claims[m.ord], path+"."+p.Name)
		}
	}
	for _, m := range members {
		if owners := claims[m.ord]; len(owners) > 1 {
			ctx.errs.Add(errors.NewDuplicateConsumptionError(m.rawName, owners).WithLocation(m.loc))
		}
	}

	out := make(map[*schema.Param]Value, len(params))
	for _, p := range params {
		ppath := path + "." + p.Name
		matched, err := resolveCardinality(ppath, memberKind, p.Cardinality, cands[p])
		if err != nil {
			ctx.errs.Add(err.WithLocation(p.Loc))
			continue
		}

		values := make([]Value, 0, len(matched))
		names := make([]string, 0, len(matched))
		enclosing := subj.annotations()
		for i, m := range matched {
			// A failure inside one member's own nested mapping voids only
			// that member's contribution.
			elem, ok := ctx.resolveObject(p.Elem, subj.subjectFor(m, i), enclosing, ppath+"("+m.rawName+")")
			if !ok {
				continue
			}
			values = append(values, elem)
			names = append(names, m.name)
		}

		switch p.Cardinality {
		case schema.One:
			if len(values) == 1 {
				out[p] = values[0]
			}
		case schema.AtMostOne:
			if len(values) == 1 {
				out[p] = values[0]
			} else if len(matched) == 0 {
				out[p] = Absent{}
			}
		case schema.Many:
			out[p] = List(values)
		case schema.NamedMany:
			nm := NamedMap{Keys: names, Items: make(map[string]Value, len(values))}
			for i, v := range values {
				nm.Items[names[i]] = v
			}
			out[p] = nm
		}
	}
	return out
}
