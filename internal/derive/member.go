package derive

import (
	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
)

// member is one real declaration viewed through the mapper: a method at
// interface scope, a parameter at method scope. Effective tag and
// externally-facing name are precomputed from the declaration's own
// annotations, its inherited ones, and the enclosing scope's default.
type member struct {
	rawName string
	name    string    // externally-facing: alias if declared, else rawName
	tag     model.Tag // effective tag
	ord     int       // declaration order within the scope
	method  *model.Method
	param   *model.Param
	annots  []model.Annotation // full inherited annotation chain
	loc     errors.SourceLocation
}

// subject is the real declaration a schema (or one of its direct strategy
// parameters) is being resolved against.
type subject struct {
	scope    model.Scope
	iface    *model.Interface
	method   *model.Method
	param    *model.Param
	scopeIdx int // index within the matched scope, parameter subjects only
}

// annotations returns the subject's full inherited annotation chain: own
// annotations first, then those of overridden declarations or supertypes.
func (s subject) annotations() []model.Annotation {
	switch s.scope {
	case model.ScopeInterface:
		return s.iface.AllAnnotations()
	case model.ScopeMethod:
		return s.method.AllAnnotations()
	default:
		return s.method.ParamAnnotations(s.param.Index)
	}
}

// rawName returns the subject's declared identifier.
func (s subject) rawName() string {
	switch s.scope {
	case model.ScopeInterface:
		return s.iface.Name
	case model.ScopeMethod:
		return s.method.Name
	default:
		return s.param.Name
	}
}

// name returns the subject's externally-facing name, honoring aliases.
func (s subject) name() string {
	if alias, ok := model.AliasIn(s.annotations()); ok {
		return alias
	}
	return s.rawName()
}

// location returns the subject's source position.
func (s subject) location() errors.SourceLocation {
	switch s.scope {
	case model.ScopeInterface:
		return s.iface.Loc
	case model.ScopeMethod:
		return s.method.Loc
	default:
		return s.param.Loc
	}
}

// members enumerates the real declarations the mapper matches against at the
// subject's scope: the interface's methods, or the subject method's
// parameters. Effective tags apply the enclosing scope's declared default to
// untagged members.
func (s subject) members() []member {
	switch s.scope {
	case model.ScopeInterface:
		defaultTag, _ := s.iface.DefaultMethodTag()
		out := make([]member, 0, len(s.iface.Methods))
		for i, m := range s.iface.Methods {
			annots := m.AllAnnotations()
			own, hasOwn := model.TagIn(annots, model.KindTag)
			out = append(out, member{
				rawName: m.Name,
				name:    m.EffectiveName(),
				tag:     model.EffectiveTag(own, hasOwn, defaultTag),
				ord:     i,
				method:  m,
				annots:  annots,
				loc:     m.Loc,
			})
		}
		return out

	case model.ScopeMethod:
		defaultTag, _ := s.method.DefaultParamTag()
		params := s.method.Params()
		out := make([]member, 0, len(params))
		for i, p := range params {
			annots := s.method.ParamAnnotations(p.Index)
			own, hasOwn := model.TagIn(annots, model.KindTag)
			name := p.Name
			if alias, ok := model.AliasIn(annots); ok {
				name = alias
			}
			out = append(out, member{
				rawName: p.Name,
				name:    name,
				tag:     model.EffectiveTag(own, hasOwn, defaultTag),
				ord:     i,
				method:  s.method,
				param:   p,
				annots:  annots,
				loc:     p.Loc,
			})
		}
		return out

	default:
		return nil
	}
}

// subjectFor turns a matched member into the subject of its element schema.
func (s subject) subjectFor(m member, scopeIdx int) subject {
	if m.param != nil {
		return subject{
			scope:    model.ScopeParameter,
			iface:    s.iface,
			method:   m.method,
			param:    m.param,
			scopeIdx: scopeIdx,
		}
	}
	return subject{
		scope:  model.ScopeMethod,
		iface:  s.iface,
		method: m.method,
	}
}
