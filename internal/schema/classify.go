package schema

import (
	"strings"

	"github.com/typeforge/derive/internal/model"
)

// qualifiers is the parsed form of one parameter's derivation tag: the comma
// separated tokens of a `derive:"..."` struct tag, or the equivalent built
// programmatically.
type qualifiers struct {
	embed      bool
	self       bool
	perMethod  bool
	perParam   bool
	lookup     bool
	annot      bool
	name       bool
	raw        bool
	pos        bool
	flags      bool
	present    bool
	strict     bool
	aux        bool
	tag        model.Tag
	kind       model.Tag
	card       Cardinality
	cardSet    bool
	unknown    []string
}

// parseQualifiers splits a derivation tag into its recognized qualifiers.
// Tokens it does not understand are kept for Unrecognized classification.
func parseQualifiers(tag string) qualifiers {
	var q qualifiers
	if tag == "" {
		return q
	}
	for _, tok := range strings.Split(tag, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key, val, hasVal := strings.Cut(tok, "=")
		switch key {
		case "embed":
			q.embed = true
			if hasVal && val == "self" {
				q.self = true
			}
		case "methods":
			q.perMethod = true
		case "params":
			q.perParam = true
		case "lookup":
			q.lookup = true
			if hasVal && val == "strict" {
				q.strict = true
			}
		case "annot":
			q.annot = true
			q.kind = model.Tag(val)
		case "name":
			q.name = true
			if hasVal && val == "raw" {
				q.raw = true
			}
		case "pos":
			q.pos = true
		case "flags":
			q.flags = true
		case "present":
			q.present = true
			q.kind = model.Tag(val)
		case "strict":
			q.strict = true
		case "aux":
			q.aux = true
		case "tag":
			q.tag = model.Tag(val)
		case "one":
			q.card, q.cardSet = One, true
		case "opt":
			q.card, q.cardSet = AtMostOne, true
		case "many":
			q.card, q.cardSet = Many, true
			if hasVal && val == "named" {
				q.card = NamedMany
			}
		case "self":
			q.self = true
		default:
			q.unknown = append(q.unknown, tok)
		}
	}
	return q
}

// classify picks the parameter's strategy from its qualifiers in fixed
// precedence: explicit embedding markers, then explicit direct strategies,
// then the contextual-parameter default. Unknown tokens classify as
// Unrecognized regardless of what else is present.
func classify(q qualifiers) Strategy {
	if len(q.unknown) > 0 {
		return StrategyUnrecognized
	}
	switch {
	case q.embed:
		return StrategyEmbedded
	case q.perMethod:
		return StrategyPerMethod
	case q.perParam:
		return StrategyPerParameter
	case q.annot:
		return StrategyCaptureAnnotation
	case q.name:
		return StrategyCaptureName
	case q.pos:
		return StrategyCapturePosition
	case q.flags:
		return StrategyCaptureFlags
	case q.present:
		return StrategyPresenceCheck
	default:
		// A parameter with no explicit strategy is contextual.
		return StrategyContextualLookup
	}
}
