package schema

// Strategy is the closed vocabulary of derivation strategies attachable to a
// schema parameter. Exactly one strategy applies per parameter.
type Strategy int

const (
	// StrategyUnrecognized marks a parameter whose qualifiers named no known
	// strategy. Always a fatal schema-definition error.
	StrategyUnrecognized Strategy = iota
	// StrategyContextualLookup resolves a registered instance of the
	// parameter's declared type from the contextual resolver.
	StrategyContextualLookup
	// StrategyCaptureAnnotation collects annotations of a requested kind
	// from the subject declaration, including inherited ones.
	StrategyCaptureAnnotation
	// StrategyCaptureName captures the subject's identifier or alias.
	StrategyCaptureName
	// StrategyCapturePosition captures a parameter's positional indices.
	StrategyCapturePosition
	// StrategyCaptureFlags captures a parameter's structural flag bit-set.
	StrategyCaptureFlags
	// StrategyPresenceCheck tests for the presence of an annotation kind.
	StrategyPresenceCheck
	// StrategyEmbedded nests another schema resolved against the same
	// subject declaration.
	StrategyEmbedded
	// StrategyPerMethod matches the parameter against the methods of the
	// interface, one nested value per matched method.
	StrategyPerMethod
	// StrategyPerParameter matches the parameter against the parameters of
	// an already-matched method.
	StrategyPerParameter
)

// String returns the string representation of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyContextualLookup:
		return "lookup"
	case StrategyCaptureAnnotation:
		return "annot"
	case StrategyCaptureName:
		return "name"
	case StrategyCapturePosition:
		return "pos"
	case StrategyCaptureFlags:
		return "flags"
	case StrategyPresenceCheck:
		return "present"
	case StrategyEmbedded:
		return "embed"
	case StrategyPerMethod:
		return "methods"
	case StrategyPerParameter:
		return "params"
	default:
		return "unrecognized"
	}
}

// PerMember reports whether the strategy matches real members and is
// therefore resolved by the member mapper rather than the direct
// materializer.
func (s Strategy) PerMember() bool {
	return s == StrategyPerMethod || s == StrategyPerParameter
}

// Cardinal reports whether a cardinality qualifier applies to the strategy.
func (s Strategy) Cardinal() bool {
	return s.PerMember() || s == StrategyCaptureAnnotation
}
