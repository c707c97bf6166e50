package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
)

func requireConfigError(t *testing.T, err error, fragment string) {
	t.Helper()
	require.Error(t, err)
	var de *errors.BaseError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.SchemaConfigErrorCode, de.ErrorCode())
	assert.Contains(t, de.Error(), fragment)
}

func TestValidatePositionScope(t *testing.T) {
	s := New("M", model.ScopeMethod, &Param{Name: "Pos", Strategy: StrategyCapturePosition})
	requireConfigError(t, Validate(s), "parameter-scope")
}

func TestValidateFlagsScope(t *testing.T) {
	s := New("I", model.ScopeInterface, &Param{Name: "Flags", Strategy: StrategyCaptureFlags})
	requireConfigError(t, Validate(s), "parameter-scope")
}

func TestValidatePresenceCheck(t *testing.T) {
	s := New("I", model.ScopeInterface, &Param{Name: "Dep", Strategy: StrategyPresenceCheck, TypeName: "string", AnnotKind: "doc"})
	requireConfigError(t, Validate(s), "bool-typed")

	s = New("I", model.ScopeInterface, &Param{Name: "Dep", Strategy: StrategyPresenceCheck, TypeName: "bool"})
	requireConfigError(t, Validate(s), "annotation kind")

	s = New("I", model.ScopeInterface, &Param{Name: "Dep", Strategy: StrategyPresenceCheck, TypeName: "bool", AnnotKind: "doc"})
	assert.NoError(t, Validate(s))
}

func TestValidatePerMemberScopes(t *testing.T) {
	elem := New("M", model.ScopeMethod, &Param{Name: "Name", Strategy: StrategyCaptureName})

	s := New("M2", model.ScopeMethod, &Param{Name: "Methods", Strategy: StrategyPerMethod, Elem: elem})
	requireConfigError(t, Validate(s), "interface-scope")

	s = New("I", model.ScopeInterface, &Param{Name: "Methods", Strategy: StrategyPerMethod})
	requireConfigError(t, Validate(s), "element schema")

	s = New("I", model.ScopeInterface, &Param{Name: "Params", Strategy: StrategyPerParameter, Elem: elem})
	requireConfigError(t, Validate(s), "method-scope")
}

func TestValidateEmbedScope(t *testing.T) {
	inner := New("M", model.ScopeMethod, &Param{Name: "Name", Strategy: StrategyCaptureName})
	s := New("I", model.ScopeInterface, &Param{Name: "Info", Strategy: StrategyEmbedded, Embed: inner})
	requireConfigError(t, Validate(s), "scope")
}

func TestValidateAnnotationCapture(t *testing.T) {
	s := New("I", model.ScopeInterface, &Param{Name: "Docs", Strategy: StrategyCaptureAnnotation})
	requireConfigError(t, Validate(s), "annotation kind")

	s = New("I", model.ScopeInterface, &Param{Name: "Docs", Strategy: StrategyCaptureAnnotation, AnnotKind: "doc", Cardinality: NamedMany})
	requireConfigError(t, Validate(s), "name-keyed")
}

func TestValidateProgrammaticCycle(t *testing.T) {
	a := New("A", model.ScopeInterface)
	p := &Param{Name: "Self", Strategy: StrategyEmbedded, Embed: a}
	a.Groups = [][]*Param{{p}}

	err := Validate(a)
	require.Error(t, err)
	var de *errors.BaseError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.CycleErrorCode, de.ErrorCode())
}

func TestValidateSiblingEmbedsShareSchema(t *testing.T) {
	shared := New("Info", model.ScopeInterface, &Param{Name: "Name", Strategy: StrategyCaptureName})
	s := New("I", model.ScopeInterface,
		&Param{Name: "A", Strategy: StrategyEmbedded, Embed: shared},
		&Param{Name: "B", Strategy: StrategyEmbedded, Embed: shared},
	)
	assert.NoError(t, Validate(s), "siblings may embed the same schema")
}

func TestValidateCached(t *testing.T) {
	s := New("I", model.ScopeInterface, &Param{Name: "Name", Strategy: StrategyCaptureName})
	require.NoError(t, Validate(s))
	// Mutating after validation is not supported; the cached verdict holds.
	s.Groups = [][]*Param{{{Name: "Bad", Strategy: StrategyUnrecognized}}}
	assert.NoError(t, Validate(s))
}

func TestStrategyStrings(t *testing.T) {
	assert.Equal(t, "methods", StrategyPerMethod.String())
	assert.Equal(t, "unrecognized", StrategyUnrecognized.String())
	assert.True(t, StrategyPerMethod.PerMember())
	assert.True(t, StrategyCaptureAnnotation.Cardinal())
	assert.False(t, StrategyCaptureName.Cardinal())
}

func TestCardinalityStrings(t *testing.T) {
	assert.Equal(t, "one", One.String())
	assert.Equal(t, "many=named", NamedMany.String())
	assert.True(t, NamedMany.Multi())
	assert.False(t, AtMostOne.Multi())
}
