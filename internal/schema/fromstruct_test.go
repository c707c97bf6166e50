package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
)

type paramMeta struct {
	Name  string   `derive:"name"`
	Pos   Position `derive:"pos"`
	Typed bool     `derive:"present=doc.typed"`
}

// Position stands in for the engine's position value in schema structs.
type Position struct {
	Global, Group, InGroup, InScope int
}

type methodMeta struct {
	_      struct{}              `derive:"tag=http"`
	Name   string                `derive:"name"`
	Params map[string]*paramMeta `derive:"params"`
}

type ifaceMeta struct {
	Name    string                 `derive:"name,raw"`
	Methods map[string]*methodMeta `derive:"methods,tag=http.get"`
	Getters []*methodMeta          `derive:"methods,aux"`
}

func TestFromStruct(t *testing.T) {
	s, err := FromStruct(reflect.TypeOf(ifaceMeta{}))
	require.NoError(t, err)

	assert.Equal(t, "ifaceMeta", s.Name)
	assert.Equal(t, model.ScopeInterface, s.Scope)
	params := s.Params()
	require.Len(t, params, 3)

	name := params[0]
	assert.Equal(t, StrategyCaptureName, name.Strategy)
	assert.True(t, name.RawName)

	methods := params[1]
	assert.Equal(t, StrategyPerMethod, methods.Strategy)
	assert.Equal(t, NamedMany, methods.Cardinality, "map fields are name-keyed collections")
	assert.Equal(t, model.Tag("http.get"), methods.Tag)
	require.NotNil(t, methods.Elem)
	assert.Equal(t, model.ScopeMethod, methods.Elem.Scope)
	assert.Equal(t, model.Tag("http"), methods.Elem.DefaultTag, "blank field configures the schema default tag")

	getters := params[2]
	assert.Equal(t, Many, getters.Cardinality, "slice fields are positional collections")
	assert.True(t, getters.Aux)

	elemParams := methods.Elem.Params()
	require.Len(t, elemParams, 2)
	inner := elemParams[1]
	assert.Equal(t, StrategyPerParameter, inner.Strategy)
	require.NotNil(t, inner.Elem)
	assert.Equal(t, model.ScopeParameter, inner.Elem.Scope)

	leaf := inner.Elem.Params()
	require.Len(t, leaf, 3)
	assert.Equal(t, StrategyCapturePosition, leaf[1].Strategy)
	assert.Equal(t, StrategyPresenceCheck, leaf[2].Strategy)
	assert.Equal(t, model.Tag("doc.typed"), leaf[2].AnnotKind)
	assert.Equal(t, "bool", leaf[2].TypeName)
}

func TestFromStructContextualDefault(t *testing.T) {
	type withLookup struct {
		Codec   *testCodec `derive:""`
		Strict2 *testCodec `derive:"lookup=strict"`
	}
	s, err := FromStruct(reflect.TypeOf(withLookup{}))
	require.NoError(t, err)

	params := s.Params()
	require.Len(t, params, 2)
	assert.Equal(t, StrategyContextualLookup, params[0].Strategy, "a parameter with no explicit strategy is contextual")
	assert.Equal(t, "*schema.testCodec", params[0].TypeName)
	assert.False(t, params[0].Strict)
	assert.True(t, params[1].Strict)
}

type testCodec struct{}

func TestFromStructUnrecognized(t *testing.T) {
	type bad struct {
		X string `derive:"frobnicate"`
	}
	s, err := FromStruct(reflect.TypeOf(bad{}))
	require.NoError(t, err, "classification happens at parse time, rejection at validation")
	assert.Equal(t, StrategyUnrecognized, s.Params()[0].Strategy)

	err = Validate(s)
	require.Error(t, err)
	var de *errors.BaseError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.SchemaConfigErrorCode, de.ErrorCode())
}

type selfEmbedding struct {
	Inner *selfEmbedding `derive:"embed"`
}

func TestFromStructCycle(t *testing.T) {
	_, err := FromStruct(reflect.TypeOf(selfEmbedding{}))
	require.Error(t, err)
	var de *errors.BaseError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.CycleErrorCode, de.ErrorCode())
}

func TestFromStructPointerPrototypePath(t *testing.T) {
	// Prototypes normally arrive as pointers; the diagnostic path must
	// still start at the struct's own name.
	_, err := FromStruct(reflect.TypeOf(&selfEmbedding{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'selfEmbedding.Inner'")
}

type cycleA struct {
	B cycleB `derive:"embed"`
}

type cycleB struct {
	A *cycleA `derive:"embed"`
}

func TestFromStructTransitiveCycle(t *testing.T) {
	_, err := FromStruct(reflect.TypeOf(cycleA{}))
	require.Error(t, err)
	var de *errors.BaseError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.CycleErrorCode, de.ErrorCode())
}

func TestFromStructRejectsNonStruct(t *testing.T) {
	_, err := FromStruct(reflect.TypeOf(42))
	require.Error(t, err)
}
