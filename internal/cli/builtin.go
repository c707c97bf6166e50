package cli

import (
	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/schema"
)

// DescribeSchema is the built-in schema the CLI derives against every
// scanned interface: a structural description of each method and parameter,
// with free-form doc annotations captured along the way.
func DescribeSchema() *schema.Schema {
	paramInfo := schema.New("ParamInfo", model.ScopeParameter,
		&schema.Param{Name: "Name", Strategy: schema.StrategyCaptureName},
		&schema.Param{Name: "Pos", Strategy: schema.StrategyCapturePosition},
		&schema.Param{Name: "Flags", Strategy: schema.StrategyCaptureFlags},
		&schema.Param{Name: "Doc", Strategy: schema.StrategyCaptureAnnotation, AnnotKind: "doc", Cardinality: schema.Many},
	)
	methodInfo := schema.New("MethodInfo", model.ScopeMethod,
		&schema.Param{Name: "Name", Strategy: schema.StrategyCaptureName},
		&schema.Param{Name: "Deprecated", Strategy: schema.StrategyPresenceCheck, AnnotKind: "doc.deprecated", TypeName: "bool"},
		&schema.Param{Name: "Doc", Strategy: schema.StrategyCaptureAnnotation, AnnotKind: "doc", Cardinality: schema.Many},
		&schema.Param{Name: "Params", Strategy: schema.StrategyPerParameter, Cardinality: schema.NamedMany, Elem: paramInfo},
	)
	return schema.New("InterfaceInfo", model.ScopeInterface,
		&schema.Param{Name: "Name", Strategy: schema.StrategyCaptureName},
		&schema.Param{Name: "Methods", Strategy: schema.StrategyPerMethod, Cardinality: schema.NamedMany, Elem: methodInfo},
	)
}
