package errors

import (
	"fmt"
	"strings"
)

// Constructors for the matching-error taxonomy. Every message names the
// schema parameter by its owner chain (e.g. "RestSchema.methods.result") and
// the real declaration(s) it was attempting to satisfy, so each diagnostic is
// traceable to both sides.

// NewSchemaConfigError reports a malformed schema definition. Interface
// independent and always fatal.
func NewSchemaConfigError(paramPath, reason string) *BaseError {
	return Newf(SchemaConfigErrorCode, "schema parameter '%s' is malformed: %s", paramPath, reason).
		WithContext("parameter", paramPath)
}

// NewNoMatchError reports that an exactly-one or zero-or-one schema
// parameter found no qualifying real declaration.
func NewNoMatchError(paramPath, memberKind string) *BaseError {
	return Newf(NoMatchErrorCode, "schema parameter '%s' matched no %s", paramPath, memberKind).
		WithContext("parameter", paramPath).
		WithSuggestion(fmt.Sprintf("declare a %s whose tag satisfies '%s', or relax its cardinality", memberKind, paramPath))
}

// NewAmbiguousMatchError reports that an exactly-one or zero-or-one schema
// parameter found two or more qualifying real declarations, naming them all.
func NewAmbiguousMatchError(paramPath string, candidates []string) *BaseError {
	return Newf(AmbiguousMatchErrorCode, "schema parameter '%s' matched %d candidates: %s",
		paramPath, len(candidates), strings.Join(candidates, ", ")).
		WithContext("parameter", paramPath).
		WithContext("candidates", candidates).
		WithSuggestion("restrict the parameter with a more specific tag so only one declaration qualifies")
}

// NewDuplicateConsumptionError reports one real member claimed by two or
// more consuming schema parameters.
func NewDuplicateConsumptionError(memberName string, paramPaths []string) *BaseError {
	return Newf(DuplicateConsumptionErrorCode, "'%s' is consumed by %d schema parameters: %s",
		memberName, len(paramPaths), strings.Join(paramPaths, ", ")).
		WithContext("member", memberName).
		WithContext("parameters", paramPaths).
		WithSuggestion("mark all but one of the claiming schema parameters auxiliary")
}

// NewDuplicateNameError reports two members of a name-keyed collection whose
// externally-facing names collide.
func NewDuplicateNameError(paramPath, name string, members []string) *BaseError {
	return Newf(DuplicateNameErrorCode, "schema parameter '%s' collected duplicate name '%s' from: %s",
		paramPath, name, strings.Join(members, ", ")).
		WithContext("parameter", paramPath).
		WithContext("name", name).
		WithSuggestion("rename one of the declarations or give it an explicit alias")
}

// NewCycleError reports a schema that embeds itself, directly or
// transitively. Detected during descent, before any matching runs.
func NewCycleError(schemaName, paramPath string) *BaseError {
	return Newf(CycleErrorCode, "schema '%s' embeds itself through parameter '%s'", schemaName, paramPath).
		WithContext("schema", schemaName).
		WithContext("parameter", paramPath)
}

// NewLookupFailureError reports an unresolved contextual reference
// discovered at value-tree finalization.
func NewLookupFailureError(paramPath, typeName string) *BaseError {
	return Newf(LookupFailureErrorCode, "schema parameter '%s' references unregistered type '%s'", paramPath, typeName).
		WithContext("parameter", paramPath).
		WithContext("type", typeName).
		WithSuggestion(fmt.Sprintf("register an instance of '%s' with the contextual resolver before finalizing", typeName))
}

// NewSyntaxError reports a malformed source annotation.
func NewSyntaxError(msg string, loc SourceLocation) *BaseError {
	return New(SyntaxErrorCode, msg).WithLocation(loc)
}

// NewLoadError reports a package-loading failure in the source front-end.
func NewLoadError(pattern string, cause error) *BaseError {
	return Wrapf(LoadErrorCode, cause, "failed to load packages for pattern %q", pattern)
}
