// Package source builds interface models from real Go source: it loads and
// type-checks packages, finds interface declarations, and attaches the
// annotations written in `//derive::` doc comments.
package source

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
)

// AnnotationPrefix starts every annotation line in a doc comment.
const AnnotationPrefix = "derive::"

// annotationLine is the participle AST for one annotation line:
//
//	derive::<kind> [value] [key=value ...] [param=<name>]
//
// The kind is a dotted hierarchical name. Well-known kinds (tag, name,
// default-tag) take a single positional value; any other kind is a free-form
// annotation captured verbatim with its arguments.
type annotationLine struct {
	Kind string     `parser:"Prefix @Ident"`
	Args []argument `parser:"@@*"`
}

type argument struct {
	Key   string    `parser:"(@Ident Equals)?"`
	Value *argValue `parser:"@@"`
}

type argValue struct {
	Str   *string  `parser:"@String"`
	Num   *float64 `parser:"| @Number"`
	Ident *string  `parser:"| @Ident"`
}

func (v *argValue) value() interface{} {
	switch {
	case v.Str != nil:
		return strings.Trim(*v.Str, `"`)
	case v.Num != nil:
		if f := *v.Num; f == float64(int(f)) {
			return int(f)
		}
		return *v.Num
	case v.Ident != nil:
		switch *v.Ident {
		case "true":
			return true
		case "false":
			return false
		}
		return *v.Ident
	default:
		return nil
	}
}

// AnnotationParser parses `derive::` annotation lines.
type AnnotationParser struct {
	parser *participle.Parser[annotationLine]
}

// NewAnnotationParser builds the annotation grammar.
func NewAnnotationParser() *AnnotationParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Prefix", Pattern: `derive::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.\-]*`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[annotationLine](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &AnnotationParser{parser: parser}
}

// Parsed is one parsed annotation plus its optional parameter target: an
// annotation written on a method but addressed to one of its parameters via
// `param=<name>`.
type Parsed struct {
	Annotation  model.Annotation
	ParamTarget string
}

// Parse parses a single annotation line, already stripped of its comment
// markers.
func (p *AnnotationParser) Parse(line string, loc errors.SourceLocation) (Parsed, error) {
	ast, err := p.parser.ParseString(loc.File, strings.TrimSpace(line))
	if err != nil {
		return Parsed{}, errors.NewSyntaxError(err.Error(), loc).
			WithContext("line", line).
			WithSuggestion("annotation lines look like: derive::tag http.query")
	}

	out := Parsed{Annotation: model.Annotation{
		Kind:   model.Tag(ast.Kind),
		Params: make(map[string]interface{}),
		Loc:    loc,
	}}
	positional := 0
	for _, arg := range ast.Args {
		switch {
		case arg.Key == "param":
			if s, ok := arg.Value.value().(string); ok {
				out.ParamTarget = s
			}
		case arg.Key != "":
			out.Annotation.Params[arg.Key] = arg.Value.value()
		case positional == 0:
			out.Annotation.Params["value"] = arg.Value.value()
			positional++
		default:
			return Parsed{}, errors.NewSyntaxError("annotations take at most one positional value", loc).
				WithContext("line", line)
		}
	}
	return out, nil
}

// ParseComment extracts every annotation line from a comment block.
func (p *AnnotationParser) ParseComment(text string, loc errors.SourceLocation) ([]Parsed, error) {
	var out []Parsed
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "//"))
		if !strings.HasPrefix(line, AnnotationPrefix) {
			continue
		}
		lineLoc := loc
		lineLoc.Line += i
		parsed, err := p.Parse(line, lineLoc)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}
