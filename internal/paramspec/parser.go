// Package paramspec parses the declarative parameter table notation used at
// route registration:
//
//	offset:int=0
//	limit:int=20
//	quality:string@settings
//	ids:[]int
//	uid(user_id):int
//
// The notation is name, an optional external key in parentheses, a colon, an
// optional list marker, the type, an optional "=" default, and an optional
// "@" scope.
package paramspec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Spec is the parsed form of one parameter declaration. Defaults are kept
// raw; the caller coerces them with the parameter's own coercer so that a
// bad default fails the same way a bad query value would.
type Spec struct {
	Name       string
	Key        string
	TypeName   string
	List       bool
	Scope      string
	RawDefault string
	HasDefault bool
}

type specAST struct {
	Name    string  `parser:"@Ident"`
	Key     *string `parser:"( '(' @Ident ')' )?"`
	List    bool    `parser:"':' @( '[' ']' )?"`
	Type    string  `parser:"@Ident"`
	Default *string `parser:"( '=' @( String | Number | Ident ) )?"`
	Scope   *string `parser:"( '@' @Ident )?"`
}

var specLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[()\[\]:=@]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var specParser = participle.MustBuild[specAST](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a single parameter declaration.
func Parse(input string) (Spec, error) {
	ast, err := specParser.ParseString("", input)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid parameter spec %q: %w", input, err)
	}

	spec := Spec{
		Name:     ast.Name,
		TypeName: ast.Type,
		List:     ast.List,
	}
	if ast.Key != nil {
		spec.Key = *ast.Key
	}
	if ast.Scope != nil {
		spec.Scope = strings.ToLower(*ast.Scope)
	}
	if ast.Default != nil {
		raw := *ast.Default
		if strings.HasPrefix(raw, `"`) {
			unquoted, err := strconv.Unquote(raw)
			if err != nil {
				return Spec{}, fmt.Errorf("invalid parameter spec %q: bad default literal: %w", input, err)
			}
			raw = unquoted
		}
		spec.RawDefault = raw
		spec.HasDefault = true
	}
	return spec, nil
}
