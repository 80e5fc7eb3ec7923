// Package parser turns GraphQL executable-document source text into the
// typed AST of package ast. It implements the executable subset of the
// October 2021 GraphQL specification: operations (including the `{ … }`
// shorthand), fragments, selections, variables, directives, arguments, and
// input values. Block strings, float literals, and `\u` escapes are not
// supported.
//
// The grammar is built on the combinator kernel: token parsers skip leading
// ignored bytes (whitespace, commas, and `#` comments) and rewind fully when
// they fail, so ordered alternation stays predictable — an alternative that
// failed after consuming real input fails the whole parse.
package parser

import (
	"bytes"
	"errors"
	"fmt"

	"go.appointy.com/quill/ast"
	c "go.appointy.com/quill/combinator"
)

// ParseDocument parses a complete executable document. It returns a
// *SyntaxError when the grammar rejects the input and an *IncompleteError
// when a valid document prefix is followed by trailing input.
func ParseDocument(input string) (*ast.Document, error) {
	s := c.NewState([]byte(input))
	if bytes.HasPrefix(s.Input, []byte{0xEF, 0xBB, 0xBF}) {
		// Leading byte order mark is an ignored token.
		s.Offset = 3
	}
	if skipIgnored(s).EOF() {
		return nil, &SyntaxError{Message: "document must contain at least one definition", Offset: skipIgnored(s).Offset}
	}
	defs, next, err := c.Many1(c.Parser[ast.Definition](definition))(s)
	if err != nil {
		return nil, toSyntaxError(err)
	}
	next = skipIgnored(next)
	if !next.EOF() {
		return nil, &IncompleteError{Remainder: string(next.Rest())}
	}
	return &ast.Document{Definitions: defs}, nil
}

// ParseTypeRef parses a single type reference such as `[User!]!`.
func ParseTypeRef(input string) (ast.TypeRef, error) {
	t, next, err := typeRef(c.NewState([]byte(input)))
	if err != nil {
		return nil, toSyntaxError(err)
	}
	next = skipIgnored(next)
	if !next.EOF() {
		return nil, &IncompleteError{Remainder: string(next.Rest())}
	}
	return t, nil
}

// ParseValue parses a single input value such as `{ids: [1 2], on: ACTIVE}`.
func ParseValue(input string) (ast.Value, error) {
	v, next, err := valueParser(c.NewState([]byte(input)))
	if err != nil {
		return nil, toSyntaxError(err)
	}
	next = skipIgnored(next)
	if !next.EOF() {
		return nil, &IncompleteError{Remainder: string(next.Rest())}
	}
	return v, nil
}

func toSyntaxError(err error) error {
	var cerr *c.Error
	if errors.As(err, &cerr) {
		return &SyntaxError{Message: cerr.Message, Offset: cerr.Offset}
	}
	return &SyntaxError{Message: err.Error()}
}

// Ignored tokens: whitespace, commas (insignificant per spec), and comments.

func isIgnoredByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == ','
}

func skipIgnored(s c.State) c.State {
	in := s.Input
	i := s.Offset
	for i < len(in) {
		switch {
		case isIgnoredByte(in[i]):
			i++
		case in[i] == '#':
			for i < len(in) && in[i] != '\n' && in[i] != '\r' {
				i++
			}
		default:
			return c.State{Input: in, Offset: i}
		}
	}
	return c.State{Input: in, Offset: i}
}

// symbol matches a single punctuator, skipping leading ignored bytes. On
// failure the state rewinds fully so alternation can try something else.
func symbol(ch byte) c.Parser[byte] {
	return func(s c.State) (byte, c.State, error) {
		t := skipIgnored(s)
		if t.EOF() || t.Input[t.Offset] != ch {
			return 0, s, &c.Error{Offset: t.Offset, Message: fmt.Sprintf("expected %q", string(ch))}
		}
		return ch, c.State{Input: t.Input, Offset: t.Offset + 1}, nil
	}
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameContinue(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}

// name matches `[_A-Za-z][_A-Za-z0-9]*`, skipping leading ignored bytes.
func name(s c.State) (string, c.State, error) {
	t := skipIgnored(s)
	if t.EOF() || !isNameStart(t.Input[t.Offset]) {
		return "", s, &c.Error{Offset: t.Offset, Message: "expected a name"}
	}
	end := t.Offset + 1
	for end < len(t.Input) && isNameContinue(t.Input[end]) {
		end++
	}
	return string(t.Input[t.Offset:end]), c.State{Input: t.Input, Offset: end}, nil
}

// keyword matches a full name equal to k. A longer name such as `queryX`
// does not match and the state rewinds.
func keyword(k string) c.Parser[string] {
	return func(s c.State) (string, c.State, error) {
		n, next, err := name(s)
		if err != nil || n != k {
			return "", s, &c.Error{Offset: skipIgnored(s).Offset, Message: fmt.Sprintf("expected %q", k)}
		}
		return n, next, nil
	}
}

// fragmentName is a name excluding the keyword `on`; the rewind on `on`
// lets the spread/inline alternation fall through to inline fragments.
func fragmentName(s c.State) (string, c.State, error) {
	n, next, err := name(s)
	if err != nil {
		return "", s, err
	}
	if n == "on" {
		return "", s, &c.Error{Offset: skipIgnored(s).Offset, Message: `fragment name must not be "on"`}
	}
	return n, next, nil
}

// Definitions.

func definition(s c.State) (ast.Definition, c.State, error) {
	def, next, err := c.OneOf(
		c.Parser[ast.Definition](operationDefinition),
		c.Parser[ast.Definition](fragmentDefinition),
	)(s)
	if err != nil && next.Offset == s.Offset {
		return nil, s, &c.Error{Offset: skipIgnored(s).Offset, Message: "expected an operation or fragment definition"}
	}
	return def, next, err
}

var operationKeywords = []ast.OperationType{ast.Query, ast.Mutation, ast.Subscription}

func operationDefinition(s c.State) (ast.Definition, c.State, error) {
	opType := ast.OperationType("")
	next := s
	for _, k := range operationKeywords {
		if _, after, err := keyword(string(k))(s); err == nil {
			opType, next = k, after
			break
		}
	}
	if opType == "" {
		// Shorthand form: a bare selection set is an unnamed query. A
		// keywordless operation cannot carry a name or variables.
		sels, after, err := selectionSet(s)
		if err != nil {
			return nil, after, err
		}
		return &ast.Operation{Type: ast.Query, SelectionSet: sels}, after, nil
	}

	opName := ""
	if n, after, err := name(next); err == nil {
		opName, next = n, after
	}
	vars, next, err := maybeVariableDefinitions(next)
	if err != nil {
		return nil, next, err
	}
	dirs, next, err := runDirectives(next)
	if err != nil {
		return nil, next, err
	}
	sels, next, err := selectionSet(next)
	if err != nil {
		return nil, next, err
	}
	return &ast.Operation{
		Type:         opType,
		Name:         opName,
		Variables:    vars,
		Directives:   dirs,
		SelectionSet: sels,
	}, next, nil
}

func fragmentDefinition(s c.State) (ast.Definition, c.State, error) {
	_, next, err := keyword("fragment")(s)
	if err != nil {
		return nil, s, err
	}
	fragName, next, err := fragmentName(next)
	if err != nil {
		return nil, next, err
	}
	_, next, err = keyword("on")(next)
	if err != nil {
		return nil, next, err
	}
	typeName, next, err := name(next)
	if err != nil {
		return nil, next, err
	}
	dirs, next, err := runDirectives(next)
	if err != nil {
		return nil, next, err
	}
	sels, next, err := selectionSet(next)
	if err != nil {
		return nil, next, err
	}
	return &ast.Fragment{
		Name:         fragName,
		TypeName:     typeName,
		Directives:   dirs,
		SelectionSet: sels,
	}, next, nil
}

// Variable definitions.

func maybeVariableDefinitions(s c.State) ([]*ast.VariableDefinition, c.State, error) {
	_, next, err := symbol('(')(s)
	if err != nil {
		return nil, s, nil
	}
	defs, next, err := c.Many1(c.Parser[*ast.VariableDefinition](variableDefinition))(next)
	if err != nil {
		return nil, next, err
	}
	_, next, err = symbol(')')(next)
	if err != nil {
		return nil, next, err
	}
	return defs, next, nil
}

func variableDefinition(s c.State) (*ast.VariableDefinition, c.State, error) {
	_, next, err := symbol('$')(s)
	if err != nil {
		return nil, s, err
	}
	varName, next, err := name(next)
	if err != nil {
		return nil, next, err
	}
	_, next, err = symbol(':')(next)
	if err != nil {
		return nil, next, err
	}
	varType, next, err := typeRef(next)
	if err != nil {
		return nil, next, err
	}
	var def ast.Value
	if _, after, err := symbol('=')(next); err == nil {
		v, after, err := valueParser(after)
		if err != nil {
			return nil, after, err
		}
		def, next = v, after
	}
	dirs, next, err := runDirectives(next)
	if err != nil {
		return nil, next, err
	}
	return &ast.VariableDefinition{Name: varName, Type: varType, Default: def, Directives: dirs}, next, nil
}

// Type references.

func typeRef(s c.State) (ast.TypeRef, c.State, error) {
	if _, next, err := symbol('[')(s); err == nil {
		elem, next, err := typeRef(next)
		if err != nil {
			return nil, next, err
		}
		_, next, err = symbol(']')(next)
		if err != nil {
			return nil, next, err
		}
		nonNull, next := bang(next)
		return ast.ListType{Elem: elem, NonNull: nonNull}, next, nil
	}
	n, next, err := name(s)
	if err != nil {
		return nil, s, &c.Error{Offset: skipIgnored(s).Offset, Message: "expected a type"}
	}
	nonNull, next := bang(next)
	return ast.NamedType{Name: n, NonNull: nonNull}, next, nil
}

func bang(s c.State) (bool, c.State) {
	if _, next, err := symbol('!')(s); err == nil {
		return true, next
	}
	return false, s
}

// Selections.

func selectionSet(s c.State) (ast.SelectionSet, c.State, error) {
	_, next, err := symbol('{')(s)
	if err != nil {
		return nil, s, err
	}
	sels, after, err := c.Many1(c.Parser[ast.Selection](selection))(next)
	if err != nil {
		if after.Offset == next.Offset {
			return nil, next, &c.Error{Offset: skipIgnored(next).Offset, Message: "selection set must not be empty"}
		}
		return nil, after, err
	}
	_, after, err = symbol('}')(after)
	if err != nil {
		return nil, after, err
	}
	return ast.SelectionSet(sels), after, nil
}

func selection(s c.State) (ast.Selection, c.State, error) {
	return c.OneOf(
		c.Parser[ast.Selection](fragmentSelection),
		c.Parser[ast.Selection](field),
	)(s)
}

// fragmentSelection parses both selections that begin with `...`. The
// fragment-spread alternative runs first; it fails without consuming past
// the dots when the next token is `on`, `{`, or `@`, which hands the input
// to the inline-fragment rule.
func fragmentSelection(s c.State) (ast.Selection, c.State, error) {
	t := skipIgnored(s)
	if !bytes.HasPrefix(t.Rest(), []byte("...")) {
		return nil, s, &c.Error{Offset: t.Offset, Message: `expected "..."`}
	}
	next := c.State{Input: t.Input, Offset: t.Offset + 3}

	if spreadName, after, err := fragmentName(next); err == nil {
		dirs, after, err := runDirectives(after)
		if err != nil {
			return nil, after, err
		}
		return &ast.FragmentSpread{Name: spreadName, Directives: dirs}, after, nil
	}

	typeName := ""
	if _, after, err := keyword("on")(next); err == nil {
		n, after, err := name(after)
		if err != nil {
			return nil, after, err
		}
		typeName, next = n, after
	}
	dirs, next, err := runDirectives(next)
	if err != nil {
		return nil, next, err
	}
	sels, next, err := selectionSet(next)
	if err != nil {
		return nil, next, err
	}
	return &ast.InlineFragment{TypeName: typeName, Directives: dirs, SelectionSet: sels}, next, nil
}

func field(s c.State) (ast.Selection, c.State, error) {
	first, next, err := name(s)
	if err != nil {
		return nil, s, err
	}
	alias, fieldName := "", first
	if _, after, err := symbol(':')(next); err == nil {
		second, after, err := name(after)
		if err != nil {
			return nil, after, err
		}
		alias, fieldName, next = first, second, after
	}
	args, next, err := maybeArguments(next)
	if err != nil {
		return nil, next, err
	}
	dirs, next, err := runDirectives(next)
	if err != nil {
		return nil, next, err
	}
	var sels ast.SelectionSet
	sub, after, err := selectionSet(next)
	if err == nil {
		sels, next = sub, after
	} else if after.Offset != next.Offset {
		return nil, after, err
	}
	return &ast.Field{
		Alias:        alias,
		Name:         fieldName,
		Arguments:    args,
		Directives:   dirs,
		SelectionSet: sels,
	}, next, nil
}

// Arguments and directives.

func arguments(s c.State) ([]*ast.Argument, c.State, error) {
	_, next, err := symbol('(')(s)
	if err != nil {
		return nil, s, err
	}
	args, next, err := c.Many1(c.Parser[*ast.Argument](argument))(next)
	if err != nil {
		return nil, next, err
	}
	_, next, err = symbol(')')(next)
	if err != nil {
		return nil, next, err
	}
	return args, next, nil
}

func maybeArguments(s c.State) ([]*ast.Argument, c.State, error) {
	args, next, err := arguments(s)
	if err != nil {
		if next.Offset == s.Offset {
			return nil, s, nil
		}
		return nil, next, err
	}
	return args, next, nil
}

func argument(s c.State) (*ast.Argument, c.State, error) {
	argName, next, err := name(s)
	if err != nil {
		return nil, s, err
	}
	_, next, err = symbol(':')(next)
	if err != nil {
		return nil, next, err
	}
	v, next, err := valueParser(next)
	if err != nil {
		return nil, next, err
	}
	return &ast.Argument{Name: argName, Value: v}, next, nil
}

func directive(s c.State) (*ast.Directive, c.State, error) {
	_, next, err := symbol('@')(s)
	if err != nil {
		return nil, s, err
	}
	dirName, next, err := name(next)
	if err != nil {
		return nil, next, err
	}
	args, next, err := maybeArguments(next)
	if err != nil {
		return nil, next, err
	}
	return &ast.Directive{Name: dirName, Arguments: args}, next, nil
}

func runDirectives(s c.State) ([]*ast.Directive, c.State, error) {
	return c.Many(c.Parser[*ast.Directive](directive))(s)
}
