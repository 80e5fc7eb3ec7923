package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"go.appointy.com/quill/ast"
	c "go.appointy.com/quill/combinator"
)

// valueParser is the input-value grammar. Alternation order matters:
// variables before integers (leading `$`), booleans and null before enums so
// `true`, `false`, and `null` are never read as enum values, and the
// bracketed forms last.
func valueParser(s c.State) (ast.Value, c.State, error) {
	return c.OneOf(
		c.Parser[ast.Value](variableValue),
		c.Parser[ast.Value](intValue),
		c.Parser[ast.Value](stringValue),
		booleanValue(),
		nullValue(),
		enumValue(),
		c.Parser[ast.Value](listValue),
		c.Parser[ast.Value](objectValue),
	)(s)
}

func variableValue(s c.State) (ast.Value, c.State, error) {
	_, next, err := symbol('$')(s)
	if err != nil {
		return nil, s, err
	}
	varName, next, err := name(next)
	if err != nil {
		return nil, next, err
	}
	return ast.Variable{Name: varName}, next, nil
}

func intValue(s c.State) (ast.Value, c.State, error) {
	t := skipIgnored(s)
	in := t.Input
	start := t.Offset
	i := start
	if i < len(in) && in[i] == '-' {
		i++
	}
	digits := i
	for i < len(in) && in[i] >= '0' && in[i] <= '9' {
		i++
	}
	if i == digits {
		return nil, s, &c.Error{Offset: start, Message: "expected an integer"}
	}
	n, err := strconv.ParseInt(string(in[start:i]), 10, 32)
	if err != nil {
		return nil, c.State{Input: in, Offset: i}, &c.Error{
			Offset:  start,
			Message: fmt.Sprintf("integer %s does not fit in 32 bits", string(in[start:i])),
		}
	}
	return ast.Int{Value: int32(n)}, c.State{Input: in, Offset: i}, nil
}

// stringValue parses a double-quoted string with the spec escapes
// `\" \\ \/ \b \f \n \r \t`. Raw line terminators inside the literal and
// `\u` escapes are rejected; the unescaped payload must be valid UTF-8.
func stringValue(s c.State) (ast.Value, c.State, error) {
	t := skipIgnored(s)
	if t.EOF() || t.Input[t.Offset] != '"' {
		return nil, s, &c.Error{Offset: t.Offset, Message: "expected a string"}
	}
	in := t.Input
	i := t.Offset + 1
	var buf []byte
	for {
		if i >= len(in) {
			return nil, c.State{Input: in, Offset: i}, &c.Error{Offset: t.Offset, Message: "unterminated string"}
		}
		switch b := in[i]; {
		case b == '"':
			i++
			if !utf8.Valid(buf) {
				return nil, c.State{Input: in, Offset: i}, &c.Error{Offset: t.Offset, Message: "string literal is not valid UTF-8"}
			}
			return ast.String{Value: string(buf)}, c.State{Input: in, Offset: i}, nil
		case b == '\\':
			if i+1 >= len(in) {
				return nil, c.State{Input: in, Offset: i}, &c.Error{Offset: t.Offset, Message: "unterminated string"}
			}
			switch esc := in[i+1]; esc {
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			case '/':
				buf = append(buf, '/')
			case 'b':
				buf = append(buf, 0x08)
			case 'f':
				buf = append(buf, 0x0c)
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			default:
				return nil, c.State{Input: in, Offset: i}, &c.Error{
					Offset:  i,
					Message: fmt.Sprintf("unsupported escape sequence \\%s", string(esc)),
				}
			}
			i += 2
		case b == '\n' || b == '\r':
			return nil, c.State{Input: in, Offset: i}, &c.Error{Offset: i, Message: "unterminated string"}
		default:
			buf = append(buf, b)
			i++
		}
	}
}

func booleanValue() c.Parser[ast.Value] {
	return c.OneOf(
		c.Map(keyword("true"), func(string) ast.Value { return ast.Boolean{Value: true} }),
		c.Map(keyword("false"), func(string) ast.Value { return ast.Boolean{Value: false} }),
	)
}

func nullValue() c.Parser[ast.Value] {
	return c.Map(keyword("null"), func(string) ast.Value { return ast.Null{} })
}

func enumValue() c.Parser[ast.Value] {
	return c.Map(c.Parser[string](name), func(n string) ast.Value { return ast.Enum{Name: n} })
}

func listValue(s c.State) (ast.Value, c.State, error) {
	_, next, err := symbol('[')(s)
	if err != nil {
		return nil, s, err
	}
	vals, next, err := c.Many(valueParser)(next)
	if err != nil {
		return nil, next, err
	}
	_, next, err = symbol(']')(next)
	if err != nil {
		return nil, next, err
	}
	return ast.List{Values: vals}, next, nil
}

func objectValue(s c.State) (ast.Value, c.State, error) {
	_, next, err := symbol('{')(s)
	if err != nil {
		return nil, s, err
	}
	fields, next, err := c.Many(c.Parser[ast.ObjectField](objectField))(next)
	if err != nil {
		return nil, next, err
	}
	_, next, err = symbol('}')(next)
	if err != nil {
		return nil, next, err
	}
	return ast.Object{Fields: fields}, next, nil
}

func objectField(s c.State) (ast.ObjectField, c.State, error) {
	var zero ast.ObjectField
	fieldName, next, err := name(s)
	if err != nil {
		return zero, s, err
	}
	_, next, err = symbol(':')(next)
	if err != nil {
		return zero, next, err
	}
	v, next, err := valueParser(next)
	if err != nil {
		return zero, next, err
	}
	return ast.ObjectField{Name: fieldName, Value: v}, next, nil
}
