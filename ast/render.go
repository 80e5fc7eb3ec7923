package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Render serializes a document back to GraphQL source. The output is
// canonical but not pretty: single spaces between tokens, no commas. Parsing
// the rendered text yields a tree equal to the original.
func Render(doc *Document) string {
	var b strings.Builder
	for i, def := range doc.Definitions {
		if i > 0 {
			b.WriteByte(' ')
		}
		renderDefinition(&b, def)
	}
	return b.String()
}

func renderDefinition(b *strings.Builder, def Definition) {
	switch d := def.(type) {
	case *Operation:
		b.WriteString(string(d.Type))
		if d.Name != "" {
			b.WriteByte(' ')
			b.WriteString(d.Name)
		}
		if len(d.Variables) > 0 {
			b.WriteByte('(')
			for i, v := range d.Variables {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteByte('$')
				b.WriteString(v.Name)
				b.WriteString(": ")
				b.WriteString(v.Type.String())
				if v.Default != nil {
					b.WriteString(" = ")
					b.WriteString(RenderValue(v.Default))
				}
				renderDirectives(b, v.Directives)
			}
			b.WriteByte(')')
		}
		renderDirectives(b, d.Directives)
		b.WriteByte(' ')
		renderSelectionSet(b, d.SelectionSet)
	case *Fragment:
		b.WriteString("fragment ")
		b.WriteString(d.Name)
		b.WriteString(" on ")
		b.WriteString(d.TypeName)
		renderDirectives(b, d.Directives)
		b.WriteByte(' ')
		renderSelectionSet(b, d.SelectionSet)
	}
}

func renderSelectionSet(b *strings.Builder, set SelectionSet) {
	b.WriteString("{ ")
	for i, sel := range set {
		if i > 0 {
			b.WriteByte(' ')
		}
		renderSelection(b, sel)
	}
	b.WriteString(" }")
}

func renderSelection(b *strings.Builder, sel Selection) {
	switch s := sel.(type) {
	case *Field:
		if s.Alias != "" {
			b.WriteString(s.Alias)
			b.WriteString(": ")
		}
		b.WriteString(s.Name)
		renderArguments(b, s.Arguments)
		renderDirectives(b, s.Directives)
		if s.SelectionSet != nil {
			b.WriteByte(' ')
			renderSelectionSet(b, s.SelectionSet)
		}
	case *FragmentSpread:
		b.WriteString("...")
		b.WriteString(s.Name)
		renderDirectives(b, s.Directives)
	case *InlineFragment:
		b.WriteString("...")
		if s.TypeName != "" {
			b.WriteString(" on ")
			b.WriteString(s.TypeName)
		}
		renderDirectives(b, s.Directives)
		b.WriteByte(' ')
		renderSelectionSet(b, s.SelectionSet)
	}
}

func renderArguments(b *strings.Builder, args []*Argument) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Name)
		b.WriteString(": ")
		b.WriteString(RenderValue(a.Value))
	}
	b.WriteByte(')')
}

func renderDirectives(b *strings.Builder, dirs []*Directive) {
	for _, d := range dirs {
		b.WriteString(" @")
		b.WriteString(d.Name)
		renderArguments(b, d.Arguments)
	}
}

// RenderValue serializes a single input value to GraphQL source.
func RenderValue(v Value) string {
	switch val := v.(type) {
	case Variable:
		return "$" + val.Name
	case Int:
		return strconv.FormatInt(int64(val.Value), 10)
	case String:
		// Only the bytes the string grammar cannot hold raw are escaped.
		return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`).Replace(val.Value) + `"`
	case Boolean:
		return strconv.FormatBool(val.Value)
	case Null:
		return "null"
	case Enum:
		return val.Name
	case List:
		parts := make([]string, len(val.Values))
		for i, e := range val.Values {
			parts[i] = RenderValue(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case Object:
		parts := make([]string, len(val.Fields))
		for i, f := range val.Fields {
			parts[i] = f.Name + ": " + RenderValue(f.Value)
		}
		return "{" + strings.Join(parts, " ") + "}"
	}
	panic(fmt.Sprintf("unknown value %T", v))
}
