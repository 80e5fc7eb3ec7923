// Package ast defines the abstract syntax tree for GraphQL executable
// documents: operations, fragments, selections, values, and type references.
// The tree is pure data with no back references; parsing produces it and
// validation and execution consume it. Ordering of definitions, selections,
// arguments, and object-literal fields is preserved exactly as written.
package ast

// Document is the root of a parsed executable document — an ordered list of
// operation and fragment definitions.
type Document struct {
	Definitions []Definition
}

// Definition is either an *Operation or a *Fragment.
type Definition interface {
	isDefinition()
}

// OperationType distinguishes queries, mutations, and subscriptions.
type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

// Operation is a top-level query, mutation, or subscription. The shorthand
// document `{ … }` parses as a Query with an empty name.
type Operation struct {
	Type         OperationType
	Name         string
	Variables    []*VariableDefinition
	Directives   []*Directive
	SelectionSet SelectionSet
}

func (*Operation) isDefinition() {}

// Fragment is a named, reusable selection set bound to a type condition.
type Fragment struct {
	Name         string
	TypeName     string
	Directives   []*Directive
	SelectionSet SelectionSet
}

func (*Fragment) isDefinition() {}

// VariableDefinition declares one operation variable: `$name: Type = default`.
// Default is nil when no default value was written.
type VariableDefinition struct {
	Name       string
	Type       TypeRef
	Default    Value
	Directives []*Directive
}

// SelectionSet is an ordered list of selections. Wherever the grammar
// requires one it has at least one element; `{}` is a parse error.
type SelectionSet []Selection

// Selection is one of *Field, *FragmentSpread, or *InlineFragment.
type Selection interface {
	isSelection()
}

// Field selects a single field, optionally aliased, optionally with
// arguments, directives, and a nested selection set (nil for leaf fields).
type Field struct {
	Alias        string
	Name         string
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet SelectionSet
}

func (*Field) isSelection() {}

// ResponseKey is the key under which the field appears in the response:
// the alias when one was written, the field name otherwise.
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// FragmentSpread applies a named fragment: `...Name`. The name is never the
// keyword `on`.
type FragmentSpread struct {
	Name       string
	Directives []*Directive
}

func (*FragmentSpread) isSelection() {}

// InlineFragment applies an anonymous selection set, optionally narrowed by
// a type condition: `... on Name { … }`.
type InlineFragment struct {
	TypeName     string
	Directives   []*Directive
	SelectionSet SelectionSet
}

func (*InlineFragment) isSelection() {}

// Argument is a (name, value) pair on a field or directive. Duplicate names
// are preserved in input order; rejecting them is validation's concern.
type Argument struct {
	Name  string
	Value Value
}

// Directive is an `@name(args)` annotation.
type Directive struct {
	Name      string
	Arguments []*Argument
}

var _ Definition = &Operation{}
var _ Definition = &Fragment{}
var _ Selection = &Field{}
var _ Selection = &FragmentSpread{}
var _ Selection = &InlineFragment{}
