// Package graphql defines the schema description model the parser's output
// is matched against: the type sum used in field and argument signatures,
// the metadata records that drive introspection, the resolver contract, and
// a small executor that walks a parsed operation against built objects.
//
// Metadata is plain data, built once at program start and treated as
// immutable afterwards; it is freely shareable across goroutines. Resolvers
// live in a table parallel to the field metadata so the metadata stays
// cheaply cloneable while resolvers keep arbitrary closure captures.
package graphql

import (
	"context"
	"fmt"

	"go.appointy.com/quill/ast"
)

// Type represents a GraphQL schema type: a Scalar, an Enum, an Object, or a
// List or NonNull wrapping of one.
type Type interface {
	String() string

	// isType() is a no-op used to tag the known values of Type, to prevent
	// arbitrary interface{} from implementing Type.
	isType()
}

// Scalar is a leaf value. A custom Unwrap can be attached so resolved values
// get a custom unwrapping before serialization (nil means identity).
type Scalar struct {
	Name        string
	Description string
	Unwrap      func(interface{}) (interface{}, error)
}

func (s *Scalar) isType() {}

func (s *Scalar) String() string {
	return s.Name
}

// Enum is a leaf value restricted to a declared set of cases. Encode maps a
// host runtime value to a case name; Decode is its inverse, used when an
// enum value arrives as an argument. The wire representation of an enum is
// its case name.
type Enum struct {
	Meta   EnumMeta
	Encode map[interface{}]string
	Decode map[string]interface{}
}

func (e *Enum) isType() {}

func (e *Enum) String() string {
	return e.Meta.Name
}

// Resolve encodes a host value as its enum case, the value form a resolver's
// result takes on the wire.
func (e *Enum) Resolve(v interface{}) (ast.Value, error) {
	caseName, ok := e.Encode[v]
	if !ok {
		return nil, fmt.Errorf("%v is not a value of enum %s", v, e.Meta.Name)
	}
	return ast.Enum{Name: caseName}, nil
}

// Object is a value with several fields. Meta describes the fields;
// Resolvers computes them, keyed by field name.
type Object struct {
	Meta      ObjectMeta
	Resolvers map[string]Resolver
}

func (o *Object) isType() {}

func (o *Object) String() string {
	return o.Meta.Name
}

// List is a collection of other values.
type List struct {
	Type Type
}

func (l *List) isType() {}

func (l *List) String() string {
	return fmt.Sprintf("[%s]", l.Type)
}

// NonNull is a non-nullable other value.
type NonNull struct {
	Type Type
}

func (n *NonNull) isType() {}

func (n *NonNull) String() string {
	return fmt.Sprintf("%s!", n.Type)
}

// Verify *Scalar, *Enum, *Object, *List, and *NonNull implement Type.
var _ Type = &Scalar{}
var _ Type = &Enum{}
var _ Type = &Object{}
var _ Type = &List{}
var _ Type = &NonNull{}

// ObjectMeta describes an object type for introspection.
type ObjectMeta struct {
	Name        string
	Description string
	Fields      []FieldMeta
}

// Field returns the metadata for the named field, or nil.
func (m *ObjectMeta) Field(name string) *FieldMeta {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// FieldMeta describes one field of an object type.
type FieldMeta struct {
	Name              string
	Description       string
	DeprecationReason string
	Arguments         []ArgMeta
	Type              Type
}

// Arg returns the metadata for the named argument, or nil.
func (f *FieldMeta) Arg(name string) *ArgMeta {
	for i := range f.Arguments {
		if f.Arguments[i].Name == name {
			return &f.Arguments[i]
		}
	}
	return nil
}

// ArgMeta describes one argument of a field. Default, when non-nil, is the
// parsed input value applied when the caller omits the argument.
type ArgMeta struct {
	Name        string
	Description string
	Type        Type
	Default     ast.Value
}

// EnumMeta describes an enum type for introspection.
type EnumMeta struct {
	Name        string
	Description string
	Cases       []EnumCaseMeta
}

// Case returns the metadata for the named case, or nil.
func (m *EnumMeta) Case(name string) *EnumCaseMeta {
	for i := range m.Cases {
		if m.Cases[i].Name == name {
			return &m.Cases[i]
		}
	}
	return nil
}

// EnumCaseMeta describes one case of an enum type.
type EnumCaseMeta struct {
	Name              string
	Description       string
	DeprecationReason string
}

// A Resolver calculates the value of a field of an object. It receives the
// parent value, the coerced argument map, and the field's selection set
// (nil for leaf fields).
type Resolver func(ctx context.Context, source, args interface{}, selectionSet ast.SelectionSet) (interface{}, error)

// Schema holds the root types used to resolve operations.
type Schema struct {
	Query        Type
	Mutation     Type
	Subscription Type
}
