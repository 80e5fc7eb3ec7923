// Package schemabuilder provides the fluent constructors used at program
// startup to describe server-side GraphQL types: object types with per-field
// resolver closures, enum types with a host-value encoder, and the scalar
// resolution contract. Builders are plain values — there is no global
// registry — and the types they produce are immutable once built.
package schemabuilder

import (
	"fmt"

	"go.appointy.com/quill/ast"
	"go.appointy.com/quill/graphql"
)

// Object accumulates the fields of an object type. Create one with
// NewObject, add fields with FieldFunc, and call Build to produce the
// finished *graphql.Object.
type Object struct {
	name        string
	description string
	fields      []graphql.FieldMeta
	resolvers   map[string]graphql.Resolver
}

// NewObject starts an object type with the given name.
func NewObject(name string) *Object {
	mustBeName("object", name)
	return &Object{
		name:      name,
		resolvers: map[string]graphql.Resolver{},
	}
}

// Describe sets the object's description.
func (o *Object) Describe(description string) *Object {
	o.description = description
	return o
}

// FieldFunc exposes a field on the object and registers its resolver. The
// returned Field configures the field's description, deprecation, and
// arguments. Field names are unique within one object; declaring a
// duplicate is a programming error and panics.
func (o *Object) FieldFunc(name string, typ graphql.Type, resolve graphql.Resolver) *Field {
	mustBeName("field", name)
	if _, ok := o.resolvers[name]; ok {
		panic(fmt.Sprintf("duplicate field %q on object %s", name, o.name))
	}
	o.fields = append(o.fields, graphql.FieldMeta{Name: name, Type: typ})
	o.resolvers[name] = resolve
	return &Field{object: o, index: len(o.fields) - 1}
}

// Build finalizes the object type. The metadata snapshot and the resolver
// table share no state with the builder afterwards.
func (o *Object) Build() *graphql.Object {
	fields := make([]graphql.FieldMeta, len(o.fields))
	copy(fields, o.fields)
	for i := range fields {
		fields[i].Arguments = append([]graphql.ArgMeta(nil), fields[i].Arguments...)
	}
	resolvers := make(map[string]graphql.Resolver, len(o.resolvers))
	for name, r := range o.resolvers {
		resolvers[name] = r
	}
	return &graphql.Object{
		Meta: graphql.ObjectMeta{
			Name:        o.name,
			Description: o.description,
			Fields:      fields,
		},
		Resolvers: resolvers,
	}
}

// Field configures one declared field. Its methods return the Field so
// calls chain; earlier metadata is preserved by each call.
type Field struct {
	object *Object
	index  int
}

func (f *Field) meta() *graphql.FieldMeta {
	return &f.object.fields[f.index]
}

// Describe sets the field's description.
func (f *Field) Describe(description string) *Field {
	f.meta().Description = description
	return f
}

// Deprecate marks the field deprecated with the given reason.
func (f *Field) Deprecate(reason string) *Field {
	f.meta().DeprecationReason = reason
	return f
}

// Arg declares an argument on the field.
func (f *Field) Arg(name string, typ graphql.Type) *Field {
	return f.addArg(name, typ, nil)
}

// ArgDefault declares an argument with a default input value applied when
// the caller omits the argument.
func (f *Field) ArgDefault(name string, typ graphql.Type, def ast.Value) *Field {
	return f.addArg(name, typ, def)
}

// DescribeArg sets the description of a previously declared argument.
func (f *Field) DescribeArg(name, description string) *Field {
	m := f.meta()
	for i := range m.Arguments {
		if m.Arguments[i].Name == name {
			m.Arguments[i].Description = description
			return f
		}
	}
	panic(fmt.Sprintf("no argument %q on field %s.%s", name, f.object.name, m.Name))
}

func (f *Field) addArg(name string, typ graphql.Type, def ast.Value) *Field {
	mustBeName("argument", name)
	m := f.meta()
	for i := range m.Arguments {
		if m.Arguments[i].Name == name {
			panic(fmt.Sprintf("duplicate argument %q on field %s.%s", name, f.object.name, m.Name))
		}
	}
	m.Arguments = append(m.Arguments, graphql.ArgMeta{Name: name, Type: typ, Default: def})
	return f
}
