package ast

import "fmt"

// TypeRef is a reference to a GraphQL type as written in a variable
// definition: a named type or a list, either of which may carry a trailing
// `!`. Nesting is unbounded.
type TypeRef interface {
	isTypeRef()

	// NonNullable reports whether the reference carries a trailing `!`.
	NonNullable() bool

	String() string
}

// NamedType references a type by name, e.g. `ID` or `ID!`.
type NamedType struct {
	Name    string
	NonNull bool
}

func (NamedType) isTypeRef() {}

func (t NamedType) NonNullable() bool { return t.NonNull }

func (t NamedType) String() string {
	if t.NonNull {
		return t.Name + "!"
	}
	return t.Name
}

// ListType references a list of some element type, e.g. `[User!]!`. The
// element is any TypeRef.
type ListType struct {
	Elem    TypeRef
	NonNull bool
}

func (ListType) isTypeRef() {}

func (t ListType) NonNullable() bool { return t.NonNull }

func (t ListType) String() string {
	if t.NonNull {
		return fmt.Sprintf("[%s]!", t.Elem)
	}
	return fmt.Sprintf("[%s]", t.Elem)
}

var _ TypeRef = NamedType{}
var _ TypeRef = ListType{}
