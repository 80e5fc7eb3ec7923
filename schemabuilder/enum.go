package schemabuilder

import (
	"fmt"

	"go.appointy.com/quill/graphql"
)

// Enum accumulates the cases of an enum type. Create one with NewEnum,
// declare cases with WithCase or With, and close it with Type by supplying
// the encoding from host runtime values to case names.
type Enum struct {
	name        string
	description string
	cases       []graphql.EnumCaseMeta
}

// NewEnum starts an enum type with the given name.
func NewEnum(name string) *Enum {
	mustBeName("enum", name)
	return &Enum{name: name}
}

// Describe sets the enum's description.
func (e *Enum) Describe(description string) *Enum {
	e.description = description
	return e
}

// WithCase declares a case by name.
func (e *Enum) WithCase(name string) *Enum {
	return e.With(Case(name))
}

// With attaches a configured case. Case names are unique within one enum;
// declaring a duplicate is a programming error and panics.
func (e *Enum) With(c *EnumCase) *Enum {
	for i := range e.cases {
		if e.cases[i].Name == c.meta.Name {
			panic(fmt.Sprintf("duplicate case %q on enum %s", c.meta.Name, e.name))
		}
	}
	e.cases = append(e.cases, c.meta)
	return e
}

// Type closes the enum. The encoding maps each host runtime value to the
// name of a declared case; naming an undeclared case panics. The resulting
// type resolves a host value to its case name, the wire representation of
// an enum.
func (e *Enum) Type(encoding map[interface{}]string) *graphql.Enum {
	out := &graphql.Enum{
		Meta: graphql.EnumMeta{
			Name:        e.name,
			Description: e.description,
			Cases:       append([]graphql.EnumCaseMeta(nil), e.cases...),
		},
		Encode: make(map[interface{}]string, len(encoding)),
		Decode: make(map[string]interface{}, len(encoding)),
	}
	for host, caseName := range encoding {
		if out.Meta.Case(caseName) == nil {
			panic(fmt.Sprintf("enum %s has no case %q", e.name, caseName))
		}
		out.Encode[host] = caseName
		out.Decode[caseName] = host
	}
	return out
}

// EnumCase configures one enum case before it is attached with With.
type EnumCase struct {
	meta graphql.EnumCaseMeta
}

// Case starts a case with the given name.
func Case(name string) *EnumCase {
	mustBeName("enum case", name)
	return &EnumCase{meta: graphql.EnumCaseMeta{Name: name}}
}

// Describe sets the case's description.
func (c *EnumCase) Describe(description string) *EnumCase {
	c.meta.Description = description
	return c
}

// Deprecate marks the case deprecated with the given reason.
func (c *EnumCase) Deprecate(reason string) *EnumCase {
	c.meta.DeprecationReason = reason
	return c
}
