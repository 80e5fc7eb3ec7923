package users

import (
	"go.appointy.com/quill/graphql"
	"go.appointy.com/quill/schemabuilder"
)

// RoleEnum declares the Role enum (ADMIN/MEMBER/GUEST) and closes it with
// the encoding from the Role host values to their cases.
func RoleEnum() *graphql.Enum {
	return schemabuilder.NewEnum("Role").
		Describe("Role for user access control.").
		With(schemabuilder.Case("ADMIN").Describe("Full access.")).
		With(schemabuilder.Case("MEMBER").Describe("Standard access.")).
		With(schemabuilder.Case("GUEST").Deprecate("Guest accounts are being phased out.")).
		Type(map[interface{}]string{
			RoleAdmin:  "ADMIN",
			RoleMember: "MEMBER",
			RoleGuest:  "GUEST",
		})
}
