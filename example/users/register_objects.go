package users

import (
	"context"

	"go.appointy.com/quill/ast"
	"go.appointy.com/quill/graphql"
	"go.appointy.com/quill/schemabuilder"
)

// UserObject declares the User object type. Every field resolver receives
// the *User the parent selection resolved to.
func UserObject(role *graphql.Enum) *graphql.Object {
	obj := schemabuilder.NewObject("User").Describe("A registered account.")

	obj.FieldFunc("id", &graphql.NonNull{Type: schemabuilder.IDType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return schemabuilder.ID{Value: source.(*User).ID}, nil
		})

	obj.FieldFunc("name", &graphql.NonNull{Type: schemabuilder.StringType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*User).Name, nil
		})

	obj.FieldFunc("email", &graphql.NonNull{Type: EmailType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*User).Email, nil
		})

	obj.FieldFunc("age", schemabuilder.IntType,
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*User).Age, nil
		}).Deprecate("Use birthdate instead.")

	obj.FieldFunc("isActive", &graphql.NonNull{Type: schemabuilder.BooleanType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*User).IsActive, nil
		})

	obj.FieldFunc("role", &graphql.NonNull{Type: role},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*User).Role, nil
		})

	obj.FieldFunc("createdAt", &graphql.NonNull{Type: schemabuilder.TimestampType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			u := source.(*User)
			return schemabuilder.Timestamp{Seconds: u.CreatedAt.Unix(), Nanos: int32(u.CreatedAt.Nanosecond())}, nil
		}).Describe("When the account was created.")

	obj.FieldFunc("apiKeys", &graphql.List{Type: &graphql.NonNull{Type: schemabuilder.StringType}},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*User).APIKeys, nil
		})

	return obj.Build()
}
