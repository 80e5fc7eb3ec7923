package users

import (
	"context"

	"go.appointy.com/quill/ast"
	"go.appointy.com/quill/graphql"
	"go.appointy.com/quill/schemabuilder"
)

// Query declares the query root.
func Query(s *Server, user *graphql.Object, role *graphql.Enum) *graphql.Object {
	obj := schemabuilder.NewObject("Query")

	obj.FieldFunc("me", user,
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			if len(s.users) == 0 {
				return nil, nil
			}
			return s.users[0], nil
		})

	obj.FieldFunc("user", user,
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			id := args.(map[string]interface{})["id"].(schemabuilder.ID)
			return s.user(id.Value)
		}).
		Arg("id", &graphql.NonNull{Type: schemabuilder.IDType}).
		DescribeArg("id", "ID of the user to fetch.")

	obj.FieldFunc("allUsers", &graphql.NonNull{Type: &graphql.List{Type: &graphql.NonNull{Type: user}}},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return s.users, nil
		})

	obj.FieldFunc("usersByRole", &graphql.NonNull{Type: &graphql.List{Type: &graphql.NonNull{Type: user}}},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			want := args.(map[string]interface{})["role"].(Role)
			out := []*User{}
			for _, u := range s.users {
				if u.Role == want {
					out = append(out, u)
				}
			}
			return out, nil
		}).
		ArgDefault("role", &graphql.NonNull{Type: role}, ast.Enum{Name: "MEMBER"})

	return obj.Build()
}
