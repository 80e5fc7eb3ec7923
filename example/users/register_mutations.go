package users

import (
	"context"
	"time"

	"github.com/appointy/idgen"
	"github.com/google/uuid"

	"go.appointy.com/quill/ast"
	"go.appointy.com/quill/graphql"
	"go.appointy.com/quill/schemabuilder"
)

// Mutation declares the mutation root.
func Mutation(s *Server, user *graphql.Object, role *graphql.Enum) *graphql.Object {
	obj := schemabuilder.NewObject("Mutation")

	obj.FieldFunc("createUser", &graphql.NonNull{Type: user},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			in := args.(map[string]interface{})
			u := &User{
				ID:        idgen.New("usr"),
				Name:      in["name"].(string),
				Email:     in["email"].(string),
				IsActive:  true,
				Role:      RoleMember,
				CreatedAt: time.Now().UTC(),
			}
			if r, ok := in["role"]; ok && r != nil {
				u.Role = r.(Role)
			}
			s.users = append(s.users, u)
			return u, nil
		}).
		Arg("name", &graphql.NonNull{Type: schemabuilder.StringType}).
		Arg("email", &graphql.NonNull{Type: EmailType}).
		Arg("role", role)

	obj.FieldFunc("issueApiKey", &graphql.NonNull{Type: schemabuilder.StringType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			id := args.(map[string]interface{})["userId"].(schemabuilder.ID)
			u, err := s.user(id.Value)
			if err != nil {
				return nil, err
			}
			key := uuid.NewString()
			u.APIKeys = append(u.APIKeys, key)
			return key, nil
		}).
		Describe("Mints an API key for the user and returns it.").
		Arg("userId", &graphql.NonNull{Type: schemabuilder.IDType})

	obj.FieldFunc("deactivateUser", &graphql.NonNull{Type: schemabuilder.BooleanType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			id := args.(map[string]interface{})["id"].(schemabuilder.ID)
			u, err := s.user(id.Value)
			if err != nil {
				return nil, err
			}
			changed := u.IsActive
			u.IsActive = false
			return changed, nil
		}).
		Arg("id", &graphql.NonNull{Type: schemabuilder.IDType})

	return obj.Build()
}
