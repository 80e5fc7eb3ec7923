package users

import "go.appointy.com/quill/graphql"

// Schema assembles the example schema: the Role enum, the User object, and
// the query and mutation roots over the store.
func Schema(s *Server) *graphql.Schema {
	role := RoleEnum()
	user := UserObject(role)
	return &graphql.Schema{
		Query:    Query(s, user, role),
		Mutation: Mutation(s, user, role),
	}
}
