package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go.appointy.com/quill"
	"go.appointy.com/quill/example/users"
)

func post(t *testing.T, handler http.Handler, body string) map[string]interface{} {
	t.Helper()
	req, err := http.NewRequest("POST", "/graphql", strings.NewReader(body))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func data(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Nil(t, resp["errors"], "response errors: %v", resp["errors"])
	return resp["data"].(map[string]interface{})
}

func TestQueries(t *testing.T) {
	handler := quill.HTTPHandler(users.Schema(users.NewServer()))

	resp := data(t, post(t, handler, `{"query": "{ me { id name email role createdAt } }"}`))
	me := resp["me"].(map[string]interface{})
	require.Equal(t, "usr_1", me["id"])
	require.Equal(t, "Ada", me["name"])
	require.Equal(t, "ada@example.com", me["email"])
	require.Equal(t, "ADMIN", me["role"])
	require.Equal(t, "2024-03-01T09:00:00Z", me["createdAt"])

	resp = data(t, post(t, handler, `{"query": "query U($id: ID!) { user(id: $id) { name isActive } }", "variables": {"id": "usr_2"}}`))
	user := resp["user"].(map[string]interface{})
	require.Equal(t, "Grace", user["name"])
	require.Equal(t, false, user["isActive"])

	resp = data(t, post(t, handler, `{"query": "{ allUsers { name } }"}`))
	require.Len(t, resp["allUsers"], 2)
}

func TestUsersByRoleDefaultsToMember(t *testing.T) {
	handler := quill.HTTPHandler(users.Schema(users.NewServer()))

	resp := data(t, post(t, handler, `{"query": "{ usersByRole { name } }"}`))
	members := resp["usersByRole"].([]interface{})
	require.Len(t, members, 1)
	require.Equal(t, "Grace", members[0].(map[string]interface{})["name"])

	resp = data(t, post(t, handler, `{"query": "{ usersByRole(role: ADMIN) { name } }"}`))
	admins := resp["usersByRole"].([]interface{})
	require.Len(t, admins, 1)
	require.Equal(t, "Ada", admins[0].(map[string]interface{})["name"])
}

func TestCreateUser(t *testing.T) {
	handler := quill.HTTPHandler(users.Schema(users.NewServer()))

	resp := data(t, post(t, handler, `{"query": "mutation C($name: String!, $email: Email!) { createUser(name: $name, email: $email, role: GUEST) { id name email role isActive } }", "variables": {"name": "Linus", "email": "linus@example.com"}}`))
	created := resp["createUser"].(map[string]interface{})
	require.Equal(t, "Linus", created["name"])
	require.Equal(t, "linus@example.com", created["email"])
	require.Equal(t, "GUEST", created["role"])
	require.Equal(t, true, created["isActive"])
	require.True(t, strings.HasPrefix(created["id"].(string), "usr"), "id: %v", created["id"])
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	handler := quill.HTTPHandler(users.Schema(users.NewServer()))

	resp := post(t, handler, `{"query": "mutation { createUser(name: \"X\", email: \"not-an-email\") { id } }"}`)
	require.NotNil(t, resp["errors"])
}

func TestIssueApiKey(t *testing.T) {
	handler := quill.HTTPHandler(users.Schema(users.NewServer()))

	resp := data(t, post(t, handler, `{"query": "mutation { issueApiKey(userId: \"usr_1\") }"}`))
	key := resp["issueApiKey"].(string)
	require.NotEmpty(t, key)

	listed := data(t, post(t, handler, `{"query": "{ me { apiKeys } }"}`))
	keys := listed["me"].(map[string]interface{})["apiKeys"].([]interface{})
	require.Equal(t, []interface{}{key}, keys)
}

func TestDeactivateUser(t *testing.T) {
	handler := quill.HTTPHandler(users.Schema(users.NewServer()))

	resp := data(t, post(t, handler, `{"query": "mutation { deactivateUser(id: \"usr_1\") }"}`))
	require.Equal(t, true, resp["deactivateUser"])

	after := data(t, post(t, handler, `{"query": "{ me { isActive } }"}`))
	require.Equal(t, false, after["me"].(map[string]interface{})["isActive"])
}
