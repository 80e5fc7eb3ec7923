package graphql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go.appointy.com/quill/ast"
	"go.appointy.com/quill/graphql"
	"go.appointy.com/quill/parser"
	"go.appointy.com/quill/schemabuilder"
)

type character struct {
	Name    string
	Kind    string
	Friends []*character
	Secret  string
}

var (
	r2    = &character{Name: "R2-D2", Kind: "droid"}
	luke  = &character{Name: "Luke", Kind: "human", Friends: []*character{r2}, Secret: "father"}
	store = []*character{luke, r2}
)

func testSchema(t *testing.T) *graphql.Schema {
	t.Helper()

	kind := schemabuilder.NewEnum("Kind").
		WithCase("HUMAN").
		WithCase("DROID").
		Type(map[interface{}]string{"human": "HUMAN", "droid": "DROID"})

	char := schemabuilder.NewObject("Character")
	char.FieldFunc("name", &graphql.NonNull{Type: schemabuilder.StringType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*character).Name, nil
		})
	char.FieldFunc("kind", &graphql.NonNull{Type: kind},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return source.(*character).Kind, nil
		})
	char.FieldFunc("secret", &graphql.NonNull{Type: schemabuilder.StringType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			if s := source.(*character).Secret; s != "" {
				return s, nil
			}
			return nil, nil
		})
	charObj := char.Build()

	query := schemabuilder.NewObject("Query")
	query.FieldFunc("mirror", &graphql.NonNull{Type: schemabuilder.IntType},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return -args.(map[string]interface{})["value"].(int32), nil
		}).
		Arg("value", &graphql.NonNull{Type: schemabuilder.IntType})
	query.FieldFunc("hero", charObj,
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return luke, nil
		})
	query.FieldFunc("characters", &graphql.NonNull{Type: &graphql.List{Type: &graphql.NonNull{Type: charObj}}},
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			kinds := args.(map[string]interface{})
			if want, ok := kinds["kind"]; ok && want != nil {
				out := []*character{}
				for _, ch := range store {
					if ch.Kind == want.(string) {
						out = append(out, ch)
					}
				}
				return out, nil
			}
			return store, nil
		}).
		Arg("kind", kind)
	query.FieldFunc("nothing", charObj,
		func(ctx context.Context, source, args interface{}, sel ast.SelectionSet) (interface{}, error) {
			return nil, nil
		})

	return &graphql.Schema{Query: query.Build()}
}

func execute(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}) (interface{}, error) {
	t.Helper()
	doc, err := parser.ParseDocument(query)
	require.NoError(t, err, "query: %s", query)
	executor := &graphql.Executor{}
	return executor.Execute(context.Background(), schema, doc, "", vars)
}

func TestExecuteSimpleField(t *testing.T) {
	out, err := execute(t, testSchema(t), "query { mirror(value: 1) }", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"mirror": int32(-1)}, out)
}

func TestExecuteWithVariables(t *testing.T) {
	out, err := execute(t, testSchema(t), "query M($value: Int!) { mirror(value: $value) }",
		map[string]interface{}{"value": float64(4)})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"mirror": int32(-4)}, out)

	_, err = execute(t, testSchema(t), "query M($value: Int!) { mirror(value: $value) }", nil)
	require.EqualError(t, err, "missing required variable $value")
}

func TestExecuteVariableDefault(t *testing.T) {
	out, err := execute(t, testSchema(t), "query M($value: Int! = 9) { mirror(value: $value) }", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"mirror": int32(-9)}, out)
}

func TestExecuteNestedObjects(t *testing.T) {
	out, err := execute(t, testSchema(t), "{ hero { name kind } }", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"hero": map[string]interface{}{"name": "Luke", "kind": "HUMAN"},
	}, out)
}

func TestExecuteEnumArgument(t *testing.T) {
	out, err := execute(t, testSchema(t), "{ characters(kind: DROID) { name } }", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"characters": []interface{}{map[string]interface{}{"name": "R2-D2"}},
	}, out)

	_, err = execute(t, testSchema(t), "{ characters(kind: WOOKIEE) { name } }", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a case of enum Kind")
}

func TestExecuteAliases(t *testing.T) {
	out, err := execute(t, testSchema(t), "{ a: mirror(value: 1) b: mirror(value: 2) }", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"a": int32(-1), "b": int32(-2)}, out)
}

func TestExecuteFragments(t *testing.T) {
	out, err := execute(t, testSchema(t), `
		{ hero { ...Names ... on Character { kind } ... { __typename } } }
		fragment Names on Character { name }
	`, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"hero": map[string]interface{}{
			"name":       "Luke",
			"kind":       "HUMAN",
			"__typename": "Character",
		},
	}, out)
}

func TestExecuteFragmentOnOtherTypeIsSkipped(t *testing.T) {
	out, err := execute(t, testSchema(t), `
		{ hero { name ...PostFields } }
		fragment PostFields on Post { title }
	`, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"hero": map[string]interface{}{"name": "Luke"},
	}, out)
}

func TestExecuteSkipInclude(t *testing.T) {
	out, err := execute(t, testSchema(t), `query Q($yes: Boolean!) {
		hero {
			name @skip(if: $yes)
			kind @include(if: $yes)
		}
	}`, map[string]interface{}{"yes": true})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"hero": map[string]interface{}{"kind": "HUMAN"},
	}, out)
}

func TestExecuteNullObjectField(t *testing.T) {
	out, err := execute(t, testSchema(t), "{ nothing { name } }", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"nothing": nil}, out)
}

func TestExecuteNonNullViolation(t *testing.T) {
	// R2-D2 has no secret, so the non-null field resolves to null.
	_, err := execute(t, testSchema(t), "{ characters { secret } }", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "resolved to null")
}

func TestExecuteUnknownField(t *testing.T) {
	_, err := execute(t, testSchema(t), "{ warp }", nil)
	require.EqualError(t, err, `warp: unknown field "warp" on Query`)
}

func TestExecuteOperationSelection(t *testing.T) {
	doc, err := parser.ParseDocument("query A { mirror(value: 1) } query B { mirror(value: 2) }")
	require.NoError(t, err)
	executor := &graphql.Executor{}

	_, err = executor.Execute(context.Background(), testSchema(t), doc, "", nil)
	require.EqualError(t, err, "must have a single operation")

	out, err := executor.Execute(context.Background(), testSchema(t), doc, "B", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"mirror": int32(-2)}, out)

	_, err = executor.Execute(context.Background(), testSchema(t), doc, "C", nil)
	require.EqualError(t, err, `no operation named "C"`)
}

func TestExecuteMissingMutationRoot(t *testing.T) {
	_, err := execute(t, testSchema(t), "mutation { create }", nil)
	require.EqualError(t, err, "schema does not define a mutation root")
}
