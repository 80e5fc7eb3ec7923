package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.appointy.com/quill/ast"
	"go.appointy.com/quill/parser"
)

// Rendering a parsed document and parsing the rendered text must yield the
// same tree.
func TestRenderRoundTrip(t *testing.T) {
	for _, query := range oracleCorpus {
		doc, err := parser.ParseDocument(query)
		require.NoError(t, err, "query: %s", query)

		rendered := ast.Render(doc)
		reparsed, err := parser.ParseDocument(rendered)
		require.NoError(t, err, "rendered: %s", rendered)
		require.Equal(t, doc, reparsed, "rendered: %s", rendered)
	}
}

func TestRenderValue(t *testing.T) {
	for input, want := range map[string]string{
		`{a: 1, b: [true, null], c: "x\ny", d: $v, e: CASE}`: `{a: 1 b: [true null] c: "x\ny" d: $v e: CASE}`,
		`[-5]`: `[-5]`,
	} {
		v, err := parser.ParseValue(input)
		require.NoError(t, err)
		require.Equal(t, want, ast.RenderValue(v))
	}
}
