// Package quill is a GraphQL query-language toolkit: a combinator-based
// executable-document parser, explicit schema builders, and an executor
// that walks parsed operations against built objects. This file implements
// the HTTP execution envelope over those pieces.
package quill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.appointy.com/quill/ast"
	"go.appointy.com/quill/graphql"
	"go.appointy.com/quill/parser"
	"go.appointy.com/quill/qerrors"
)

// HandlerFunc executes a parsed request. Middlewares wrap it.
type HandlerFunc func(ctx context.Context, doc *ast.Document, operationName string, variables map[string]interface{}) (interface{}, error)

// MiddlewareFunc decorates request execution.
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	Middlewares []MiddlewareFunc
}

// WithMiddlewares attaches execution middlewares to the handler, applied in
// the order given.
func WithMiddlewares(mw ...MiddlewareFunc) HandlerOption {
	return func(o *handlerOptions) {
		o.Middlewares = append(o.Middlewares, mw...)
	}
}

// HTTPHandler implements the handler required for executing graphql queries
// and mutations. Requests are POSTs carrying a `{"query": …, "variables": …}`
// JSON body; responses carry `{"data": …, "errors": …}`.
func HTTPHandler(schema *graphql.Schema, opts ...HandlerOption) http.Handler {
	h := &httpHandler{
		schema:   schema,
		executor: &graphql.Executor{},
	}

	o := handlerOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	prev := h.execute
	for i := range o.Middlewares {
		prev = o.Middlewares[len(o.Middlewares)-1-i](prev)
	}
	h.exec = prev

	return h
}

type httpHandler struct {
	schema   *graphql.Schema
	executor *graphql.Executor

	exec HandlerFunc
}

type httpPostBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type httpResponse struct {
	Data   interface{}      `json:"data"`
	Errors []*qerrors.Error `json:"errors"`
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// writeResponse is a closure that formats execution results or errors
	// as JSON, following the envelope used throughout the codebase.
	writeResponse := func(value interface{}, err error) {
		response := httpResponse{}
		if err != nil {
			response.Errors = []*qerrors.Error{qerrors.ConvertError(err)}
		} else {
			response.Data = value
		}

		responseJSON, err := json.Marshal(response)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		_, _ = w.Write(responseJSON)
	}

	if r.Method != http.MethodPost {
		writeResponse(nil, errors.New("request must be a POST"))
		return
	}

	if r.Body == nil {
		writeResponse(nil, errors.New("request must include a query"))
		return
	}

	var params httpPostBody
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeResponse(nil, err)
		return
	}
	if params.Query == "" {
		writeResponse(nil, errors.New("request must include a query"))
		return
	}

	doc, err := parser.ParseDocument(params.Query)
	if err != nil {
		writeResponse(nil, err)
		return
	}

	ctx := addVariables(r.Context(), params.Variables)

	output, err := h.exec(ctx, doc, params.OperationName, params.Variables)
	writeResponse(output, err)
}

func (h *httpHandler) execute(ctx context.Context, doc *ast.Document, operationName string, variables map[string]interface{}) (interface{}, error) {
	return h.executor.Execute(ctx, h.schema, doc, operationName, variables)
}

type graphqlVariableKeyType int

const graphqlVariableKey graphqlVariableKeyType = 0

// ExtractVariables returns the variables received as part of the graphql
// request. This is intended to be used from within middlewares.
func ExtractVariables(ctx context.Context) map[string]interface{} {
	if v := ctx.Value(graphqlVariableKey); v != nil {
		return v.(map[string]interface{})
	}

	return nil
}

func addVariables(ctx context.Context, v map[string]interface{}) context.Context {
	return context.WithValue(ctx, graphqlVariableKey, v)
}
