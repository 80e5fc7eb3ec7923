package graphql

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.appointy.com/quill/ast"
)

// Executor walks a parsed operation against a schema, coercing arguments,
// invoking resolvers, and completing results by schema type. Validation
// proper is a separate concern; the executor performs only the
// field-existence and coercion checks it needs to run.
type Executor struct{}

// Execute runs one operation of doc against the schema. operationName
// selects among multiple operations; it may be empty when the document
// contains exactly one. Variables hold the JSON-decoded variable values.
func (e *Executor) Execute(ctx context.Context, schema *Schema, doc *ast.Document, operationName string, variables map[string]interface{}) (interface{}, error) {
	op, fragments, err := selectOperation(doc, operationName)
	if err != nil {
		return nil, err
	}

	var root Type
	switch op.Type {
	case ast.Query:
		root = schema.Query
	case ast.Mutation:
		root = schema.Mutation
	case ast.Subscription:
		root = schema.Subscription
	}
	obj, ok := root.(*Object)
	if !ok || obj == nil {
		return nil, fmt.Errorf("schema does not define a %s root", op.Type)
	}

	vars, err := coerceVariables(op.Variables, variables)
	if err != nil {
		return nil, err
	}

	run := &execution{fragments: fragments, variables: vars}
	return run.selectionSet(ctx, obj, nil, op.SelectionSet)
}

func selectOperation(doc *ast.Document, operationName string) (*ast.Operation, map[string]*ast.Fragment, error) {
	fragments := make(map[string]*ast.Fragment)
	var ops []*ast.Operation
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.Operation:
			ops = append(ops, d)
		case *ast.Fragment:
			if _, ok := fragments[d.Name]; ok {
				return nil, nil, fmt.Errorf("duplicate fragment %q", d.Name)
			}
			fragments[d.Name] = d
		}
	}
	if operationName == "" {
		if len(ops) != 1 {
			return nil, nil, errors.New("must have a single operation")
		}
		return ops[0], fragments, nil
	}
	for _, op := range ops {
		if op.Name == operationName {
			return op, fragments, nil
		}
	}
	return nil, nil, fmt.Errorf("no operation named %q", operationName)
}

// coerceVariables applies defaults from the variable definitions and checks
// non-null requirements. Values pass through as decoded JSON.
func coerceVariables(defs []*ast.VariableDefinition, provided map[string]interface{}) (map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(defs))
	for _, def := range defs {
		if v, ok := provided[def.Name]; ok && v != nil {
			vars[def.Name] = v
			continue
		}
		if def.Default != nil {
			v, err := literalValue(def.Default, nil)
			if err != nil {
				return nil, fmt.Errorf("variable $%s: %w", def.Name, err)
			}
			vars[def.Name] = v
			continue
		}
		if def.Type.NonNullable() {
			return nil, fmt.Errorf("missing required variable $%s", def.Name)
		}
		vars[def.Name] = nil
	}
	return vars, nil
}

type execution struct {
	fragments map[string]*ast.Fragment
	variables map[string]interface{}
}

func (e *execution) selectionSet(ctx context.Context, obj *Object, source interface{}, set ast.SelectionSet) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(set))
	if err := e.collect(ctx, obj, source, set, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *execution) collect(ctx context.Context, obj *Object, source interface{}, set ast.SelectionSet, out map[string]interface{}) error {
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			skip, err := e.skipped(s.Directives)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			v, err := e.field(ctx, obj, source, s)
			if err != nil {
				return fmt.Errorf("%s: %w", s.ResponseKey(), err)
			}
			out[s.ResponseKey()] = v
		case *ast.FragmentSpread:
			skip, err := e.skipped(s.Directives)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			frag, ok := e.fragments[s.Name]
			if !ok {
				return fmt.Errorf("unknown fragment %q", s.Name)
			}
			if frag.TypeName != obj.Meta.Name {
				continue
			}
			if err := e.collect(ctx, obj, source, frag.SelectionSet, out); err != nil {
				return err
			}
		case *ast.InlineFragment:
			skip, err := e.skipped(s.Directives)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			if s.TypeName != "" && s.TypeName != obj.Meta.Name {
				continue
			}
			if err := e.collect(ctx, obj, source, s.SelectionSet, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipped evaluates the @skip and @include execution directives.
func (e *execution) skipped(dirs []*ast.Directive) (bool, error) {
	for _, d := range dirs {
		if d.Name != "skip" && d.Name != "include" {
			continue
		}
		var cond interface{}
		var err error
		for _, a := range d.Arguments {
			if a.Name == "if" {
				cond, err = literalValue(a.Value, e.variables)
			}
		}
		if err != nil {
			return false, err
		}
		b, ok := cond.(bool)
		if !ok {
			return false, fmt.Errorf("@%s requires a Boolean if argument", d.Name)
		}
		if d.Name == "skip" && b {
			return true, nil
		}
		if d.Name == "include" && !b {
			return true, nil
		}
	}
	return false, nil
}

func (e *execution) field(ctx context.Context, obj *Object, source interface{}, f *ast.Field) (interface{}, error) {
	if f.Name == "__typename" {
		return obj.Meta.Name, nil
	}
	meta := obj.Meta.Field(f.Name)
	if meta == nil {
		return nil, fmt.Errorf("unknown field %q on %s", f.Name, obj.Meta.Name)
	}
	resolve, ok := obj.Resolvers[f.Name]
	if !ok {
		return nil, fmt.Errorf("field %q on %s has no resolver", f.Name, obj.Meta.Name)
	}
	args, err := e.arguments(meta, f.Arguments)
	if err != nil {
		return nil, err
	}
	v, err := resolve(ctx, source, args, f.SelectionSet)
	if err != nil {
		return nil, err
	}
	return e.complete(ctx, meta.Type, v, f.SelectionSet)
}

func (e *execution) arguments(meta *FieldMeta, provided []*ast.Argument) (map[string]interface{}, error) {
	byName := make(map[string]ast.Value, len(provided))
	for _, a := range provided {
		if meta.Arg(a.Name) == nil {
			return nil, fmt.Errorf("unknown argument %q", a.Name)
		}
		byName[a.Name] = a.Value
	}
	args := make(map[string]interface{}, len(meta.Arguments))
	for i := range meta.Arguments {
		am := &meta.Arguments[i]
		raw, present := byName[am.Name]
		if !present && am.Default != nil {
			raw, present = am.Default, true
		}
		if !present {
			if _, required := am.Type.(*NonNull); required {
				return nil, fmt.Errorf("missing required argument %q", am.Name)
			}
			continue
		}
		v, err := e.coerce(am.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", am.Name, err)
		}
		args[am.Name] = v
	}
	return args, nil
}

// coerce converts a parsed input value into the runtime value a resolver
// receives, guided by the argument's schema type.
func (e *execution) coerce(t Type, v ast.Value) (interface{}, error) {
	if variable, ok := v.(ast.Variable); ok {
		val, ok := e.variables[variable.Name]
		if !ok {
			return nil, fmt.Errorf("undefined variable $%s", variable.Name)
		}
		return e.coerceRuntime(t, val)
	}
	if _, isNull := v.(ast.Null); isNull {
		if _, required := t.(*NonNull); required {
			return nil, fmt.Errorf("null is not allowed for %s", t)
		}
		return nil, nil
	}
	switch typ := t.(type) {
	case *NonNull:
		return e.coerce(typ.Type, v)
	case *List:
		list, ok := v.(ast.List)
		if !ok {
			// A single value coerces to a one-element list.
			item, err := e.coerce(typ.Type, v)
			if err != nil {
				return nil, err
			}
			return []interface{}{item}, nil
		}
		out := make([]interface{}, len(list.Values))
		for i, item := range list.Values {
			coerced, err := e.coerce(typ.Type, item)
			if err != nil {
				return nil, err
			}
			out[i] = coerced
		}
		return out, nil
	case *Enum:
		enum, ok := v.(ast.Enum)
		if !ok {
			return nil, fmt.Errorf("expected a %s enum value", typ.Meta.Name)
		}
		host, ok := typ.Decode[enum.Name]
		if !ok {
			return nil, fmt.Errorf("%s is not a case of enum %s", enum.Name, typ.Meta.Name)
		}
		return host, nil
	case *Scalar:
		raw, err := literalValue(v, e.variables)
		if err != nil {
			return nil, err
		}
		if typ.Unwrap != nil {
			return typ.Unwrap(raw)
		}
		return raw, nil
	default:
		return literalValue(v, e.variables)
	}
}

// coerceRuntime applies type-directed checks to an already-decoded variable
// value.
func (e *execution) coerceRuntime(t Type, v interface{}) (interface{}, error) {
	if v == nil {
		if _, required := t.(*NonNull); required {
			return nil, fmt.Errorf("null is not allowed for %s", t)
		}
		return nil, nil
	}
	switch typ := t.(type) {
	case *NonNull:
		return e.coerceRuntime(typ.Type, v)
	case *List:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			item, err := e.coerceRuntime(typ.Type, v)
			if err != nil {
				return nil, err
			}
			return []interface{}{item}, nil
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			coerced, err := e.coerceRuntime(typ.Type, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = coerced
		}
		return out, nil
	case *Enum:
		caseName, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a %s enum value", typ.Meta.Name)
		}
		host, ok := typ.Decode[caseName]
		if !ok {
			return nil, fmt.Errorf("%s is not a case of enum %s", caseName, typ.Meta.Name)
		}
		return host, nil
	case *Scalar:
		if typ.Unwrap != nil {
			return typ.Unwrap(v)
		}
		return v, nil
	default:
		return v, nil
	}
}

// complete turns a resolver result into a response value according to the
// field's schema type.
func (e *execution) complete(ctx context.Context, t Type, v interface{}, sel ast.SelectionSet) (interface{}, error) {
	switch typ := t.(type) {
	case *NonNull:
		out, err := e.complete(ctx, typ.Type, v, sel)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, fmt.Errorf("non-null %s resolved to null", typ.Type)
		}
		return out, nil
	case *List:
		if v == nil {
			return nil, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, fmt.Errorf("expected a slice for %s, got %T", typ, v)
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := e.complete(ctx, typ.Type, rv.Index(i).Interface(), sel)
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case *Enum:
		if v == nil {
			return nil, nil
		}
		encoded, err := typ.Resolve(v)
		if err != nil {
			return nil, err
		}
		return encoded.(ast.Enum).Name, nil
	case *Scalar:
		if v == nil {
			return nil, nil
		}
		if typ.Unwrap != nil {
			return typ.Unwrap(v)
		}
		return v, nil
	case *Object:
		if v == nil || isNilPointer(v) {
			return nil, nil
		}
		if len(sel) == 0 {
			return nil, fmt.Errorf("field of object type %s requires a selection set", typ.Meta.Name)
		}
		return e.selectionSet(ctx, typ, v, sel)
	default:
		return nil, fmt.Errorf("cannot complete type %T", t)
	}
}

func isNilPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// literalValue converts a parsed input value into plain Go data with no
// schema guidance: Int to int64, String to string, Boolean to bool, Null to
// nil, Enum to its name, List to []interface{}, Object to
// map[string]interface{}. Variables are looked up in vars.
func literalValue(v ast.Value, vars map[string]interface{}) (interface{}, error) {
	switch val := v.(type) {
	case ast.Variable:
		res, ok := vars[val.Name]
		if !ok {
			return nil, fmt.Errorf("undefined variable $%s", val.Name)
		}
		return res, nil
	case ast.Int:
		return int64(val.Value), nil
	case ast.String:
		return val.Value, nil
	case ast.Boolean:
		return val.Value, nil
	case ast.Null:
		return nil, nil
	case ast.Enum:
		return val.Name, nil
	case ast.List:
		out := make([]interface{}, len(val.Values))
		for i, item := range val.Values {
			conv, err := literalValue(item, vars)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case ast.Object:
		out := make(map[string]interface{}, len(val.Fields))
		for _, f := range val.Fields {
			conv, err := literalValue(f.Value, vars)
			if err != nil {
				return nil, err
			}
			out[f.Name] = conv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown value %T", v)
}
