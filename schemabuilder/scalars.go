package schemabuilder

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/golang/protobuf/ptypes/duration"
	"github.com/golang/protobuf/ptypes/timestamp"

	"go.appointy.com/quill/graphql"
)

// UnmarshalFunc converts an input value — a parsed literal or a decoded
// JSON variable — into the host value a resolver receives.
type UnmarshalFunc func(value interface{}) (interface{}, error)

// NewScalar builds a custom scalar type with the given unwrapper.
func NewScalar(name, description string, uf UnmarshalFunc) *graphql.Scalar {
	mustBeName("scalar", name)
	return &graphql.Scalar{Name: name, Description: description, Unwrap: uf}
}

// Built-in scalar types.
var (
	IntType = &graphql.Scalar{Name: "Int", Unwrap: unwrapInt}

	StringType = &graphql.Scalar{Name: "String", Unwrap: unwrapString}

	BooleanType = &graphql.Scalar{Name: "Boolean", Unwrap: unwrapBoolean}

	IDType = &graphql.Scalar{Name: "ID", Unwrap: unwrapID}
)

// unwrapInt accepts integer input from parsed literals (int64) and JSON
// variables (float64) and enforces the 32-bit range.
func unwrapInt(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int32:
		return v, nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%d does not fit in 32 bits", v)
		}
		return int32(v), nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%v is not a 32-bit integer", v)
		}
		return int32(v), nil
	default:
		return nil, fmt.Errorf("expected an Int, got %T", value)
	}
}

func unwrapString(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected a String, got %T", value)
	}
	return s, nil
}

func unwrapBoolean(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("expected a Boolean, got %T", value)
	}
	return b, nil
}

func unwrapID(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return ID{Value: v}, nil
	case ID:
		return v, nil
	case int64:
		return ID{Value: strconv.FormatInt(v, 10)}, nil
	default:
		return nil, errors.New("expected an ID")
	}
}

// ID is the graphql ID scalar.
type ID struct {
	Value string
}

// MarshalJSON implements JSON Marshalling used to generate the output
func (id ID) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, id.Value), nil
}

// Timestamp handles the time
type Timestamp timestamp.Timestamp

// MarshalJSON implements JSON Marshalling used to generate the output
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, time.Unix(t.Seconds, int64(t.Nanos)).UTC().Format(time.RFC3339)), nil
}

// TimestampType parses RFC 3339 input into a Timestamp.
var TimestampType = &graphql.Scalar{Name: "DateTime", Unwrap: func(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if t, ok := value.(Timestamp); ok {
		return t, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, errors.New("expected an RFC 3339 timestamp string")
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return Timestamp{Seconds: parsed.Unix(), Nanos: int32(parsed.Nanosecond())}, nil
}}

// Duration handles the duration
type Duration duration.Duration

// MarshalJSON implements JSON Marshalling used to generate the output
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(d.Seconds))), nil
}

// DurationType parses whole seconds into a Duration.
var DurationType = &graphql.Scalar{Name: "Duration", Unwrap: func(value interface{}) (interface{}, error) {
	if d, ok := value.(Duration); ok {
		return d, nil
	}
	v, err := unwrapInt(value)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return Duration{Seconds: int64(v.(int32))}, nil
}}

// Bytes handles binary payloads, base64-encoded on the wire.
type Bytes struct {
	Value []byte
}

// MarshalJSON implements JSON Marshalling used to generate the output
func (b Bytes) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// BytesType decodes base64 input into Bytes.
var BytesType = &graphql.Scalar{Name: "Bytes", Unwrap: func(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if b, ok := value.(Bytes); ok {
		return b, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, errors.New("expected a base64 string")
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Bytes{Value: decoded}, nil
}}

// Map handles opaque map payloads, carried as base64 on the wire.
type Map struct {
	Value string
}

// MarshalJSON implements JSON Marshalling used to generate the output
func (m Map) MarshalJSON() ([]byte, error) {
	v := base64.StdEncoding.EncodeToString([]byte(m.Value))
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return d, nil
}
