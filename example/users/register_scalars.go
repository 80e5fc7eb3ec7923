package users

import (
	"fmt"
	"strings"

	"go.appointy.com/quill/graphql"
	"go.appointy.com/quill/schemabuilder"
)

// EmailType is a custom scalar that rejects strings without an @.
var EmailType *graphql.Scalar = schemabuilder.NewScalar("Email", "An email address.", func(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected an Email string, got %T", value)
	}
	if !strings.Contains(s, "@") {
		return nil, fmt.Errorf("%q is not an email address", s)
	}
	return s, nil
})
