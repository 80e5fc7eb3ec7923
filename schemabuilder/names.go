package schemabuilder

import (
	"fmt"
	"regexp"

	"github.com/iancoleman/strcase"
)

// nameRE is the GraphQL Name grammar.
var nameRE = regexp.MustCompile(`^[_A-Za-z][_A-Za-z0-9]*$`)

func mustBeName(kind, name string) {
	if !nameRE.MatchString(name) {
		panic(fmt.Sprintf("invalid %s name %q", kind, name))
	}
}

// FieldName converts a Go identifier such as "CreatedAt" into the
// conventional GraphQL field name "createdAt".
func FieldName(s string) string {
	return strcase.ToLowerCamel(s)
}

// CaseName converts a Go identifier such as "ThumbsUp" into the
// conventional GraphQL enum case name "THUMBS_UP".
func CaseName(s string) string {
	return strcase.ToScreamingSnake(s)
}
