package parser

import "fmt"

// SyntaxError reports input the grammar rejected, with a best-effort byte
// offset of the failure.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Parse failure: %s at offset %d", e.Message, e.Offset)
}

// IncompleteError reports input whose prefix parsed as a document but which
// had bytes left over.
type IncompleteError struct {
	Remainder string
}

func (e *IncompleteError) Error() string {
	return "Incomplete parsing error: " + e.Remainder
}
