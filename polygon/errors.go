package polygon

import "fmt"

// APIError is a failure reported by the Polygon API itself, carrying the
// comment from the remote side so it can be surfaced to the user verbatim.
type APIError struct {
	Method  string
	Comment string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("polygon %s: %s", e.Method, e.Comment)
}
