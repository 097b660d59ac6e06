package api

import (
	"fmt"
	"strings"
)

// APIError aggregates the structured errors and free-text messages of a
// failed envelope. Code holds the first numeric code found among the error
// entries, 0 when none carried one, so callers can branch on well-known
// codes without parsing message text.
type APIError struct {
	Resource string
	Code     int
	Notes    []string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "request to the API (%s) failed", e.Resource)
	for _, note := range e.Notes {
		b.WriteString("\n")
		b.WriteString(note)
	}
	return b.String()
}

// APICode exposes the numeric code for error dumps.
func (e *APIError) APICode() int {
	if e == nil {
		return 0
	}
	return e.Code
}

// APINotes exposes the rendered notes for error dumps.
func (e *APIError) APINotes() []string {
	if e == nil {
		return nil
	}
	return e.Notes
}

// errorFromEnvelope turns a failed envelope into an error. Each entry is
// first offered to the friendly handlers in order; the first handler to
// return a non-nil error short-circuits the generic aggregation.
func errorFromEnvelope(resource string, env *Envelope, friendly []FriendlyErrorFunc) error {
	for _, entry := range env.Errors {
		for _, fn := range friendly {
			if err := fn(entry); err != nil {
				return err
			}
		}
	}

	notes := make([]string, 0, len(env.Errors)+len(env.Messages))
	for _, entry := range env.Errors {
		notes = append(notes, renderError(entry, 0))
	}
	notes = append(notes, env.Messages...)

	code := 0
	for _, entry := range env.Errors {
		if entry.Code != 0 {
			code = entry.Code
			break
		}
	}

	return &APIError{
		Resource: resource,
		Code:     code,
		Notes:    notes,
	}
}

// renderError renders an error entry and its chain depth-first: the entry's
// own text, then each chained cause on its own line, indented two spaces per
// level and prefixed with "- ".
func renderError(entry ResponseError, level int) string {
	var b strings.Builder
	if entry.Code != 0 {
		fmt.Fprintf(&b, "%s [code: %d]", entry.Message, entry.Code)
	} else {
		b.WriteString(entry.Message)
	}
	for _, child := range entry.ErrorChain {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", level+1))
		b.WriteString("- ")
		b.WriteString(renderError(child, level+1))
	}
	return b.String()
}
