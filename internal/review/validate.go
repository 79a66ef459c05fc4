package review

import (
	"encoding/json"
	"fmt"
)

// ValidationReason identifies why a request was rejected.
type ValidationReason string

const (
	ReasonNotParseable  ValidationReason = "notParseable"
	ReasonMissingField  ValidationReason = "missingField"
	ReasonWrongType     ValidationReason = "wrongType"
	ReasonEmptyComments ValidationReason = "emptyComments"
)

// ValidationError is the only error kind the core raises. It fires before
// any heuristic runs; the heuristics themselves are total functions.
type ValidationError struct {
	Reason ValidationReason
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request (%s): field %q: %s", e.Reason, e.Field, e.Detail)
	}
	return fmt.Sprintf("invalid request (%s): %s", e.Reason, e.Detail)
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ParseRequest parses and validates raw JSON input into a Request. It is the
// single gate in front of the pipeline: a Request it returns always has a
// code_snippet string (possibly empty) and at least one non-empty comment.
func ParseRequest(raw []byte) (Request, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Request{}, &ValidationError{
			Reason: ReasonNotParseable,
			Detail: err.Error(),
		}
	}

	snippetRaw, ok := obj["code_snippet"]
	if !ok {
		return Request{}, &ValidationError{
			Reason: ReasonMissingField,
			Field:  "code_snippet",
			Detail: "required field is absent",
		}
	}
	commentsRaw, ok := obj["review_comments"]
	if !ok {
		return Request{}, &ValidationError{
			Reason: ReasonMissingField,
			Field:  "review_comments",
			Detail: "required field is absent",
		}
	}

	var req Request
	if err := json.Unmarshal(snippetRaw, &req.CodeSnippet); err != nil {
		return Request{}, &ValidationError{
			Reason: ReasonWrongType,
			Field:  "code_snippet",
			Detail: "must be a string",
		}
	}
	if err := json.Unmarshal(commentsRaw, &req.ReviewComments); err != nil {
		return Request{}, &ValidationError{
			Reason: ReasonWrongType,
			Field:  "review_comments",
			Detail: "must be an array of strings",
		}
	}

	if len(req.ReviewComments) == 0 {
		return Request{}, &ValidationError{
			Reason: ReasonEmptyComments,
			Field:  "review_comments",
			Detail: "must contain at least one comment",
		}
	}
	for i, c := range req.ReviewComments {
		if c == "" {
			return Request{}, &ValidationError{
				Reason: ReasonEmptyComments,
				Field:  "review_comments",
				Detail: fmt.Sprintf("comment %d is empty", i),
			}
		}
	}

	return req, nil
}
