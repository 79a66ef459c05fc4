package review

import (
	"errors"
	"testing"
)

func TestParseRequest_Valid(t *testing.T) {
	raw := []byte(`{"code_snippet": "def f():\n    pass", "review_comments": ["Too short.", "Add a docstring."]}`)

	req, err := ParseRequest(raw)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.CodeSnippet != "def f():\n    pass" {
		t.Errorf("CodeSnippet = %q", req.CodeSnippet)
	}
	if len(req.ReviewComments) != 2 {
		t.Errorf("len(ReviewComments) = %d, want 2", len(req.ReviewComments))
	}
}

func TestParseRequest_EmptySnippetIsValid(t *testing.T) {
	req, err := ParseRequest([]byte(`{"code_snippet": "", "review_comments": ["fine"]}`))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.CodeSnippet != "" {
		t.Errorf("CodeSnippet = %q, want empty", req.CodeSnippet)
	}
}

func TestParseRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason ValidationReason
		field  string
	}{
		{"not json", `not json at all`, ReasonNotParseable, ""},
		{"truncated", `{"code_snippet": "x"`, ReasonNotParseable, ""},
		{"json array", `["a", "b"]`, ReasonNotParseable, ""},
		{"missing snippet", `{"review_comments": ["x"]}`, ReasonMissingField, "code_snippet"},
		{"missing comments", `{"code_snippet": "x"}`, ReasonMissingField, "review_comments"},
		{"snippet not string", `{"code_snippet": 42, "review_comments": ["x"]}`, ReasonWrongType, "code_snippet"},
		{"comments not array", `{"code_snippet": "x", "review_comments": "nope"}`, ReasonWrongType, "review_comments"},
		{"comments mixed types", `{"code_snippet": "x", "review_comments": ["ok", 7]}`, ReasonWrongType, "review_comments"},
		{"empty comments", `{"code_snippet": "x", "review_comments": []}`, ReasonEmptyComments, "review_comments"},
		{"blank comment", `{"code_snippet": "x", "review_comments": ["ok", ""]}`, ReasonEmptyComments, "review_comments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if verr.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", verr.Reason, tt.reason)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestParseRequest_ExtraFieldsIgnored(t *testing.T) {
	raw := []byte(`{"code_snippet": "x", "review_comments": ["ok"], "reviewer": "alice"}`)
	if _, err := ParseRequest(raw); err != nil {
		t.Errorf("ParseRequest() error = %v, want nil", err)
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(&ValidationError{Reason: ReasonNotParseable}) {
		t.Error("IsValidationError(*ValidationError) = false")
	}
	if IsValidationError(errors.New("other")) {
		t.Error("IsValidationError(plain error) = true")
	}
}
