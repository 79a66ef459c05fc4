package output

import (
	"encoding/json"
	"io"

	"github.com/empath-review/empath/internal/review"
)

// JSONWriter outputs the report as indented JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
