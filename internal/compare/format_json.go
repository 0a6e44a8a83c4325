package compare

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Write encodes the comparison set to w, followed by a newline
func (jf *JSONFormatter) Write(w io.Writer, compSet *ComparisonSet) error {
	enc := json.NewEncoder(w)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(compSet)
}

// Format returns the encoded comparison set without the trailing newline
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	if err := jf.Write(&buf, compSet); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
