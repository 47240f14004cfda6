// Package output renders generated passwords and strength assessments in the
// formats accepted by --output. Results go to stdout; nothing here logs.
package output

import (
	"encoding/json"
	"io"
)

// JSONTo writes any data structure as formatted JSON to w.
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	// passwords may contain < > &
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}
