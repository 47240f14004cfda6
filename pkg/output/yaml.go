package output

import (
	"io"

	cerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// YAMLTo writes data as a YAML document to w.
func YAMLTo(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return cerr.Wrap(err, "encode yaml")
	}
	return encoder.Close()
}
