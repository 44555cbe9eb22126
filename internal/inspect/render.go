package inspect

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Render writes the report to w in the given format.
func Render(w io.Writer, report Report, format string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("could not marshal report. Err: '%w'", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("could not marshal report. Err: '%w'", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format '%s' (expected: %s|%s)", format, FormatYAML, FormatJSON)
	}
}
