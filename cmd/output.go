package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"insuredevents/internal/errs"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func writeOutput(w io.Writer, format string, value any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return errs.Wrap(encoder.Encode(value), "encode json")
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return errs.Wrap(err, "encode yaml")
		}
		return errs.Wrap(encoder.Close(), "close yaml encoder")
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
