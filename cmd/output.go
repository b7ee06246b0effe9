package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// Output formats of the one-shot commands.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func outputFlag(cmd *cobra.Command, target *string, def string) {
	cmd.Flags().StringVarP(target, "output", "o", def, fmt.Sprintf("Output format. One of: %s", strings.Join([]string{OutputTable, OutputJSON, OutputYAML}, ", ")))
}

// printData writes v as indented JSON or as YAML. YAML keys follow the JSON names of the API.
func printData(w io.Writer, v any, output string) error {
	var raw []byte
	switch data := v.(type) {
	case json.RawMessage:
		raw = data
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to encode output")
		}
		raw = encoded
	}

	switch strings.ToLower(output) {
	case OutputYAML:
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return errors.Wrap(err, "failed to convert output to YAML")
		}
		encoded, err := yaml.Marshal(doc)
		if err != nil {
			return errors.Wrap(err, "failed to encode output as YAML")
		}
		_, err = w.Write(encoded)
		return err
	case OutputJSON, OutputTable, "":
		var buf bytes.Buffer
		if len(bytes.TrimSpace(raw)) == 0 {
			raw = []byte("null")
		}
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return errors.Wrap(err, "failed to indent output")
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(w)
		return err
	default:
		return errors.Errorf("unsupported output format: %s", output)
	}
}

// parseValue interprets a command line value as JSON when possible, e.g. 5000, true or ["a","b"], and as a string otherwise.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}
