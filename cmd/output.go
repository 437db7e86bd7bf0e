package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// printResult writes v to the command output in the configured format
func printResult(cmd *cobra.Command, v any) error {
	format := "json"
	if cfg != nil {
		format = cfg.Output.Format
	}
	return render(cmd.OutOrStdout(), format, v)
}

// render encodes v as JSON or YAML. YAML output keeps the API's JSON keys.
func render(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	switch format {
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		blockStyle(&node)

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	default:
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// blockStyle drops the flow and quoting styles inherited from the JSON source
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
