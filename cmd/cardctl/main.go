// Command cardctl works with card application payloads from the shell:
// checking them against the form rules, rendering the application PDF and
// submitting them to a running intake server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fbcbank/card-intake/internal/schema"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardctl",
		Short:         "Validate, render and submit card applications",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(validateCmd())
	root.AddCommand(renderCmd())
	root.AddCommand(submitCmd())
	return root
}

// readPayload loads a JSON payload file; "-" reads stdin.
func readPayload(cmd *cobra.Command, path string) (schema.Values, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return schema.Values{}, fmt.Errorf("read payload: %w", err)
	}

	var v schema.Values
	if err := json.Unmarshal(data, &v); err != nil {
		return schema.Values{}, fmt.Errorf("parse payload %s: %w", path, err)
	}
	return v, nil
}
