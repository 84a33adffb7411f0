package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbcbank/card-intake/internal/schema"
)

var errInvalid = errors.New("payload failed validation")

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <payload.json>",
		Short: "Check a payload against the application form rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}

			errs := schema.Validate(v)
			out := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintln(out, "OK")
				return nil
			}
			for _, fe := range errs {
				fmt.Fprintf(out, "  %-20s %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%w: %d problem(s)", errInvalid, len(errs))
		},
	}
}
