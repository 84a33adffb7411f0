package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fbcbank/card-intake/internal/collector"
)

func submitCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit <payload.json>",
		Short: "Submit a payload to a running intake server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}

			c := collector.New(server, collector.WithHTTPClient(&http.Client{Timeout: timeout}))
			c.Load(v)

			out, err := c.Submit(cmd.Context())
			var verr *collector.ValidationError
			if errors.As(err, &verr) {
				for _, fe := range verr.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %-20s %s\n", fe.Field, fe.Message)
				}
				return fmt.Errorf("%w: fix %s first", errInvalid, verr.Field)
			}
			if err != nil {
				return fmt.Errorf("submit: %w", err)
			}

			w := cmd.OutOrStdout()
			if out.Notice != "" {
				fmt.Fprintf(w, "Application submitted successfully with a note: %s\n", out.Notice)
			} else {
				fmt.Fprintln(w, "Application submitted successfully.")
			}
			fmt.Fprintf(w, "Reference: %s\n", out.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:3000", "Intake server base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	return cmd
}
