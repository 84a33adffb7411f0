package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fbcbank/card-intake/internal/config"
	"github.com/fbcbank/card-intake/internal/document"
)

func renderCmd() *cobra.Command {
	var (
		output     string
		configPath string
		logo       string
		noCompress bool
	)

	cmd := &cobra.Command{
		Use:   "render <payload.json>",
		Short: "Render the application PDF for a payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}

			opts := document.Options{Brand: document.DefaultBrand, LogoPath: logo, Compress: !noCompress}
			if configPath != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				opts.Brand = document.Brand{
					BankName:  cfg.Brand.BankName,
					CardBrand: cfg.Brand.CardBrand,
					Title:     cfg.Brand.Title,
				}
				if opts.LogoPath == "" {
					opts.LogoPath = cfg.Brand.LogoPath
				}
				opts.Compress = cfg.Document.Compress && !noCompress
			}

			r, err := document.NewRenderer(opts)
			if err != nil {
				return err
			}
			pdf, err := r.Render(v)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if output == "-" {
				_, err = cmd.OutOrStdout().Write(pdf)
				return err
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(pdf))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "application.pdf", "Output file, - for stdout")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file supplying brand and document settings")
	cmd.Flags().StringVar(&logo, "logo", "", "Logo image drawn in the header")
	cmd.Flags().BoolVar(&noCompress, "no-compress", false, "Write uncompressed page streams")
	return cmd
}
