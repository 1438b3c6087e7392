package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/lazyview/cmd/lazysim/internal/page"
)

func newRunCmd() *cobra.Command {
	var manifestPath string
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scroll through the page and print the load timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveManifest(manifestPath)
			if err != nil {
				return err
			}

			report, err := page.New(resolved.Manifest).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if !summaryOnly {
				for _, event := range report.Events {
					fmt.Fprintln(out, event)
				}
			}
			fmt.Fprintf(out, "%s: %d/%d sections loaded in %d frames, page height %.0f, %d watchers left\n",
				report.Page, report.Loaded, report.Sections, report.Frames, report.PageHeight, report.ActiveWatchers)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "f", "", "Path to a manifest (default: nearest lazyview.yaml)")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print only the summary line")

	return cmd
}
