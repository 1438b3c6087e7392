package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a manifest without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveManifest(manifestPath)
			if err != nil {
				return err
			}
			m := resolved.Manifest
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: schema %s, %d sections OK\n", m.Page.Name, m.Schema, len(m.Sections))
			return err
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "f", "", "Path to a manifest (default: nearest lazyview.yaml)")

	return cmd
}
