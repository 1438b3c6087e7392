// Package cmd implements the lazysim commands.
//
// lazysim loads a lazyview.yaml page manifest and replays a scroll through
// the page, printing when each lazy section becomes visible, starts its
// fetch and finishes loading.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/lazyview/cmd/lazysim/internal/config"
	"github.com/go-drift/lazyview/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var verbose bool

// NewRootCmd creates the root command for the lazysim CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lazysim",
		Short: "Simulate lazy section loading for a page manifest",
		Long: `lazysim reads a lazyview.yaml manifest describing a page of lazily
rendered sections and scrolls through it frame by frame.

Use "lazysim run" in a directory containing lazyview.yaml to print the
load timeline.`,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.SetVersionTemplate("lazysim version {{.Version}}\n")
	cmd.PersistentPreRun = installErrorHandler
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Include stack traces in error reports")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// installErrorHandler routes lazyview error reports to the command's stderr.
func installErrorHandler(cmd *cobra.Command, _ []string) {
	errors.SetHandler(&errors.LogHandler{Verbose: verbose, Out: cmd.ErrOrStderr()})
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// resolveManifest loads the manifest named by path, or the nearest
// lazyview.yaml above the working directory when path is empty.
func resolveManifest(path string) (*config.Resolved, error) {
	if path != "" {
		m, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if m.Page.Name == "" {
			m.Page.Name = "page"
		}
		return &config.Resolved{Manifest: m}, nil
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		return nil, err
	}
	return config.Resolve(root)
}
