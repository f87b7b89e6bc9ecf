// Package cli provides the galleryctl command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/plastic-gallery/internal/config"
	"github.com/Faultbox/plastic-gallery/internal/gallery"
	"github.com/Faultbox/plastic-gallery/internal/logger"
	"github.com/Faultbox/plastic-gallery/internal/manifest"
)

// Version is set at build time.
var Version = "0.1.0"

// options are shared by every subcommand.
type options struct {
	configPath string
	assetsRoot string
	verbose    bool

	cfg *config.Config
}

// NewRootCmd creates the galleryctl root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "galleryctl",
		Short: "Plan, check and build plastic gallery lineups",
		Long: `galleryctl works on gallery lineups without opening a window.

It resolves and lays out a lineup to show where every model stands and
how long the camera walk takes, validates manifests against the asset
tree, and turns the mismanaged-waste report into a cube lineup.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadFile(opts.configPath)
			if err != nil {
				return err
			}
			if opts.assetsRoot != "" {
				cfg.Assets.Root = opts.assetsRoot
			}
			opts.cfg = cfg

			if opts.verbose {
				return logger.InitWithFileConfig("debug", logger.FileConfig{}, true)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: built-in settings)")
	root.PersistentFlags().StringVar(&opts.assetsRoot, "assets", "", "asset root directory")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newPlanCommand(opts))
	root.AddCommand(newValidateCommand(opts))
	root.AddCommand(newWasteCommand())
	root.AddCommand(newConfigCommand(opts))

	return root
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// manifestArg loads the manifest named on the command line, falling back
// to the configured one.
func (o *options) manifestArg(args []string) (string, []gallery.ModelDescriptor, error) {
	path := o.cfg.Gallery.Manifest
	if len(args) > 0 {
		path = args[0]
	}
	descs, err := manifest.Load(path)
	if err != nil {
		return path, nil, err
	}
	return path, descs, nil
}

// output opens path for writing, or returns fallback when path is empty.
func output(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
