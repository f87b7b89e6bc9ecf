package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/Faultbox/plastic-gallery/internal/assets"
	"github.com/Faultbox/plastic-gallery/internal/manifest"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check a lineup manifest against the asset tree",
		Long: `Check that every exhibit has a unique name, a positive height and an
asset that resolves to a model file. All problems are listed at once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, descs, err := opts.manifestArg(args)
			if err != nil {
				return err
			}

			mgr := assets.NewManager(opts.cfg.Assets.Root)
			defer mgr.Close()

			if err := manifest.Validate(descs, mgr); err != nil {
				problems := multierr.Errors(err)
				for _, p := range problems {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", p)
				}
				return fmt.Errorf("%s: %d problem(s)", path, len(problems))
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d models ok\n", path, len(descs))
			return nil
		},
	}
}
