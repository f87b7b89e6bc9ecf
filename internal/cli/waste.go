package cli

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/Faultbox/plastic-gallery/internal/gallery"
	"github.com/Faultbox/plastic-gallery/internal/manifest"
	"github.com/Faultbox/plastic-gallery/internal/waste"
)

func newWasteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waste",
		Short: "Turn the mismanaged-waste report into a lineup",
		Long: `The waste commands form a small pipeline:

  extract  report text   -> raw values per country (JSON)
  clean    raw JSON      -> numeric values per country (JSON)
  lineup   cleaned JSON  -> gallery manifest of waste cubes
  codes    country codes -> the inverse lookup table`,
	}

	cmd.AddCommand(newWasteExtractCommand())
	cmd.AddCommand(newWasteCleanCommand())
	cmd.AddCommand(newWasteLineupCommand())
	cmd.AddCommand(newWasteCodesCommand())
	return cmd
}

func newWasteExtractCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "extract <report.txt>",
		Short: "Pull raw per-country values out of the report text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := waste.ExtractFile(args[0])
			if err != nil {
				return err
			}
			if err := writeJSON(cmd, out, raw); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "extracted %d countries\n", len(raw))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newWasteCleanCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "clean <raw.json>",
		Short: "Convert raw values to numbers, skipping entries that do not parse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			raw, err := waste.ReadRaw(f)
			if err != nil {
				return err
			}

			entries, skipped := waste.Clean(raw)
			for _, e := range multierr.Errors(skipped) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", e)
			}
			if err := writeJSON(cmd, out, waste.ByCountry(entries)); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "cleaned %d countries\n", len(entries))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newWasteLineupCommand() *cobra.Command {
	var (
		out        string
		references string
		opts       waste.LineupOptions
	)

	cmd := &cobra.Command{
		Use:   "lineup <cleaned.json>",
		Short: "Build a manifest of waste cubes for the largest producers",
		Long: `Build a manifest where every country is a cube holding its yearly
mismanaged waste. Cubes are ordered smallest first so the walk grows.
Reference models from another manifest can lead the lineup.`,
		Example: `  galleryctl waste lineup cleaned_data.json --top 20 -o lineup.yaml
  galleryctl waste lineup cleaned_data.json --references everyday.yaml -o lineup.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			entries, err := waste.ReadEntries(f)
			if err != nil {
				return err
			}

			if references != "" {
				opts.References, err = manifest.Load(references)
				if err != nil {
					return err
				}
			}

			descs := waste.Lineup(entries, opts)
			if out != "" {
				if err := manifest.Save(out, descs); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d models to %s\n", len(descs), out)
				return nil
			}
			return encodeManifest(cmd.OutOrStdout(), descs)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "manifest file, format by extension (default YAML on stdout)")
	cmd.Flags().StringVar(&references, "references", "", "manifest of models to show before the cubes")
	cmd.Flags().IntVar(&opts.Top, "top", 20, "number of countries to keep, 0 for all")
	cmd.Flags().Float64Var(&opts.Density, "density", waste.DefaultDensity, "waste density in tonnes per cubic metre")
	return cmd
}

func newWasteCodesCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "codes <countryToCode.json>",
		Short: "Invert a country-to-code table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var countryToCode map[string]string
			if err := json.Unmarshal(data, &countryToCode); err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			return writeJSON(cmd, out, waste.InvertCodes(countryToCode))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func writeJSON(cmd *cobra.Command, path string, v any) (err error) {
	w, closeFn, err := output(path, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeFn())
	}()
	return waste.WriteJSON(w, v)
}

func encodeManifest(w io.Writer, descs []gallery.ModelDescriptor) error {
	data, err := manifest.Encode(descs, manifest.FormatYAML)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
