package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Faultbox/plastic-gallery/internal/assets"
	"github.com/Faultbox/plastic-gallery/internal/gallery"
)

func newPlanCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan [manifest]",
		Short: "Resolve a lineup and print its layout and camera walk",
		Long: `Resolve every model of a lineup, place them along the gallery and print
where each one stands, where the camera stops in front of it and how long
the walk to it takes.`,
		Example: `  galleryctl plan lineup.yaml
  galleryctl plan lineup.json --assets ./models -o markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, descs, err := opts.manifestArg(args)
			if err != nil {
				return err
			}

			mgr := assets.NewManager(opts.cfg.Assets.Root)
			defer mgr.Close()

			p := gallery.NewPipeline(gallery.SettingsFromConfig(opts.cfg), mgr, nil, nil)
			plan, err := p.Plan(cmd.Context(), descs)
			if err != nil {
				return err
			}
			return renderPlan(cmd.OutOrStdout(), plan, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table|markdown|json)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// planRow is one exhibit in the JSON rendering of a plan.
type planRow struct {
	Name     string     `json:"name"`
	Asset    string     `json:"asset"`
	Height   float32    `json:"height"`
	Width    float32    `json:"width"`
	Depth    float32    `json:"depth"`
	Scale    float32    `json:"scale"`
	Position [3]float32 `json:"position"`
	Camera   [3]float32 `json:"camera"`
	Hop      float64    `json:"hop_seconds"`
}

func planRows(plan gallery.Plan) []planRow {
	rows := make([]planRow, len(plan.Placed))
	for i, m := range plan.Placed {
		rows[i] = planRow{
			Name:     m.Name,
			Asset:    m.AssetID,
			Height:   m.TargetHeight,
			Width:    m.Width,
			Depth:    m.Depth,
			Scale:    m.ScaleFactor,
			Position: m.Position.Array(),
			Camera:   plan.Stops[i].Position.Array(),
			Hop:      plan.Durations[i],
		}
	}
	return rows
}

func renderPlan(w io.Writer, plan gallery.Plan, format string) error {
	rows := planRows(plan)

	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table", "md", "markdown":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(empty lineup)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "Asset", "Height", "Width", "Scale", "X", "Camera Z", "Hop (s)"})
	for i, r := range rows {
		t.AppendRow(table.Row{
			i + 1,
			r.Name,
			r.Asset,
			fmt.Sprintf("%.2f", r.Height),
			fmt.Sprintf("%.2f", r.Width),
			fmt.Sprintf("%.4g", r.Scale),
			fmt.Sprintf("%.2f", r.Position[0]),
			fmt.Sprintf("%.2f", r.Camera[2]),
			fmt.Sprintf("%.2f", r.Hop),
		})
	}
	t.AppendFooter(table.Row{"", "Total", "", "", "", "", "", "", fmt.Sprintf("%.2f", plan.Total())})

	if format == "table" {
		t.Render()
	} else {
		t.RenderMarkdown()
	}
	return nil
}
