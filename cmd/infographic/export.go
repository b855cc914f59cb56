package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wmiig/infographic/src/infographic"
	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/render"
	"github.com/wmiig/infographic/src/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a single chart as a standalone SVG or PNG file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("data", "bundle.json", "statistics bundle (JSON or YAML)")
	exportCmd.Flags().String("chart", "", "chart to export: "+strings.Join(infographic.ChartNames(), ", ")+" (required)")
	exportCmd.Flags().String("format", string(render.FormatPNG), "png or svg")
	exportCmd.Flags().String("out", "", "output file (default <chart>.<format>)")
	exportCmd.Flags().Int("width", 0, "pixel width (default the chart's own width)")
	_ = exportCmd.MarkFlagRequired("chart")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	data, _ := cmd.Flags().GetString("data")
	chart, _ := cmd.Flags().GetString("chart")
	formatName, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	width, _ := cmd.Flags().GetInt("width")

	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if out == "" {
		out = chart + "." + string(format)
	}
	m, err := newMeasurer(cfg.Measurer)
	if err != nil {
		return err
	}
	b, err := types.LoadBundle(data)
	if err != nil {
		return fmt.Errorf("loading %s: %w", data, err)
	}
	l, err := infographic.BuildLayout(b, chart, m)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := render.Export(f, l, format, width); err != nil {
		f.Close()
		return fmt.Errorf("exporting %s: %w", l.Chart, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logging.Infof("exported %s to %s", l.Chart, out)
	return nil
}
