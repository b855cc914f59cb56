package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/wmiig/infographic/src/infographic"
	"github.com/wmiig/infographic/src/layout"
	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/types"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline numbers of a bundle",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().String("data", "bundle.json", "statistics bundle (JSON or YAML)")
	summaryCmd.Flags().String("xlsx", "", "also write the summary and chart series to this workbook")
	rootCmd.AddCommand(summaryCmd)
}

var (
	colorAccent = lipgloss.Color("#3a5897")
	colorMuted  = lipgloss.Color("#aeadae")

	styleChart = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleSlot  = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue = lipgloss.NewStyle().Bold(true)
)

// summaryRow is one filled text slot.
type summaryRow struct {
	Chart string
	Slot  string
	Value string
}

// summaryRows lays out every chart present in b and collects its text slots,
// followed by the top word.
func summaryRows(b *types.Bundle, m layout.TextMeasurer) ([]summaryRow, error) {
	var rows []summaryRow
	for _, name := range infographic.ChartNames() {
		l, err := infographic.BuildLayout(b, name, m)
		if errors.Is(err, infographic.ErrNoPayload) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, s := range l.Slots {
			if s.HTML {
				continue
			}
			rows = append(rows, summaryRow{Chart: l.Chart, Slot: s.ID, Value: s.Text})
		}
	}
	if b != nil && b.TopWords != nil && b.TopWords.TopWord != "" {
		rows = append(rows, summaryRow{Chart: "top-words", Slot: infographic.TopWordID, Value: b.TopWords.TopWord})
	}
	return rows, nil
}

func printSummary(w io.Writer, rows []summaryRow) {
	slotWidth := 0
	for _, r := range rows {
		if n := lipgloss.Width(r.Slot); n > slotWidth {
			slotWidth = n
		}
	}
	slotCol := styleSlot.Width(slotWidth + 2)

	var sb strings.Builder
	chart := ""
	for _, r := range rows {
		if r.Chart != chart {
			chart = r.Chart
			sb.WriteString(styleChart.Render(chart))
			sb.WriteString("\n")
		}
		sb.WriteString("  ")
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, slotCol.Render(r.Slot), styleValue.Render(r.Value)))
		sb.WriteString("\n")
	}
	fmt.Fprint(w, sb.String())
}

func runSummary(cmd *cobra.Command, _ []string) error {
	data, _ := cmd.Flags().GetString("data")
	xlsx, _ := cmd.Flags().GetString("xlsx")

	m, err := newMeasurer(cfg.Measurer)
	if err != nil {
		return err
	}
	b, err := types.LoadBundle(data)
	if err != nil {
		return fmt.Errorf("loading %s: %w", data, err)
	}
	rows, err := summaryRows(b, m)
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), rows)

	if xlsx == "" {
		return nil
	}
	if err := writeWorkbook(xlsx, b, rows); err != nil {
		return err
	}
	logging.Infof("wrote %s", xlsx)
	return nil
}

const summarySheet = "Summary"

// writeWorkbook saves the summary rows on the first sheet and one sheet per
// chart series present in b.
func writeWorkbook(path string, b *types.Bundle, rows []summaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	table := [][]interface{}{{"chart", "slot", "value"}}
	for _, r := range rows {
		table = append(table, []interface{}{r.Chart, r.Slot, r.Value})
	}
	if err := writeSheet(f, summarySheet, table); err != nil {
		return err
	}

	for _, s := range seriesSheets(b) {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("adding sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

type series struct {
	name string
	rows [][]interface{}
}

// seriesSheets flattens every chart payload of b into a header row plus one
// row per record.
func seriesSheets(b *types.Bundle) []series {
	if b == nil {
		return nil
	}
	var out []series
	if d := b.TopFriends; d != nil {
		s := series{name: layout.ChartTopFriends, rows: [][]interface{}{{"name", "likes", "color"}}}
		for _, f := range d.Friends {
			s.rows = append(s.rows, []interface{}{f.Name, f.Likes, f.Color})
		}
		out = append(out, s)
	}
	if d := b.PostTypes; d != nil {
		s := series{name: layout.ChartPostTypes, rows: [][]interface{}{{"type", "description", "value"}}}
		for _, t := range d.Types {
			s.rows = append(s.rows, []interface{}{t.ShortName, t.Description, t.Value})
		}
		out = append(out, s)
	}
	if d := b.DailyPostFrequency; d != nil && len(d.Frequency) > 0 {
		keys := d.Frequency[0].Keys
		header := []interface{}{types.DayField}
		for _, k := range keys {
			header = append(header, k)
		}
		s := series{name: layout.ChartDaily, rows: [][]interface{}{header}}
		for _, r := range d.Frequency {
			row := []interface{}{r.DayOfWeek}
			for _, k := range keys {
				if v := r.Value(k); !math.IsNaN(v) {
					row = append(row, v)
				} else {
					row = append(row, "")
				}
			}
			s.rows = append(s.rows, row)
		}
		out = append(out, s)
	}
	if d := b.MonthlyPostFrequency; d != nil {
		s := series{name: layout.ChartMonthly, rows: [][]interface{}{{"x", "month", "value"}}}
		for i, p := range d.Frequency {
			s.rows = append(s.rows, []interface{}{p.X, layout.MonthName(i), p.Value})
		}
		out = append(out, s)
	}
	return out
}
