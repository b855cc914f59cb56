package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wmiig/infographic/src/infographic"
	"github.com/wmiig/infographic/src/layout"
	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/page"
	"github.com/wmiig/infographic/src/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Mount every chart of a bundle into an HTML page",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	addPageFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

// addPageFlags registers the flags shared by render and watch.
func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "bundle.json", "statistics bundle (JSON or YAML)")
	cmd.Flags().String("template", "", "page holding the mount elements (default from config)")
	cmd.Flags().String("out", "", "rendered page (default from config)")
	cmd.Flags().Float64("width", 0, "viewport width dispatched after mounting (default from config)")
	cmd.Flags().Bool("strict", false, "fail when a chart mount element is missing")
}

// pageJob is one render of a bundle into a template.
type pageJob struct {
	Data     string
	Template string
	Out      string
	Width    float64
	Strict   bool
	Measurer layout.TextMeasurer
}

func pageJobFromFlags(cmd *cobra.Command) (pageJob, error) {
	j := pageJob{Template: cfg.Template, Out: cfg.Output, Width: cfg.ViewportWidth}
	j.Data, _ = cmd.Flags().GetString("data")
	if v, _ := cmd.Flags().GetString("template"); v != "" {
		j.Template = v
	}
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		j.Out = v
	}
	if cmd.Flags().Changed("width") {
		j.Width, _ = cmd.Flags().GetFloat64("width")
	}
	j.Strict, _ = cmd.Flags().GetBool("strict")
	if j.Template == j.Out {
		return pageJob{}, fmt.Errorf("template and output are both %s", j.Out)
	}
	m, err := newMeasurer(cfg.Measurer)
	if err != nil {
		return pageJob{}, err
	}
	j.Measurer = m
	return j, nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	j, err := pageJobFromFlags(cmd)
	if err != nil {
		return err
	}
	mounts, err := renderPage(j)
	if err != nil {
		return err
	}
	logging.Infof("rendered %d charts into %s", len(mounts), j.Out)
	return nil
}

// renderPage loads the bundle and template, mounts every chart and writes the
// page. A positive width is dispatched as a resize once everything is mounted.
func renderPage(j pageJob) ([]*infographic.Mount, error) {
	defer logging.TimeTrack(time.Now(), "render "+j.Out)

	b, err := types.LoadBundle(j.Data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", j.Data, err)
	}
	doc, err := loadTemplate(j.Template)
	if err != nil {
		return nil, err
	}

	vp := page.NewViewport(0)
	ctx := infographic.NewContext(doc, vp, j.Measurer)
	if j.Strict {
		if err := ctx.Require(infographic.MountIDs()...); err != nil {
			return nil, fmt.Errorf("%s: %w", j.Template, err)
		}
	}
	mounts := ctx.InitAll(b)
	if j.Width > 0 {
		vp.Dispatch(page.Event{Kind: page.Resize, Width: j.Width})
	}
	for _, m := range mounts {
		logging.Debugf("#%s %s %.0fx%.0f", m.ID, m.Fingerprint, m.Width, m.Height)
		m.Detach()
	}

	if err := writePage(j.Out, doc); err != nil {
		return nil, err
	}
	return mounts, nil
}

func loadTemplate(path string) (*page.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()
	doc, err := page.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// writePage renders doc next to path and renames it into place so a watcher
// on the output directory never sees a partial file.
func writePage(path string, doc *page.Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp page: %w", err)
	}
	success := false
	defer func() {
		if !success {
			os.Remove(tmp.Name())
		}
	}()
	if err := doc.Render(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("rendering page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp page: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	success = true
	return nil
}
