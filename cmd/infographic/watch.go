package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wmiig/infographic/src/infographic"
	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the page whenever the bundle or template changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	addPageFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	j, err := pageJobFromFlags(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := newPageWatcher(j, cfg.WatchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()
	logging.Infof("watching %s and %s", j.Data, j.Template)
	return w.Run(ctx)
}

// debouncer holds file events until they have been quiet for wait.
type debouncer struct {
	wait    time.Duration
	pending map[string]time.Time
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{wait: wait, pending: make(map[string]time.Time)}
}

// Touch records an event on name at t, restarting its quiet period.
func (d *debouncer) Touch(name string, t time.Time) {
	d.pending[name] = t
}

// Due removes and returns, sorted, the names that have been quiet since now-wait.
func (d *debouncer) Due(now time.Time) []string {
	var due []string
	for name, t := range d.pending {
		if now.Sub(t) >= d.wait {
			due = append(due, name)
			delete(d.pending, name)
		}
	}
	sort.Strings(due)
	return due
}

// Flush removes and returns every pending name.
func (d *debouncer) Flush() []string {
	names := make([]string, 0, len(d.pending))
	for name := range d.pending {
		names = append(names, name)
	}
	clear(d.pending)
	sort.Strings(names)
	return names
}

// pageInput is what a rendered page depends on.
type pageInput struct {
	Bundle   *types.Bundle `json:"bundle"`
	Template string        `json:"template"`
	Width    float64       `json:"width"`
	Measurer string        `json:"measurer"`
}

// inputFingerprint identifies the page j would produce.
func inputFingerprint(j pageJob) (uuid.UUID, error) {
	b, err := types.LoadBundle(j.Data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading %s: %w", j.Data, err)
	}
	tpl, err := os.ReadFile(j.Template)
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading template: %w", err)
	}
	return infographic.Fingerprint("page", pageInput{
		Bundle:   b,
		Template: string(tpl),
		Width:    j.Width,
		Measurer: fmt.Sprintf("%T", j.Measurer),
	}), nil
}

// pageWatcher renders j once and again after every settled change to its
// bundle or template. Changes that leave the inputs identical are skipped.
type pageWatcher struct {
	job      pageJob
	debounce time.Duration
	watched  map[string]bool
	fw       *fsnotify.Watcher
	last     uuid.UUID
}

func newPageWatcher(j pageJob, debounce time.Duration) (*pageWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &pageWatcher{job: j, debounce: debounce, watched: make(map[string]bool), fw: fw}
	dirs := make(map[string]bool)
	for _, p := range []string{j.Data, j.Template} {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// Directories rather than files so editors that replace on save keep firing.
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Close stops the underlying watcher.
func (w *pageWatcher) Close() error {
	return w.fw.Close()
}

// Run renders immediately and then on change until ctx is done.
func (w *pageWatcher) Run(ctx context.Context) error {
	w.rebuild()

	tick := w.debounce
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	pending := newDebouncer(w.debounce)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				if len(pending.Flush()) > 0 {
					w.rebuild()
				}
				return nil
			}
			if !w.isInput(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending.Touch(event.Name, time.Now())
			}

		case now := <-ticker.C:
			if due := pending.Due(now); len(due) > 0 {
				logging.Debugf("changed: %v", due)
				w.rebuild()
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.rebuild()
				continue
			}
			logging.Warnf("watch: %v", err)
		}
	}
}

func (w *pageWatcher) isInput(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.watched[abs]
}

// rebuild re-renders unless the inputs match the last successful render.
// Failures are logged and the previous page is left in place.
func (w *pageWatcher) rebuild() {
	fp, err := inputFingerprint(w.job)
	if err != nil {
		logging.Warnf("%v", err)
		return
	}
	if fp == w.last {
		logging.Debugf("inputs unchanged (%s), skipping render", fp)
		return
	}
	mounts, err := renderPage(w.job)
	if err != nil {
		logging.Errorf("render: %v", err)
		return
	}
	w.last = fp
	logging.Infof("rendered %d charts into %s", len(mounts), w.job.Out)
}
