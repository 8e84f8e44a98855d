package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/astrolabe/internal/config"
	"github.com/papapumpkin/astrolabe/internal/natal"
	"github.com/papapumpkin/astrolabe/internal/telemetry"
	"github.com/papapumpkin/astrolabe/internal/ui"
)

// watchDebounce collapses bursts of file events into one rerun.
const watchDebounce = 100 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run a comparison whenever its inputs change",
	Long: `Reads two births from a pair file and prints their comparison, then
watches the pair file and both data tables and prints a fresh comparison
after every change. Stop with Ctrl-C.

The pair file is TOML with an [a] and a [b] table, each holding name, date,
time, city, and country.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("pair", "pair.toml", "TOML file naming the two births")
	rootCmd.AddCommand(watchCmd)
}

// pairFile is the document watch reads.
type pairFile struct {
	A natal.BirthInput `toml:"a"`
	B natal.BirthInput `toml:"b"`
}

// loadPair decodes a pair file, rejecting unknown keys.
func loadPair(path string) (pairFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pairFile{}, fmt.Errorf("reading pair file: %w", err)
	}
	var pf pairFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pf); err != nil {
		return pairFile{}, fmt.Errorf("parsing pair file %s: %w", path, err)
	}
	return pf, nil
}

func runWatch(cmd *cobra.Command, _ []string) error {
	pairPath, _ := cmd.Flags().GetString("pair")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	p := ui.New()
	p.SetVerbose(cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rerun := func() {
		if err := compareOnce(ctx, cfg, p, cmd.OutOrStdout(), pairPath); err != nil {
			p.Error(err.Error())
		}
	}
	rerun()

	p.Info("watching " + pairPath + " for changes (Ctrl-C to stop)")
	return watchFiles(ctx, []string{pairPath, cfg.EphemerisFile, cfg.GazetteerFile}, watchDebounce, rerun)
}

// compareOnce reloads the data tables and the pair file and writes one
// comparison to w.
func compareOnce(ctx context.Context, cfg config.Config, p *ui.Printer, w io.Writer, pairPath string) error {
	s, err := newSession(cfg, p)
	if err != nil {
		return err
	}
	defer s.Close()

	pair, err := loadPair(pairPath)
	if err != nil {
		return err
	}
	s.record(telemetry.KindWatchRerun, pairPath, nil)

	r, err := s.compare(ctx, pair.A, pair.B)
	if err != nil {
		return err
	}
	return s.emit(w, "", r, func() string { return ui.CompatibilityReport(r) })
}

// watchFiles calls onChange once per debounced burst of writes to any of
// paths. Parent directories are watched so that editors replacing a file
// by rename are still seen. It returns nil when ctx is done.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch: %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch: %s: %w", d, err)
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err != nil || !targets[abs] {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-fire:
			fire = nil
			onChange()
		}
	}
}
