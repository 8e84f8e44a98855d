package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sourcegraph/conc/pool"

	"github.com/papapumpkin/astrolabe/internal/config"
	"github.com/papapumpkin/astrolabe/internal/ephemeris"
	"github.com/papapumpkin/astrolabe/internal/natal"
	"github.com/papapumpkin/astrolabe/internal/synastry"
	"github.com/papapumpkin/astrolabe/internal/telemetry"
	"github.com/papapumpkin/astrolabe/internal/ui"
)

// session bundles the loaded data tables and collaborators one command
// invocation works with.
type session struct {
	cfg      config.Config
	table    *ephemeris.Table
	places   *ephemeris.Gazetteer
	builder  *natal.Builder
	comparer synastry.Comparer
	events   *telemetry.Log
	printer  *ui.Printer
}

// newSession loads both data tables named by cfg and opens the telemetry
// file when one is configured.
func newSession(cfg config.Config, p *ui.Printer) (*session, error) {
	table, err := ephemeris.LoadTable(cfg.EphemerisFile)
	if err != nil {
		return nil, err
	}
	places, err := ephemeris.LoadGazetteer(cfg.GazetteerFile)
	if err != nil {
		return nil, err
	}

	var events *telemetry.Log
	if cfg.TelemetryFile != "" {
		if events, err = telemetry.Open(cfg.TelemetryFile); err != nil {
			return nil, err
		}
	}

	s := &session{
		cfg:      cfg,
		table:    table,
		places:   places,
		builder:  natal.NewBuilder(table, places, cfg.EphemerisTimeout),
		comparer: synastry.Comparer{Detector: synastry.Detector{Workers: cfg.AspectWorkers}},
		events:   events,
		printer:  p,
	}
	p.Debug(fmt.Sprintf("loaded %d chart entries from %s and %d places from %s",
		len(table.Entries()), cfg.EphemerisFile, len(places.Places()), cfg.GazetteerFile))
	s.record(telemetry.KindTablesLoaded, "", map[string]int{
		"charts": len(table.Entries()),
		"places": len(places.Places()),
	})
	return s, nil
}

// sessionFromConfig loads configuration through viper and opens a session.
func sessionFromConfig() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	p := ui.New()
	p.SetVerbose(cfg.Verbose)
	return newSession(cfg, p)
}

// record appends to the telemetry trail. A failed write never fails the
// command; it shows up with --verbose.
func (s *session) record(kind telemetry.Kind, subject string, data any) {
	if err := s.events.Record(kind, subject, data); err != nil {
		s.printer.Debug(err.Error())
	}
}

func (s *session) Close() error {
	return s.events.Close()
}

// chart builds one chart and records the outcome.
func (s *session) chart(ctx context.Context, in natal.BirthInput) (*natal.Chart, error) {
	c, err := s.builder.BuildFor(ctx, in)
	if err != nil {
		s.record(telemetry.KindChartFailed, in.Name, map[string]string{
			"kind":  string(natal.KindOf(err)),
			"error": err.Error(),
		})
		return nil, err
	}
	arch := c.Archetype()
	s.record(telemetry.KindChartBuilt, in.Name, map[string]string{
		"sun":       c.BigThree().Sun.Sign.String(),
		"mbti":      arch.MBTI,
		"enneagram": arch.EnneagramLabel(),
	})
	return c, nil
}

// compare builds both charts concurrently and scores them. When both
// builds fail, the error of a comes first so its kind decides the exit code.
func (s *session) compare(ctx context.Context, a, b natal.BirthInput) (synastry.Result, error) {
	var (
		charts [2]*natal.Chart
		errs   [2]error
	)
	p := pool.New().WithContext(ctx)
	for i, in := range []natal.BirthInput{a, b} {
		i, in := i, in
		p.Go(func(ctx context.Context) error {
			charts[i], errs[i] = s.chart(ctx, in)
			return nil
		})
	}
	_ = p.Wait()
	if err := errors.Join(errs[:]...); err != nil {
		return synastry.Result{}, err
	}

	r := s.comparer.Compare(charts[0], charts[1])
	s.record(telemetry.KindCompareDone, a.Name+" & "+b.Name, map[string]any{
		"overall": r.Overall,
		"band":    r.Band,
		"aspects": len(r.Aspects),
	})
	return r, nil
}

// emit writes either the JSON encoding of v or the rendered report to w, or
// to path when one is given.
func (s *session) emit(w io.Writer, path string, v any, render func() string) error {
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if s.cfg.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
	} else if _, err := fmt.Fprintln(w, render()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if path != "" {
		s.printer.Success("report saved to " + path)
	}
	return nil
}
