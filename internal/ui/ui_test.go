package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/papapumpkin/astrolabe/internal/ephemeris"
	"github.com/papapumpkin/astrolabe/internal/natal"
	"github.com/papapumpkin/astrolabe/internal/synastry"
)

func loadChart(t *testing.T, label, name string) *natal.Chart {
	t.Helper()
	tbl, err := ephemeris.LoadTable("../ephemeris/testdata/ephemeris.toml")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	e, ok := tbl.Lookup(label)
	if !ok {
		t.Fatalf("no table entry %q", label)
	}
	c, err := natal.NewBuilder(tbl, nil, 0).Build(context.Background(), e.UTC, e.Latitude, e.Longitude)
	if err != nil {
		t.Fatalf("Build(%s): %v", label, err)
	}
	d := c.Data()
	d.Birth.Name = name
	named, err := natal.Assemble(d.Birth, c.Sky())
	if err != nil {
		t.Fatalf("Assemble(%s): %v", label, err)
	}
	return named
}

func TestPrinterOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewTo(&buf)
	p.Info("loading tables")
	p.Debug("hidden")
	p.SetVerbose(true)
	p.Debug("shown")
	p.Error("boom")
	p.Success("done")

	out := buf.String()
	for _, want := range []string{"loading tables", "shown", "error:", "boom", iconOK + " done"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line printed without verbose:\n%s", out)
	}
}

func TestPrinterProblems(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		errs []error
		want []string
	}{
		{
			name: "clean",
			want: []string{iconOK, "places.toml: 4 entries, no problems"},
		},
		{
			name: "problems",
			errs: []error{errors.New("place 2: latitude 91 out of range"), errors.New("place 3: empty timezone")},
			want: []string{iconFailed, "places.toml: 2 problem(s)", "latitude 91 out of range", "empty timezone"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			NewTo(&buf).Problems("places.toml", 4, tt.errs)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestNatalReport(t *testing.T) {
	t.Parallel()
	out := NatalReport(loadChart(t, "rui", "Rui"))

	checks := []struct {
		name   string
		substr string
	}{
		{"title", "Natal chart: Rui"},
		{"big three", "The Big Three"},
		{"sun sign", "Gemini"},
		{"rising sign", "Cancer"},
		{"stellium section", "Stelliums"},
		{"house stellium", "House 11"},
		{"ordinal house", "11th house"},
		{"sign stellium", "4 planets"},
		{"mbti", "ENTJ"},
		{"enneagram", "1w9"},
		{"dominant planet", "Sun"},
	}
	for _, c := range checks {
		if !strings.Contains(out, c.substr) {
			t.Errorf("expected report to contain %s (%q), got:\n%s", c.name, c.substr, out)
		}
	}
}

func TestNatalReportOmitsEmptyStelliums(t *testing.T) {
	t.Parallel()
	out := NatalReport(loadChart(t, "kenji", "Kenji"))
	if strings.Contains(out, "Stelliums") {
		t.Errorf("report lists a stellium section for a chart without stelliums:\n%s", out)
	}
}

func TestCompatibilityReport(t *testing.T) {
	t.Parallel()
	r := synastry.Compare(loadChart(t, "rui", "Rui"), loadChart(t, "kenji", "Kenji"))
	out := CompatibilityReport(r)

	checks := []string{
		"Compatibility: Rui & Kenji",
		"73.9/100",
		"Good",
		"Strong potential",
		"Conflict Resolution",
		"ENTJ + INTP",
		"1w9 + 2w3",
		"TRINE",
		"more",
		"Multiple harmonious planetary connections",
		"Best case",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestCompatibilityReportWithoutAspects(t *testing.T) {
	t.Parallel()
	out := CompatibilityReport(synastry.Result{Band: synastry.BandChallenging})
	for _, want := range []string{"Chart A & Chart B", "No aspects within orb", "Significant work needed"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestScoreBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score float64
		full  int
	}{
		{0, 0},
		{50, 10},
		{72, 14},
		{100, 20},
		{130, 20},
	}
	for _, tt := range tests {
		tt := tt
		bar := scoreBar(tt.score)
		if got := strings.Count(bar, barFull); got != tt.full {
			t.Errorf("scoreBar(%v) has %d full cells, want %d", tt.score, got, tt.full)
		}
		if got := strings.Count(bar, barFull) + strings.Count(bar, barEmpty); got != scoreBarWidth {
			t.Errorf("scoreBar(%v) width = %d, want %d", tt.score, got, scoreBarWidth)
		}
	}
}
