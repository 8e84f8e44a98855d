package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/astrolabe/internal/telemetry"
)

// followDelay batches appends seen while following the trail.
const followDelay = 50 * time.Millisecond

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Show the recorded event trail",
	Long: `Prints the JSONL trail that natal, compare, and watch append to when
telemetry_file (or --telemetry) is set, one event per line.

--kind keeps only events of one kind, --run keeps only events whose run ID
starts with the given prefix, and --follow (-f) keeps printing new events as
they are appended until interrupted.`,
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().String("kind", "", "only show events of this kind (e.g. chart_failed)")
	telemetryCmd.Flags().String("run", "", "only show events whose run ID starts with this prefix")
	telemetryCmd.Flags().BoolP("follow", "f", false, "keep printing events as they are appended")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, _ []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	run, _ := cmd.Flags().GetString("run")
	follow, _ := cmd.Flags().GetBool("follow")

	path := viper.GetString("telemetry_file")
	if path == "" {
		return fmt.Errorf("no telemetry file configured (set telemetry_file or --telemetry)")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening telemetry file: %w", err)
	}
	defer f.Close()

	v := &trailViewer{
		w:    cmd.OutOrStdout(),
		r:    bufio.NewReader(f),
		kind: telemetry.Kind(kind),
		run:  run,
	}
	v.drain()
	if !follow {
		v.flush()
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchFiles(ctx, []string{path}, followDelay, v.drain)
}

// trailViewer prints trail lines as they become complete. A trailing line
// without a newline is held back until the writer finishes it.
type trailViewer struct {
	w       io.Writer
	r       *bufio.Reader
	kind    telemetry.Kind
	run     string
	pending string
}

// drain prints every complete line read so far.
func (v *trailViewer) drain() {
	for {
		s, err := v.r.ReadString('\n')
		v.pending += s
		if err != nil {
			return
		}
		v.flush()
	}
}

// flush prints whatever is pending, complete or not.
func (v *trailViewer) flush() {
	raw := strings.TrimSpace(v.pending)
	v.pending = ""
	if raw != "" {
		v.print(telemetry.Decode([]byte(raw)))
	}
}

func (v *trailViewer) print(l telemetry.Line) {
	if l.Err != nil {
		fmt.Fprintf(v.w, "??? %s\n", l.Raw)
		return
	}
	if v.kind != "" && l.Event.Kind != v.kind {
		return
	}
	if v.run != "" && !strings.HasPrefix(l.Event.Run, v.run) {
		return
	}
	fmt.Fprintln(v.w, l.Event.String())
}
