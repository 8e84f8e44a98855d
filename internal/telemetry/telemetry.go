// Package telemetry keeps an append-only JSONL trail of chart builds and
// comparisons. Every line written by one Log shares a run ID and carries a
// sequence number, so runs that interleave in a single file stay separable.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind tags what happened.
type Kind string

// Event kinds.
const (
	KindTablesLoaded Kind = "tables_loaded"
	KindChartBuilt   Kind = "chart_built"
	KindChartFailed  Kind = "chart_failed"
	KindCompareDone  Kind = "compare_done"
	KindWatchRerun   Kind = "watch_rerun"
)

// Event is one line of the trail. Subject names the person or pair the event
// is about; Data holds kind-specific fields.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      Kind      `json:"kind"`
	Run       string    `json:"run,omitempty"`
	Seq       uint64    `json:"seq,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Log appends events to a writer. It is safe for concurrent use, and a nil
// *Log silently drops everything.
type Log struct {
	mu     sync.Mutex
	enc    *json.Encoder
	closer io.Closer
	run    string
	seq    uint64
	now    func() time.Time
}

// Open appends to the file at path, creating it if needed.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	l := NewLog(f)
	l.closer = f
	return l, nil
}

// NewLog writes to w under a fresh run ID. Closing the Log does not close w.
func NewLog(w io.Writer) *Log {
	return &Log{enc: json.NewEncoder(w), run: uuid.NewString(), now: time.Now}
}

// Run returns the run ID, or "" for a nil Log.
func (l *Log) Run() string {
	if l == nil {
		return ""
	}
	return l.run
}

// Record writes one event stamped with the current UTC time, the run ID, and
// the next sequence number.
func (l *Log) Record(kind Kind, subject string, data any) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	evt := Event{
		Timestamp: l.now().UTC(),
		Kind:      kind,
		Run:       l.run,
		Seq:       l.seq,
		Subject:   subject,
		Data:      data,
	}
	if err := l.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: write %s: %w", kind, err)
	}
	return nil
}

// Close releases the file opened by Open.
func (l *Log) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.closer.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	l.closer = nil
	return nil
}
