package telemetry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

var errNoKind = errors.New("telemetry: decode: event has no kind")

// Line is one raw line of a trail and the event decoded from it. Err is set
// when the line is not a valid event.
type Line struct {
	Raw   string
	Event Event
	Err   error
}

// Decode parses a single trail line.
func Decode(raw []byte) Line {
	raw = bytes.TrimSpace(raw)
	l := Line{Raw: string(raw)}
	if err := json.Unmarshal(raw, &l.Event); err != nil {
		l.Err = fmt.Errorf("telemetry: decode: %w", err)
	} else if l.Event.Kind == "" {
		l.Err = errNoKind
	}
	return l
}

// Scan calls fn with every non-blank line of r, in order.
func Scan(r io.Reader, fn func(Line)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		fn(Decode(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("telemetry: scan: %w", err)
	}
	return nil
}

// String renders the event on one line for people:
//
//	[15:04:05] compare_done run=0b6f1c2e#3 subject="Rui & Kenji" aspects=25
func (e Event) String() string {
	parts := []string{"[" + e.Timestamp.Format(time.TimeOnly) + "]", string(e.Kind)}
	if e.Run != "" {
		run := shortRun(e.Run)
		if e.Seq > 0 {
			run = fmt.Sprintf("%s#%d", run, e.Seq)
		}
		parts = append(parts, "run="+run)
	}
	if e.Subject != "" {
		parts = append(parts, fmt.Sprintf("subject=%q", e.Subject))
	}
	switch d := e.Data.(type) {
	case nil:
	case map[string]any:
		if len(d) > 0 {
			parts = append(parts, pairs(d))
		}
	default:
		raw, _ := json.Marshal(d)
		parts = append(parts, string(raw))
	}
	return strings.Join(parts, " ")
}

// shortRun keeps the first block of a UUID.
func shortRun(id string) string {
	if head, _, ok := strings.Cut(id, "-"); ok && head != "" {
		return head
	}
	return id
}

func pairs(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return strings.Join(out, " ")
}
