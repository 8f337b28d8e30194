package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory.
// Используется для --trace-mode=ring: дамп пишется только если прогон упал.
type RingTracer struct {
	mu      sync.Mutex
	buf     []Event
	written uint64 // всего принято событий; buf[written%len(buf)] - следующий слот
	level   Level
}

// NewRingTracer creates a new RingTracer with specified capacity (4096 if <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{
		buf:   make([]Event, capacity),
		level: level,
	}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat && !isError(ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.written%uint64(len(t.buf))] = stored
	t.written++
}

// Snapshot returns the retained events oldest first and how many older
// events were overwritten.
func (t *RingTracer) Snapshot() (events []Event, overwritten uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := uint64(len(t.buf))
	if t.written <= size {
		return append([]Event(nil), t.buf[:t.written]...), 0
	}
	head := t.written % size
	events = make([]Event, 0, size)
	events = append(events, t.buf[head:]...)
	events = append(events, t.buf[:head]...)
	return events, t.written - size
}

// Dump writes the retained events to w, preceded by a note when older events
// were lost.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events, overwritten := t.Snapshot()
	if overwritten > 0 && format == FormatText {
		if _, err := fmt.Fprintf(w, "... %d earlier trace events dropped\n", overwritten); err != nil {
			return err
		}
	}
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op: everything is in memory.
func (t *RingTracer) Flush() error { return nil }

// Close is a no-op for RingTracer.
func (t *RingTracer) Close() error { return nil }

// Level returns the current tracing level.
func (t *RingTracer) Level() Level { return t.level }

// Enabled returns true if tracing is active.
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
