package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }

// getGoroutineID парсит "goroutine N [" из runtime.Stack. Дорого, поэтому
// вызывается один раз на span, End переиспользует значение.
func getGoroutineID() uint64 {
	var buf [64]byte
	line := buf[:runtime.Stack(buf[:], false)]
	line, ok := bytes.CutPrefix(line, []byte("goroutine "))
	if !ok {
		return 0
	}
	if end := bytes.IndexByte(line, ' '); end >= 0 {
		line = line[:end]
	}
	gid, err := strconv.ParseUint(string(line), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span: открытый интервал. Нулевой Span (трассировка выключена или scope
// отфильтрован) безопасен: End и WithExtra ничего не делают.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

// Start открывает span, родителем которого становится текущий span из ctx,
// и возвращает контекст с новым span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return ctx, &Span{}
	}
	sp := &Span{
		tracer: t,
		begin: Event{
			Time:     time.Now(),
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   nextSpanID(),
			ParentID: CurrentSpan(ctx).SpanID,
			GID:      getGoroutineID(),
			Name:     name,
		},
	}
	ev := sp.begin
	t.Emit(&ev)
	return WithSpanContext(ctx, SpanContext{SpanID: sp.begin.SpanID, GID: sp.begin.GID}), sp
}

// End emits the closing event with detail and the span's duration under the
// "dur" key, and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	dur := now.Sub(s.begin.Time)
	ev := s.begin
	ev.Time = now
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	if ev.Extra == nil {
		ev.Extra = make(map[string]string, 1)
	}
	ev.Extra["dur"] = dur.Round(time.Microsecond).String()
	s.tracer.Emit(&ev)
	s.tracer = nil
	return dur
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Point emits an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: CurrentSpan(ctx).SpanID,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
	})
}

// Error emits an error point. Errors pass the filter at every level above off.
func Error(ctx context.Context, name string, err error) {
	t := FromContext(ctx)
	if err == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    ScopeDriver,
		ParentID: CurrentSpan(ctx).SpanID,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   err.Error(),
		Extra:    map[string]string{errorKey: "true"},
	})
}

const errorKey = "error"

func isError(ev *Event) bool {
	return ev.Kind == KindPoint && ev.Extra[errorKey] == "true"
}
