package trace

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat event every interval until the returned
// stop is called. Each beat carries the goroutine count and live heap size,
// so a stalled lint run shows up as beats with no file spans between them.
// stop is idempotent and waits for the loop to exit.
func StartHeartbeat(tracer Tracer, interval time.Duration) (stop func()) {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		beat(ctx, tracer, interval)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func beat(ctx context.Context, tracer Tracer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var n uint64
	var ms runtime.MemStats
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		n++
		runtime.ReadMemStats(&ms)
		tracer.Emit(&Event{
			Time:   time.Now(),
			Kind:   KindHeartbeat,
			Scope:  ScopeDriver,
			GID:    getGoroutineID(),
			Name:   "heartbeat",
			Detail: "#" + strconv.FormatUint(n, 10),
			Extra: map[string]string{
				"goroutines": strconv.Itoa(runtime.NumGoroutine()),
				"heap_kb":    strconv.FormatUint(ms.HeapAlloc/1024, 10),
			},
		})
	}
}
