// Package observ measures where a check run spends its time: sequential
// phases of the driver plus per-file stages aggregated over all workers.
package observ

import (
	"sort"
	"sync"
	"time"
)

// Phase: один последовательный этап прогона (discover, load, lint).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

type stageAgg struct {
	count int
	total time.Duration
	max   time.Duration
}

// Timer tracks driver phases and per-file stage totals.
// Begin/End are for the driver goroutine; Observe is safe for concurrent use.
type Timer struct {
	phases []Phase

	mu     sync.Mutex
	stages map[string]*stageAgg
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{
		phases: make([]Phase, 0, 4),
		stages: make(map[string]*stageAgg),
	}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Observe adds one file's duration for stage (parse, analyze, cache).
func (t *Timer) Observe(stage string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	agg := t.stages[stage]
	if agg == nil {
		agg = &stageAgg{}
		t.stages[stage] = agg
	}
	agg.count++
	agg.total += d
	agg.max = max(agg.max, d)
}

// Since is a shorthand for Observe(stage, time.Since(start)).
func (t *Timer) Since(stage string, start time.Time) {
	t.Observe(stage, time.Since(start))
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// StageReport: сумма по файлам. TotalMS складывается по воркерам и может
// превышать длительность фазы lint.
type StageReport struct {
	Name    string  `json:"name"`
	Files   int     `json:"files"`
	TotalMS float64 `json:"total_ms"`
	MaxMS   float64 `json:"max_ms"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
	Stages  []StageReport `json:"stages,omitempty"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
// Stages are sorted by name.
func (t *Timer) Report() Report {
	var report Report
	var total time.Duration
	for _, phase := range t.phases {
		total += phase.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	report.TotalMS = durationToMillis(total)

	t.mu.Lock()
	defer t.mu.Unlock()
	for name, agg := range t.stages {
		report.Stages = append(report.Stages, StageReport{
			Name:    name,
			Files:   agg.count,
			TotalMS: durationToMillis(agg.total),
			MaxMS:   durationToMillis(agg.max),
		})
	}
	sort.Slice(report.Stages, func(i, j int) bool {
		return report.Stages[i].Name < report.Stages[j].Name
	})
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
