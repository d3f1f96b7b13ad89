package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase accumulates every run of one named phase.
type Phase struct {
	Name string
	Runs int
	Dur  time.Duration
	Note string
}

// Timer collects phase durations. Phases with the same name are merged, so a
// directory run reports one "expand" line for all files. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	index  map[string]int
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), index: make(map[string]int, 8)}
}

// Begin starts a run of the named phase and returns a handle for End.
func (t *Timer) Begin(name string) Mark {
	return Mark{name: name, start: time.Now()}
}

// Mark is an open phase run.
type Mark struct {
	name  string
	start time.Time
}

// End closes the run and folds it into the phase.
func (t *Timer) End(m Mark, note string) {
	if m.name == "" {
		return
	}
	t.Add(m.name, time.Since(m.start), note)
}

// Add records one run of name lasting d.
func (t *Timer) Add(name string, d time.Duration, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.index[name]
	if !ok {
		idx = len(t.phases)
		t.index[name] = idx
		t.phases = append(t.phases, Phase{Name: name})
	}
	p := &t.phases[idx]
	p.Runs++
	p.Dur += d
	if note != "" {
		p.Note = note
	}
}

// Summary renders the timer for stderr.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%d", p.Name, p.DurationMS, p.Runs)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport: сериализуемое представление фазы.
type PhaseReport struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report: агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report снимает копию фаз в порядке первого появления.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		report.Phases[i] = PhaseReport{
			Name:       p.Name,
			Runs:       p.Runs,
			DurationMS: durationToMillis(p.Dur),
			Note:       p.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
