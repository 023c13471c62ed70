package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the viewer loop does. The loop records; anything may
// read a Snapshot.
type Metrics struct {
	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	// Input handling
	keyCount     atomic.Uint64
	inputDropped atomic.Uint64
	resizeCount  atomic.Uint64

	// Config and script
	reloadCount   atomic.Uint64
	scriptErrors  atomic.Uint64
	scriptActions atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	for {
		old := m.renderMaxNs.Load()
		if ns <= old {
			break
		}
		if m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordKey records a processed key event.
func (m *Metrics) RecordKey() { m.keyCount.Add(1) }

// RecordInputDropped records an input event lost to a full queue.
func (m *Metrics) RecordInputDropped() { m.inputDropped.Add(1) }

// RecordResize records a terminal resize.
func (m *Metrics) RecordResize() { m.resizeCount.Add(1) }

// RecordReload records a config reload attempt.
func (m *Metrics) RecordReload() { m.reloadCount.Add(1) }

// RecordScriptError records a failed script call.
func (m *Metrics) RecordScriptError() { m.scriptErrors.Add(1) }

// RecordScriptActions records requests drained from the script engine.
func (m *Metrics) RecordScriptActions(n int) { m.scriptActions.Add(uint64(n)) }

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renders := m.renderCount.Load()

	var avg time.Duration
	if renders > 0 {
		avg = time.Duration(m.renderTotalNs.Load() / int64(renders))
	}

	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		RenderCount:   renders,
		AvgRender:     avg,
		MaxRender:     time.Duration(m.renderMaxNs.Load()),
		KeyCount:      m.keyCount.Load(),
		InputDropped:  m.inputDropped.Load(),
		ResizeCount:   m.resizeCount.Load(),
		ReloadCount:   m.reloadCount.Load(),
		ScriptErrors:  m.scriptErrors.Load(),
		ScriptActions: m.scriptActions.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	RenderCount   uint64
	AvgRender     time.Duration
	MaxRender     time.Duration
	KeyCount      uint64
	InputDropped  uint64
	ResizeCount   uint64
	ReloadCount   uint64
	ScriptErrors  uint64
	ScriptActions uint64
}

// Fields returns the snapshot as log fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"uptime":         s.Uptime.Round(time.Millisecond),
		"renders":        s.RenderCount,
		"render_avg":     s.AvgRender,
		"render_max":     s.MaxRender,
		"keys":           s.KeyCount,
		"input_dropped":  s.InputDropped,
		"resizes":        s.ResizeCount,
		"reloads":        s.ReloadCount,
		"script_errors":  s.ScriptErrors,
		"script_actions": s.ScriptActions,
	}
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
