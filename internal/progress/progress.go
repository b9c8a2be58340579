// Package progress simulates the staged preparation of a match report.
package progress

import (
	"context"
	"math"
	"time"

	"github.com/rotisserie/eris"
)

// Steps are the labels shown while a report is prepared, in order.
var Steps = []string{
	"Reading file data...",
	"Processing records...",
	"Analyzing match quality...",
	"Generating insights...",
	"Report ready!",
}

// Options sets the simulation timings.
type Options struct {
	Total time.Duration
	Step  time.Duration
	Tick  time.Duration
}

// DefaultOptions returns the standard 7s run with a step every 1.3s.
func DefaultOptions() Options {
	return Options{
		Total: 7000 * time.Millisecond,
		Step:  1300 * time.Millisecond,
		Tick:  80 * time.Millisecond,
	}
}

func (o Options) validate() error {
	if o.Total <= 0 || o.Step <= 0 || o.Tick <= 0 {
		return eris.Errorf("progress: durations must be positive (total=%s step=%s tick=%s)", o.Total, o.Step, o.Tick)
	}
	return nil
}

// StepStatus is the display state of one step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
)

// StepView pairs a step label with its status.
type StepView struct {
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
}

// Update is one observation of the simulation.
type Update struct {
	JobID      string     `json:"job_id"`
	ActiveStep int        `json:"active_step"`
	Progress   int        `json:"progress"`
	Complete   bool       `json:"complete"`
	Steps      []StepView `json:"steps"`
}

func newUpdate(jobID string, active, pct int, complete bool) Update {
	views := make([]StepView, len(Steps))
	for i, label := range Steps {
		status := StepPending
		switch {
		case i < active || (i == active && complete):
			status = StepCompleted
		case i == active:
			status = StepActive
		}
		views[i] = StepView{Label: label, Status: status}
	}
	return Update{JobID: jobID, ActiveStep: active, Progress: pct, Complete: complete, Steps: views}
}

// percent is round(elapsed/total*100) capped at 100.
func percent(elapsed, total time.Duration) int {
	p := int(math.Round(float64(elapsed) / float64(total) * 100))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Run drives the simulation for jobID, calling emit with the initial state,
// on every progress tick and on every step change. It returns nil once
// progress reaches 100 and ctx.Err() if cancelled first; no emit happens
// after Run returns.
func Run(ctx context.Context, jobID string, opts Options, emit func(Update)) error {
	if err := opts.validate(); err != nil {
		return err
	}

	start := time.Now()
	active, pct := 0, 0
	emit(newUpdate(jobID, active, pct, false))

	tick := time.NewTicker(opts.Tick)
	defer tick.Stop()
	step := time.NewTicker(opts.Step)
	defer step.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-step.C:
			if active < len(Steps)-1 {
				active++
				emit(newUpdate(jobID, active, pct, false))
			}
		case <-tick.C:
			pct = percent(time.Since(start), opts.Total)
			if pct >= 100 {
				emit(newUpdate(jobID, active, 100, true))
				return nil
			}
			emit(newUpdate(jobID, active, pct, false))
		}
	}
}

// Stream runs the simulation in a goroutine and delivers updates on the
// returned channel, which is closed when the run ends. Updates are dropped
// rather than blocking when the receiver falls behind, except the final one.
func Stream(ctx context.Context, jobID string, opts Options) (<-chan Update, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ch := make(chan Update, 8)
	go func() {
		defer close(ch)
		_ = Run(ctx, jobID, opts, func(u Update) {
			if u.Complete {
				select {
				case ch <- u:
				case <-ctx.Done():
				}
				return
			}
			select {
			case ch <- u:
			default:
			}
		})
	}()
	return ch, nil
}
