// Package sim runs the beacon scheduler against a virtual clock and records
// the resulting output edges.
package sim

import (
	"strings"

	"funkbake/config"
	"funkbake/core"
)

// Edge is one output level change
type Edge struct {
	AtMs    uint64
	Channel core.Channel
	On      bool
}

// Recorder is a core.Keyer that logs level changes against a virtual clock.
// Repeated writes of the same level are not edges and are dropped.
type Recorder struct {
	clock *core.VirtualClock
	state [core.NumChannels]bool
	edges []Edge
}

// NewRecorder creates a recorder reading time from clock
func NewRecorder(clock *core.VirtualClock) *Recorder {
	return &Recorder{clock: clock}
}

// Set implements core.Keyer
func (r *Recorder) Set(ch core.Channel, on bool) {
	if ch >= core.NumChannels || r.state[ch] == on {
		return
	}
	r.state[ch] = on
	r.edges = append(r.edges, Edge{AtMs: r.clock.Now(), Channel: ch, On: on})
}

// Edges returns the recorded edges in time order
func (r *Recorder) Edges() []Edge {
	return r.edges
}

// Level returns the current output level
func (r *Recorder) Level(ch core.Channel) bool {
	if ch >= core.NumChannels {
		return false
	}
	return r.state[ch]
}

// OnTime sums the time a channel was on up to untilMs
func (r *Recorder) OnTime(ch core.Channel, untilMs uint64) uint64 {
	var total uint64
	var since uint64
	on := false
	for _, e := range r.edges {
		if e.Channel != ch || e.AtMs > untilMs {
			continue
		}
		if e.On && !on {
			since = e.AtMs
		} else if !e.On && on {
			total += e.AtMs - since
		}
		on = e.On
	}
	if on {
		total += untilMs - since
	}
	return total
}

// Simulation is a complete beacon on a virtual clock
type Simulation struct {
	Clock     *core.VirtualClock
	Recorder  *Recorder
	Scheduler *core.Scheduler
}

// New builds a simulation from a configuration with the selector fixed at
// a raw line value.
func New(cfg *config.BeaconConfig, raw uint8) *Simulation {
	clock := core.NewVirtualClock()
	rec := NewRecorder(clock)
	sched := core.NewScheduler(cfg.Timing(), cfg.PresetTable(), core.FixedSelector(raw), rec, clock)
	return &Simulation{
		Clock:     clock,
		Recorder:  rec,
		Scheduler: sched,
	}
}

// Run executes n cycles
func (s *Simulation) Run(n int) []core.CycleReport {
	return s.Scheduler.RunCycles(n)
}

// RenderPlan draws a plan as one character per dit unit: '=' keyed,
// '.' for a symbol space and ' ' for gaps.
func RenderPlan(p core.Plan) string {
	var b strings.Builder
	b.Grow(int(p.Units))
	for _, a := range p.Actions {
		c := " "
		switch a.Element {
		case core.Mark:
			c = "="
		case core.Space:
			c = "."
		}
		b.WriteString(strings.Repeat(c, int(a.Units)))
	}
	return b.String()
}
