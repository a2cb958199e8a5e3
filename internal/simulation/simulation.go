package simulation

import (
	"ridesim/internal/dispatch"
)

// Result is what a finished run produces: the computed report and how many
// events were processed along the way.
type Result struct {
	Report          Report `json:"report"`
	EventsProcessed int    `json:"events_processed"`
}

// Simulation runs scenarios: it drains an event queue against a fresh
// dispatcher and monitor, queueing whatever events each one spawns.
type Simulation struct{}

// NewSimulation creates a Simulation.
func NewSimulation() *Simulation {
	return &Simulation{}
}

// Run processes the initial events and everything they spawn, in timestamp
// order, and returns the run's result.
func (s *Simulation) Run(initial []Event) Result {
	dispatcher := dispatch.NewDispatcher()
	monitor := NewMonitor()
	queue := NewEventQueue(initial)

	processed := 0
	for queue.Len() > 0 {
		event := queue.Pop()
		processed++
		for _, spawned := range event.Do(dispatcher, monitor) {
			queue.Push(spawned)
		}
	}

	return Result{
		Report:          monitor.Report(),
		EventsProcessed: processed,
	}
}
