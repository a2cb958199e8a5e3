package entities

import "time"

// SimulationRun records one executed scenario: the event source that was
// submitted, how many events the engine processed, and the report figures.
type SimulationRun struct {
	ID                  string    `json:"id"`
	Source              string    `json:"source"`
	EventsProcessed     int       `json:"events_processed"`
	RiderWaitTime       float64   `json:"rider_wait_time"`
	DriverTotalDistance float64   `json:"driver_total_distance"`
	DriverRideDistance  float64   `json:"driver_ride_distance"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewSimulationRun creates a SimulationRun stamped with the current time.
func NewSimulationRun(id, source string) *SimulationRun {
	return &SimulationRun{
		ID:        id,
		Source:    source,
		CreatedAt: time.Now(),
	}
}
