package entities

import "fmt"

// RiderStatus is a typed string enum representing the rider's current
// lifecycle state. String values are used (rather than iota ints) because
// they serialize cleanly to JSON and the runs database.
type RiderStatus string

const (
	RiderStatusWaiting   RiderStatus = "waiting"
	RiderStatusCancelled RiderStatus = "cancelled"
	RiderStatusSatisfied RiderStatus = "satisfied"
)

// Rider represents one passenger's ride request in the simulation.
//
// ID, Patience, Origin and Destination are fixed at construction. Patience
// is the number of time units the rider waits before the simulation
// schedules their cancellation; the rider itself never counts it down.
// Status starts at waiting and only changes through Cancel and
// MarkSatisfied. The entity deliberately does not guard transitions —
// re-cancelling or satisfying an already-cancelled rider just re-assigns
// the field. The surrounding simulation is responsible for calling each
// mutator at most once.
type Rider struct {
	ID          string      `json:"id"`
	Patience    int         `json:"patience"`
	Origin      Location    `json:"origin"`
	Destination Location    `json:"destination"`
	Status      RiderStatus `json:"status"`
}

// NewRider creates a Rider with status set to waiting. No validation is
// performed on the inputs.
func NewRider(id string, patience int, origin, destination Location) *Rider {
	return &Rider{
		ID:          id,
		Patience:    patience,
		Origin:      origin,
		Destination: destination,
		Status:      RiderStatusWaiting,
	}
}

// String returns a diagnostic form embedding all five attributes in a
// fixed order: id, patience, origin, destination, status.
func (r *Rider) String() string {
	return fmt.Sprintf("Rider(%s, %d, %s, %s, %s)",
		r.ID, r.Patience, r.Origin, r.Destination, r.Status)
}

// SameRider reports whether other names the same rider. Identity is
// defined by ID alone: two riders with equal IDs are the same rider even
// if every other attribute differs. This is intentionally not structural
// equality, so callers must use this method rather than ==.
func (r *Rider) SameRider(other *Rider) bool {
	if other == nil {
		return false
	}
	return r.ID == other.ID
}

// Cancel sets the rider's status to cancelled. There is no guard against
// the rider already being cancelled or satisfied.
func (r *Rider) Cancel() {
	r.Status = RiderStatusCancelled
}

// MarkSatisfied sets the rider's status to satisfied, with the same lack
// of guards as Cancel.
func (r *Rider) MarkSatisfied() {
	r.Status = RiderStatusSatisfied
}
