package entities

import (
	"fmt"
	"math"
)

// Driver represents a driver in the simulation.
//
// Location is where the driver currently is. Destination is non-nil only
// while the driver is en route somewhere; a parked driver has a nil
// destination. Speed is in grid units per time unit.
type Driver struct {
	ID          string    `json:"id"`
	Location    Location  `json:"location"`
	IsIdle      bool      `json:"is_idle"`
	Destination *Location `json:"destination,omitempty"`
	Speed       int       `json:"speed"`
}

// NewDriver creates an idle Driver at the given location.
func NewDriver(id string, location Location, speed int) *Driver {
	return &Driver{
		ID:       id,
		Location: location,
		IsIdle:   true,
		Speed:    speed,
	}
}

// String returns a diagnostic form embedding id, location, idleness,
// speed and destination.
func (d *Driver) String() string {
	dest := "none"
	if d.Destination != nil {
		dest = d.Destination.String()
	}
	return fmt.Sprintf("Driver(%s, %s, %t, %d, %s)",
		d.ID, d.Location, d.IsIdle, d.Speed, dest)
}

// SameDriver reports whether other names the same driver, by ID alone.
func (d *Driver) SameDriver(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.ID == other.ID
}

// TravelTime returns the time to reach destination from the driver's
// current location, rounded to the nearest integer.
func (d *Driver) TravelTime(destination Location) int {
	distance := ManhattanDistance(d.Location, destination)
	return int(math.Round(float64(distance) / float64(d.Speed)))
}

// StartDrive starts driving to location and returns the travel time.
func (d *Driver) StartDrive(location Location) int {
	d.IsIdle = false
	travelTime := d.TravelTime(location)
	dest := location
	d.Destination = &dest
	return travelTime
}

// EndDrive arrives at the destination. The driver stays busy: ending a
// drive means reaching the rider, not becoming free.
//
// Precondition: Destination is non-nil.
func (d *Driver) EndDrive() {
	d.Location = *d.Destination
	d.Destination = nil
}

// StartRide begins carrying rider to their destination and returns the
// travel time for the ride.
func (d *Driver) StartRide(rider *Rider) int {
	d.IsIdle = false
	dest := rider.Destination
	d.Destination = &dest
	return d.TravelTime(rider.Destination)
}

// EndRide completes the current ride, arriving at the rider's destination
// and becoming idle again.
//
// Precondition: Destination is non-nil.
func (d *Driver) EndRide() {
	d.IsIdle = true
	d.Location = *d.Destination
	d.Destination = nil
}

// Park clears any in-progress drive and marks the driver idle. Used when
// a pickup finds the rider already cancelled.
func (d *Driver) Park() {
	d.Destination = nil
	d.IsIdle = true
}
