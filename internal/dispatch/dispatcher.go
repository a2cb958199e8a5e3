// Package dispatch pairs riders with drivers.
//
// When a rider requests a driver, the dispatcher assigns the nearest idle
// driver. If none is available the rider is placed on a waiting list for the
// next driver that asks for work. When a driver requests a rider, the
// dispatcher registers the driver (first time only) and hands over the
// longest-waiting rider, if any.
package dispatch

import (
	"fmt"
	"sync"

	"ridesim/internal/domain/entities"
)

// Dispatcher holds the driver registry and the rider waiting list. It is
// safe for concurrent use; the HTTP layer calls it from handler goroutines
// while the simulation drives it single-threaded.
type Dispatcher struct {
	mu            sync.Mutex
	drivers       []*entities.Driver
	waitingRiders []*entities.Rider
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// String summarizes the dispatcher's registry and waiting list sizes.
func (d *Dispatcher) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fmt.Sprintf("Dispatcher(%d drivers, %d waiting riders)",
		len(d.drivers), len(d.waitingRiders))
}

// RequestDriver assigns the idle driver closest (by travel time) to the
// rider's origin and returns the driver with the pickup ETA. Ties go to
// the driver registered first. The assignment commits before the lock is
// released — the driver has already started driving to the rider's origin
// — so concurrent requests can never be handed the same driver. When no
// driver is free the rider is added to the waiting list and nil is
// returned.
func (d *Dispatcher) RequestDriver(rider *entities.Rider) (*entities.Driver, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var closest *entities.Driver
	for _, driver := range d.drivers {
		// A driver with a destination is committed to a pickup or ride
		// even if not yet flagged busy.
		if !driver.IsIdle || driver.Destination != nil {
			continue
		}
		if closest == nil ||
			driver.TravelTime(rider.Origin) < closest.TravelTime(rider.Origin) {
			closest = driver
		}
	}

	if closest == nil {
		d.waitingRiders = append(d.waitingRiders, rider)
		return nil, 0
	}
	return closest, closest.StartDrive(rider.Origin)
}

// RequestRider hands the longest-waiting rider to the driver, or nil if no
// rider is waiting. Unseen drivers are registered for future RequestDriver
// calls. Like RequestDriver, the hand-over commits under the lock: the
// driver is already en route to the returned rider's origin, and the int
// is the pickup ETA.
func (d *Dispatcher) RequestRider(driver *entities.Driver) (*entities.Rider, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.registered(driver) {
		d.drivers = append(d.drivers, driver)
	}
	return d.popRider(driver)
}

// Announce is the live-service variant of RequestRider: the driver reports
// in with a fresh position and speed, so any stale in-progress drive is
// abandoned and the driver is parked before a waiting rider is handed
// over. All of that happens under the lock, so the driver never appears
// half-updated to a concurrent RequestDriver.
func (d *Dispatcher) Announce(driver *entities.Driver, location entities.Location, speed int) (*entities.Rider, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	driver.Location = location
	driver.Speed = speed
	driver.Park()

	if !d.registered(driver) {
		d.drivers = append(d.drivers, driver)
	}
	return d.popRider(driver)
}

// popRider pops the head of the waiting list and starts the driver toward
// them. Callers must hold d.mu.
func (d *Dispatcher) popRider(driver *entities.Driver) (*entities.Rider, int) {
	if len(d.waitingRiders) == 0 {
		return nil, 0
	}
	rider := d.waitingRiders[0]
	d.waitingRiders = d.waitingRiders[1:]
	return rider, driver.StartDrive(rider.Origin)
}

// CancelRide removes the rider from the waiting list if present and marks
// the rider cancelled.
func (d *Dispatcher) CancelRide(rider *entities.Rider) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, waiting := range d.waitingRiders {
		if waiting.SameRider(rider) {
			d.waitingRiders = append(d.waitingRiders[:i], d.waitingRiders[i+1:]...)
			break
		}
	}
	rider.Cancel()
}

// WaitingCount returns the number of riders currently on the waiting list.
func (d *Dispatcher) WaitingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.waitingRiders)
}

// DriverCount returns the number of registered drivers.
func (d *Dispatcher) DriverCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.drivers)
}

func (d *Dispatcher) registered(driver *entities.Driver) bool {
	for _, known := range d.drivers {
		if known.SameDriver(driver) {
			return true
		}
	}
	return false
}
