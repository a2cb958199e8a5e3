// Package simulation implements the discrete-event engine: timestamped
// events, the event queue, the activity monitor, and the run loop that
// drives a dispatcher through a scenario.
package simulation

import (
	"fmt"

	"ridesim/internal/dispatch"
	"ridesim/internal/domain/entities"
)

// Event is a single timestamped occurrence in the simulation. Do applies
// the event to the world and returns any events it spawns; the engine is
// responsible for queueing them.
type Event interface {
	Timestamp() int
	Do(dispatcher *dispatch.Dispatcher, monitor *Monitor) []Event
	String() string
}

type baseEvent struct {
	timestamp int
}

func (e baseEvent) Timestamp() int { return e.timestamp }

// RiderRequest occurs when a rider asks for a driver.
type RiderRequest struct {
	baseEvent
	Rider *entities.Rider
}

// NewRiderRequest creates a RiderRequest event.
func NewRiderRequest(timestamp int, rider *entities.Rider) *RiderRequest {
	return &RiderRequest{baseEvent{timestamp}, rider}
}

// Do assigns the rider a driver, or waitlists them. If a driver is
// assigned, the driver starts driving to the rider and a Pickup is
// scheduled for their arrival. A Cancellation is always scheduled for when
// the rider's patience runs out.
func (e *RiderRequest) Do(dispatcher *dispatch.Dispatcher, monitor *Monitor) []Event {
	monitor.Notify(e.timestamp, CategoryRider, ActivityRequest, e.Rider.ID, e.Rider.Origin)

	var events []Event
	if driver, travelTime := dispatcher.RequestDriver(e.Rider); driver != nil {
		events = append(events, NewPickup(e.timestamp+travelTime, e.Rider, driver))
	}
	events = append(events, NewCancellation(e.timestamp+e.Rider.Patience, e.Rider))
	return events
}

func (e *RiderRequest) String() string {
	return fmt.Sprintf("%d -- %s: Request a driver", e.timestamp, e.Rider)
}

// DriverRequest occurs when a driver asks for a rider.
type DriverRequest struct {
	baseEvent
	Driver *entities.Driver
}

// NewDriverRequest creates a DriverRequest event.
func NewDriverRequest(timestamp int, driver *entities.Driver) *DriverRequest {
	return &DriverRequest{baseEvent{timestamp}, driver}
}

// Do registers the driver on first contact and assigns a waiting rider if
// one exists, scheduling the Pickup for when the driver reaches them.
func (e *DriverRequest) Do(dispatcher *dispatch.Dispatcher, monitor *Monitor) []Event {
	monitor.Notify(e.timestamp, CategoryDriver, ActivityRequest, e.Driver.ID, e.Driver.Location)

	var events []Event
	if rider, travelTime := dispatcher.RequestRider(e.Driver); rider != nil {
		events = append(events, NewPickup(e.timestamp+travelTime, rider, e.Driver))
	}
	return events
}

func (e *DriverRequest) String() string {
	return fmt.Sprintf("%d -- %s: Request a rider", e.timestamp, e.Driver)
}

// Cancellation occurs when a rider's patience runs out.
type Cancellation struct {
	baseEvent
	Rider *entities.Rider
}

// NewCancellation creates a Cancellation event.
func NewCancellation(timestamp int, rider *entities.Rider) *Cancellation {
	return &Cancellation{baseEvent{timestamp}, rider}
}

// Do cancels the rider unless they have already been picked up. A
// satisfied rider's pending cancellation is a no-op.
func (e *Cancellation) Do(dispatcher *dispatch.Dispatcher, monitor *Monitor) []Event {
	if e.Rider.Status != entities.RiderStatusSatisfied {
		monitor.Notify(e.timestamp, CategoryRider, ActivityCancel, e.Rider.ID, e.Rider.Origin)
		e.Rider.Cancel()
		dispatcher.CancelRide(e.Rider)
	}
	return nil
}

func (e *Cancellation) String() string {
	return fmt.Sprintf("%d -- %s: Cancel ride", e.timestamp, e.Rider)
}

// Pickup occurs when a driver arrives at a rider's origin.
type Pickup struct {
	baseEvent
	Rider  *entities.Rider
	Driver *entities.Driver
}

// NewPickup creates a Pickup event.
func NewPickup(timestamp int, rider *entities.Rider, driver *entities.Driver) *Pickup {
	return &Pickup{baseEvent{timestamp}, rider, driver}
}

// Do completes the driver's drive to the rider. A still-waiting rider is
// picked up — the ride starts, a Dropoff is scheduled, and the rider is
// marked satisfied. If the rider cancelled in the meantime the driver
// parks and immediately asks for another rider.
func (e *Pickup) Do(dispatcher *dispatch.Dispatcher, monitor *Monitor) []Event {
	monitor.Notify(e.timestamp, CategoryRider, ActivityPickup, e.Rider.ID, e.Rider.Origin)
	if e.Driver.Destination != nil {
		monitor.Notify(e.timestamp, CategoryDriver, ActivityPickup, e.Driver.ID, *e.Driver.Destination)
	}

	e.Driver.EndDrive()

	var events []Event
	switch e.Rider.Status {
	case entities.RiderStatusWaiting:
		travelTime := e.Driver.StartRide(e.Rider)
		events = append(events, NewDropoff(e.timestamp+travelTime, e.Rider, e.Driver))
		e.Rider.MarkSatisfied()
	case entities.RiderStatusCancelled:
		events = append(events, NewDriverRequest(e.timestamp, e.Driver))
		e.Driver.Park()
	}
	return events
}

func (e *Pickup) String() string {
	return fmt.Sprintf("%d -- %s: Pickup %s", e.timestamp, e.Driver, e.Rider)
}

// Dropoff occurs when a driver delivers a rider to their destination.
type Dropoff struct {
	baseEvent
	Rider  *entities.Rider
	Driver *entities.Driver
}

// NewDropoff creates a Dropoff event.
func NewDropoff(timestamp int, rider *entities.Rider, driver *entities.Driver) *Dropoff {
	return &Dropoff{baseEvent{timestamp}, rider, driver}
}

// Do ends the ride and has the now-idle driver request a new rider.
func (e *Dropoff) Do(dispatcher *dispatch.Dispatcher, monitor *Monitor) []Event {
	e.Driver.EndRide()

	monitor.Notify(e.timestamp, CategoryRider, ActivityDropoff, e.Rider.ID, e.Rider.Destination)
	monitor.Notify(e.timestamp, CategoryDriver, ActivityDropoff, e.Driver.ID, e.Driver.Location)

	return []Event{NewDriverRequest(e.timestamp, e.Driver)}
}

func (e *Dropoff) String() string {
	return fmt.Sprintf("%d -- %s: Drop-off %s", e.timestamp, e.Driver, e.Rider)
}
