package dispatch

import (
	"fmt"
	"sync"
	"testing"

	"ridesim/internal/domain/entities"
)

func TestRequestDriver_AssignsClosest(t *testing.T) {
	dispatcher := NewDispatcher()

	far := entities.NewDriver("Far", entities.NewLocation(10, 10), 1)
	near := entities.NewDriver("Near", entities.NewLocation(3, 2), 1)
	dispatcher.RequestRider(far)
	dispatcher.RequestRider(near)

	rider := entities.NewRider("Kyle", 10, entities.NewLocation(3, 3), entities.NewLocation(3, 4))
	assigned, eta := dispatcher.RequestDriver(rider)

	if assigned == nil {
		t.Fatal("Expected a driver to be assigned")
	}
	if assigned.ID != "Near" {
		t.Errorf("Expected closest driver Near, got %s", assigned.ID)
	}
	if eta != 1 {
		t.Errorf("Expected pickup ETA 1, got %d", eta)
	}
	// The assignment is committed: the driver is already en route.
	if assigned.Destination == nil || *assigned.Destination != rider.Origin {
		t.Errorf("Expected driver en route to %s, got %v", rider.Origin, assigned.Destination)
	}
	if dispatcher.WaitingCount() != 0 {
		t.Errorf("Expected empty waiting list, got %d", dispatcher.WaitingCount())
	}
}

func TestRequestDriver_TieGoesToFirstRegistered(t *testing.T) {
	dispatcher := NewDispatcher()

	first := entities.NewDriver("First", entities.NewLocation(0, 2), 1)
	second := entities.NewDriver("Second", entities.NewLocation(2, 0), 1)
	dispatcher.RequestRider(first)
	dispatcher.RequestRider(second)

	rider := entities.NewRider("Kyle", 10, entities.NewLocation(0, 0), entities.NewLocation(5, 5))
	assigned, _ := dispatcher.RequestDriver(rider)

	if assigned == nil || assigned.ID != "First" {
		t.Errorf("Expected First on a travel-time tie, got %v", assigned)
	}
}

func TestRequestDriver_NoDriverWaitlistsRider(t *testing.T) {
	dispatcher := NewDispatcher()
	rider := entities.NewRider("Kyle", 10, entities.NewLocation(3, 3), entities.NewLocation(3, 4))

	if assigned, _ := dispatcher.RequestDriver(rider); assigned != nil {
		t.Fatalf("Expected no driver, got %s", assigned.ID)
	}
	if dispatcher.WaitingCount() != 1 {
		t.Errorf("Expected rider on waiting list, got %d waiting", dispatcher.WaitingCount())
	}
}

func TestRequestDriver_SkipsBusyDrivers(t *testing.T) {
	dispatcher := NewDispatcher()

	busy := entities.NewDriver("Busy", entities.NewLocation(3, 2), 1)
	dispatcher.RequestRider(busy)
	busy.StartDrive(entities.NewLocation(9, 9))

	rider := entities.NewRider("Kyle", 10, entities.NewLocation(3, 3), entities.NewLocation(3, 4))
	if assigned, _ := dispatcher.RequestDriver(rider); assigned != nil {
		t.Errorf("Expected busy driver to be skipped, got %s", assigned.ID)
	}
}

func TestRequestRider_RegistersDriverAndPopsFIFO(t *testing.T) {
	dispatcher := NewDispatcher()

	riderA := entities.NewRider("A", 10, entities.NewLocation(1, 1), entities.NewLocation(2, 2))
	riderB := entities.NewRider("B", 10, entities.NewLocation(1, 1), entities.NewLocation(2, 2))
	dispatcher.RequestDriver(riderA)
	dispatcher.RequestDriver(riderB)

	driver := entities.NewDriver("Ashwin", entities.NewLocation(3, 2), 1)

	got, eta := dispatcher.RequestRider(driver)
	if got == nil || got.ID != "A" {
		t.Errorf("Expected longest-waiting rider A, got %v", got)
	}
	if eta != 3 {
		t.Errorf("Expected pickup ETA 3, got %d", eta)
	}
	if driver.Destination == nil {
		t.Error("Expected driver en route to the rider")
	}
	if dispatcher.DriverCount() != 1 {
		t.Errorf("Expected driver registered, got %d drivers", dispatcher.DriverCount())
	}

	// Re-requesting must not register the driver twice.
	if got, _ = dispatcher.RequestRider(driver); got == nil || got.ID != "B" {
		t.Errorf("Expected rider B, got %v", got)
	}
	if dispatcher.DriverCount() != 1 {
		t.Errorf("Expected single registration, got %d drivers", dispatcher.DriverCount())
	}

	if got, _ = dispatcher.RequestRider(driver); got != nil {
		t.Errorf("Expected nil with empty waiting list, got %s", got.ID)
	}
}

func TestCancelRide(t *testing.T) {
	dispatcher := NewDispatcher()
	rider := entities.NewRider("Kyle", 10, entities.NewLocation(3, 3), entities.NewLocation(3, 4))

	if assigned, _ := dispatcher.RequestDriver(rider); assigned != nil {
		t.Fatal("Expected rider to be waitlisted")
	}

	dispatcher.CancelRide(rider)

	if rider.Status != entities.RiderStatusCancelled {
		t.Errorf("Expected status cancelled, got %s", rider.Status)
	}
	if dispatcher.WaitingCount() != 0 {
		t.Errorf("Expected rider removed from waiting list, got %d", dispatcher.WaitingCount())
	}
}

func TestRequestDriver_AssignmentCommitsImmediately(t *testing.T) {
	dispatcher := NewDispatcher()

	driver := entities.NewDriver("Dan", entities.NewLocation(0, 0), 1)
	dispatcher.RequestRider(driver)

	rider1 := entities.NewRider("Kyle", 10, entities.NewLocation(0, 2), entities.NewLocation(0, 5))
	rider2 := entities.NewRider("Ann", 10, entities.NewLocation(0, 3), entities.NewLocation(0, 6))

	assigned, _ := dispatcher.RequestDriver(rider1)
	if assigned == nil || assigned.ID != "Dan" {
		t.Fatalf("Expected Dan assigned, got %v", assigned)
	}

	// The first request committed the driver, so the second rider must
	// not get them too — they go on the waiting list.
	if assigned, _ := dispatcher.RequestDriver(rider2); assigned != nil {
		t.Errorf("Expected second rider waitlisted, got driver %s", assigned.ID)
	}
	if dispatcher.WaitingCount() != 1 {
		t.Errorf("Expected 1 waiting rider, got %d", dispatcher.WaitingCount())
	}
}

func TestRequestDriver_ConcurrentRequestsShareNoDriver(t *testing.T) {
	dispatcher := NewDispatcher()

	for i := 0; i < 3; i++ {
		driver := entities.NewDriver(fmt.Sprintf("driver-%d", i), entities.NewLocation(i, i), 1)
		dispatcher.RequestRider(driver)
	}

	var mu sync.Mutex
	assigned := make(map[string]int)
	waitlisted := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rider := entities.NewRider(fmt.Sprintf("rider-%d", n), 10,
				entities.NewLocation(n, 0), entities.NewLocation(n, 5))
			driver, _ := dispatcher.RequestDriver(rider)

			mu.Lock()
			defer mu.Unlock()
			if driver == nil {
				waitlisted++
				return
			}
			assigned[driver.ID]++
		}(i)
	}
	wg.Wait()

	if len(assigned) != 3 {
		t.Errorf("Expected 3 distinct drivers assigned, got %d", len(assigned))
	}
	for id, count := range assigned {
		if count != 1 {
			t.Errorf("Driver %s assigned to %d riders", id, count)
		}
	}
	if waitlisted != 7 {
		t.Errorf("Expected 7 riders waitlisted, got %d", waitlisted)
	}
}

func TestAnnounce_RefreshesAssignedDriver(t *testing.T) {
	dispatcher := NewDispatcher()

	driver := entities.NewDriver("Dan", entities.NewLocation(0, 0), 1)
	dispatcher.RequestRider(driver)

	rider1 := entities.NewRider("Kyle", 10, entities.NewLocation(0, 2), entities.NewLocation(0, 5))
	if assigned, _ := dispatcher.RequestDriver(rider1); assigned == nil {
		t.Fatal("Expected driver assigned")
	}

	rider2 := entities.NewRider("Ann", 10, entities.NewLocation(5, 9), entities.NewLocation(9, 9))
	if assigned, _ := dispatcher.RequestDriver(rider2); assigned != nil {
		t.Fatalf("Expected second rider waitlisted, got %s", assigned.ID)
	}

	// Dan reports back in from a new position at a new speed: the stale
	// assignment is dropped and the waiting rider handed over.
	got, eta := dispatcher.Announce(driver, entities.NewLocation(5, 5), 2)
	if got == nil || got.ID != "Ann" {
		t.Fatalf("Expected waiting rider Ann, got %v", got)
	}
	if driver.Location != entities.NewLocation(5, 5) {
		t.Errorf("Expected refreshed location 5,5, got %s", driver.Location)
	}
	if driver.Speed != 2 {
		t.Errorf("Expected refreshed speed 2, got %d", driver.Speed)
	}
	// Distance 4 at speed 2.
	if eta != 2 {
		t.Errorf("Expected pickup ETA 2, got %d", eta)
	}
	if driver.Destination == nil || *driver.Destination != got.Origin {
		t.Errorf("Expected driver en route to %s, got %v", got.Origin, driver.Destination)
	}
}

func TestAnnounce_NoWaitingRiderParksDriver(t *testing.T) {
	dispatcher := NewDispatcher()

	driver := entities.NewDriver("Dan", entities.NewLocation(0, 0), 1)
	driver.StartDrive(entities.NewLocation(4, 4))

	got, _ := dispatcher.Announce(driver, entities.NewLocation(2, 2), 1)
	if got != nil {
		t.Fatalf("Expected no rider, got %s", got.ID)
	}
	if !driver.IsIdle {
		t.Error("Expected announced driver to be idle")
	}
	if driver.Destination != nil {
		t.Error("Expected announced driver to have no destination")
	}
	if driver.Location != entities.NewLocation(2, 2) {
		t.Errorf("Expected driver at 2,2, got %s", driver.Location)
	}

	// The announcement registered the driver: the next rider gets them.
	rider := entities.NewRider("Kyle", 10, entities.NewLocation(2, 3), entities.NewLocation(5, 5))
	if assigned, _ := dispatcher.RequestDriver(rider); assigned == nil || assigned.ID != "Dan" {
		t.Errorf("Expected Dan assigned, got %v", assigned)
	}
}

func TestCancelRide_NotWaiting(t *testing.T) {
	dispatcher := NewDispatcher()
	rider := entities.NewRider("Kyle", 10, entities.NewLocation(3, 3), entities.NewLocation(3, 4))

	// Cancelling a rider who was never waitlisted still cancels them.
	dispatcher.CancelRide(rider)

	if rider.Status != entities.RiderStatusCancelled {
		t.Errorf("Expected status cancelled, got %s", rider.Status)
	}
}
