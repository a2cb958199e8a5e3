package services

import (
	"context"
	"testing"

	"ridesim/internal/config"
	"ridesim/internal/dispatch"
	"ridesim/internal/domain/entities"
	"ridesim/internal/repository/memory"
)

func setupDispatchService() *DispatchService {
	return NewDispatchService(
		dispatch.NewDispatcher(),
		memory.NewRiderRepository(),
		memory.NewDriverRepository(),
		config.NewDefaultConfig(),
	)
}

func TestDispatchService_RequestRide_NoDrivers(t *testing.T) {
	service := setupDispatchService()
	ctx := context.Background()

	assignment, err := service.RequestRide(ctx, "rider-1", 10,
		entities.NewLocation(3, 3), entities.NewLocation(3, 4))
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}

	if !assignment.Waitlisted {
		t.Error("Expected rider to be waitlisted with no drivers")
	}
	if assignment.Driver != nil {
		t.Errorf("Expected no driver, got %s", assignment.Driver.ID)
	}
	if assignment.Rider.Status != entities.RiderStatusWaiting {
		t.Errorf("Expected status waiting, got %s", assignment.Rider.Status)
	}
}

func TestDispatchService_RequestRide_AssignsDriver(t *testing.T) {
	service := setupDispatchService()
	ctx := context.Background()

	if _, err := service.AnnounceDriver(ctx, "driver-1", entities.NewLocation(3, 2), 1); err != nil {
		t.Fatalf("AnnounceDriver failed: %v", err)
	}

	assignment, err := service.RequestRide(ctx, "rider-1", 10,
		entities.NewLocation(3, 3), entities.NewLocation(3, 4))
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}

	if assignment.Waitlisted {
		t.Error("Expected assignment, not waitlisting")
	}
	if assignment.Driver == nil || assignment.Driver.ID != "driver-1" {
		t.Fatalf("Expected driver-1, got %v", assignment.Driver)
	}
	if assignment.PickupETA != 1 {
		t.Errorf("Expected pickup ETA 1, got %d", assignment.PickupETA)
	}
	if assignment.Driver.Destination == nil {
		t.Error("Expected assigned driver to be en route")
	}
}

func TestDispatchService_RequestRide_DuplicateID(t *testing.T) {
	service := setupDispatchService()
	ctx := context.Background()

	origin := entities.NewLocation(1, 1)
	destination := entities.NewLocation(2, 2)
	if _, err := service.RequestRide(ctx, "rider-1", 10, origin, destination); err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}

	if _, err := service.RequestRide(ctx, "rider-1", 10, origin, destination); err != ErrRiderExists {
		t.Errorf("Expected ErrRiderExists, got %v", err)
	}
}

func TestDispatchService_RequestRide_GeneratesID(t *testing.T) {
	service := setupDispatchService()

	assignment, err := service.RequestRide(context.Background(), "", 10,
		entities.NewLocation(1, 1), entities.NewLocation(2, 2))
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}
	if assignment.Rider.ID == "" {
		t.Error("Expected a generated rider ID")
	}
}

func TestDispatchService_AnnounceDriver_PicksUpWaitingRider(t *testing.T) {
	service := setupDispatchService()
	ctx := context.Background()

	if _, err := service.RequestRide(ctx, "rider-1", 10,
		entities.NewLocation(2, 2), entities.NewLocation(2, 4)); err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}

	assignment, err := service.AnnounceDriver(ctx, "driver-1", entities.NewLocation(2, 0), 1)
	if err != nil {
		t.Fatalf("AnnounceDriver failed: %v", err)
	}

	if assignment.Rider == nil || assignment.Rider.ID != "rider-1" {
		t.Fatalf("Expected waiting rider handed over, got %v", assignment.Rider)
	}
	if assignment.PickupETA != 2 {
		t.Errorf("Expected pickup ETA 2, got %d", assignment.PickupETA)
	}
}

func TestDispatchService_AnnounceDriver_ReannounceRefreshesDriver(t *testing.T) {
	service := setupDispatchService()
	ctx := context.Background()

	if _, err := service.AnnounceDriver(ctx, "driver-1", entities.NewLocation(0, 0), 1); err != nil {
		t.Fatalf("AnnounceDriver failed: %v", err)
	}

	assignment, err := service.RequestRide(ctx, "rider-1",
		10, entities.NewLocation(0, 2), entities.NewLocation(0, 5))
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}
	if assignment.Driver == nil || assignment.Driver.ID != "driver-1" {
		t.Fatalf("Expected driver-1 assigned, got %v", assignment.Driver)
	}

	// The driver announces again from a new position at a new speed: the
	// stored driver is refreshed, parked, and selectable again.
	reannounced, err := service.AnnounceDriver(ctx, "driver-1", entities.NewLocation(5, 5), 2)
	if err != nil {
		t.Fatalf("AnnounceDriver failed: %v", err)
	}

	driver := reannounced.Driver
	if driver.Location != entities.NewLocation(5, 5) {
		t.Errorf("Expected refreshed location 5,5, got %s", driver.Location)
	}
	if driver.Speed != 2 {
		t.Errorf("Expected refreshed speed 2, got %d", driver.Speed)
	}
	if !driver.IsIdle {
		t.Error("Expected re-announced driver to be idle")
	}
	if driver.Destination != nil {
		t.Errorf("Expected no destination, got %s", driver.Destination)
	}

	// And the next rider is matched against the fresh position.
	next, err := service.RequestRide(ctx, "rider-2",
		10, entities.NewLocation(5, 7), entities.NewLocation(9, 9))
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}
	if next.Driver == nil || next.Driver.ID != "driver-1" {
		t.Fatalf("Expected driver-1 reassigned, got %v", next.Driver)
	}
	if next.PickupETA != 1 {
		t.Errorf("Expected pickup ETA 1, got %d", next.PickupETA)
	}
}

func TestDispatchService_AnnounceDriver_DefaultSpeed(t *testing.T) {
	service := setupDispatchService()

	assignment, err := service.AnnounceDriver(context.Background(), "driver-1", entities.NewLocation(0, 0), 0)
	if err != nil {
		t.Fatalf("AnnounceDriver failed: %v", err)
	}
	if assignment.Driver.Speed != 1 {
		t.Errorf("Expected default speed 1, got %d", assignment.Driver.Speed)
	}
}

func TestDispatchService_CancelRide(t *testing.T) {
	service := setupDispatchService()
	ctx := context.Background()

	if _, err := service.RequestRide(ctx, "rider-1", 10,
		entities.NewLocation(1, 1), entities.NewLocation(2, 2)); err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}

	rider, err := service.CancelRide(ctx, "rider-1")
	if err != nil {
		t.Fatalf("CancelRide failed: %v", err)
	}
	if rider.Status != entities.RiderStatusCancelled {
		t.Errorf("Expected status cancelled, got %s", rider.Status)
	}

	// The waitlisted rider is gone: a new driver gets no one.
	assignment, err := service.AnnounceDriver(ctx, "driver-1", entities.NewLocation(0, 0), 1)
	if err != nil {
		t.Fatalf("AnnounceDriver failed: %v", err)
	}
	if assignment.Rider != nil {
		t.Errorf("Expected no rider for the driver, got %s", assignment.Rider.ID)
	}
}

func TestDispatchService_CancelRide_Unknown(t *testing.T) {
	service := setupDispatchService()

	if _, err := service.CancelRide(context.Background(), "nope"); err != ErrRiderNotFound {
		t.Errorf("Expected ErrRiderNotFound, got %v", err)
	}
}
