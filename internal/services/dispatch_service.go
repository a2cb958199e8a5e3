// Package services contains the application services sitting between the
// HTTP handlers and the domain: live dispatch and scenario runs.
package services

import (
	"context"
	"errors"

	"ridesim/internal/config"
	"ridesim/internal/dispatch"
	"ridesim/internal/domain/entities"
	"ridesim/internal/repository/memory"
	"ridesim/pkg/utils"
)

var (
	ErrRiderNotFound  = errors.New("rider not found")
	ErrRiderExists    = errors.New("rider already exists")
	ErrDriverNotFound = errors.New("driver not found")
)

// RideAssignment is the outcome of a rider's request: either a driver is
// on the way (Driver set, Pickup ETA in time units) or the rider has been
// waitlisted.
type RideAssignment struct {
	Rider      *entities.Rider  `json:"rider"`
	Driver     *entities.Driver `json:"driver,omitempty"`
	PickupETA  int              `json:"pickup_eta,omitempty"`
	Waitlisted bool             `json:"waitlisted"`
}

// DriverAssignment is the outcome of a driver announcing availability:
// either a waiting rider was handed over or the driver idles until one
// appears.
type DriverAssignment struct {
	Driver    *entities.Driver `json:"driver"`
	Rider     *entities.Rider  `json:"rider,omitempty"`
	PickupETA int              `json:"pickup_eta,omitempty"`
}

// DispatchService runs the live rider/driver flow over a shared dispatcher.
type DispatchService struct {
	dispatcher *dispatch.Dispatcher
	riderRepo  *memory.RiderRepository
	driverRepo *memory.DriverRepository
	config     *config.Config
}

func NewDispatchService(
	dispatcher *dispatch.Dispatcher,
	riderRepo *memory.RiderRepository,
	driverRepo *memory.DriverRepository,
	cfg *config.Config,
) *DispatchService {
	return &DispatchService{
		dispatcher: dispatcher,
		riderRepo:  riderRepo,
		driverRepo: driverRepo,
		config:     cfg,
	}
}

// RequestRide registers a new rider and asks the dispatcher for a driver.
// An empty id gets a generated one. If a driver is assigned they start
// driving to the rider's origin immediately.
func (s *DispatchService) RequestRide(ctx context.Context, id string, patience int, origin, destination entities.Location) (*RideAssignment, error) {
	if id == "" {
		id = utils.GenerateID()
	}

	rider := entities.NewRider(id, patience, origin, destination)
	if err := s.riderRepo.Create(ctx, rider); err != nil {
		if errors.Is(err, memory.ErrRiderExists) {
			return nil, ErrRiderExists
		}
		return nil, err
	}

	driver, eta := s.dispatcher.RequestDriver(rider)
	if driver == nil {
		return &RideAssignment{Rider: rider, Waitlisted: true}, nil
	}

	return &RideAssignment{
		Rider:     rider,
		Driver:    driver,
		PickupETA: eta,
	}, nil
}

// AnnounceDriver registers the driver and asks the dispatcher for a
// waiting rider. A known driver announcing again is refreshed: the
// submitted location and speed replace the stored ones and any previous
// assignment is abandoned, so a driver who finished (or gave up on) a
// pickup becomes selectable again. A zero speed falls back to the
// configured default.
func (s *DispatchService) AnnounceDriver(ctx context.Context, id string, location entities.Location, speed int) (*DriverAssignment, error) {
	if id == "" {
		id = utils.GenerateID()
	}
	if speed <= 0 {
		speed = s.config.Dispatch.DefaultDriverSpeed
	}

	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		driver = entities.NewDriver(id, location, speed)
		if err := s.driverRepo.Create(ctx, driver); err != nil {
			return nil, err
		}
	}

	rider, eta := s.dispatcher.Announce(driver, location, speed)
	if rider == nil {
		return &DriverAssignment{Driver: driver}, nil
	}

	return &DriverAssignment{
		Driver:    driver,
		Rider:     rider,
		PickupETA: eta,
	}, nil
}

// CancelRide cancels the rider's request. Like the entity itself, this is
// permissive: cancelling an already-cancelled or satisfied rider just
// re-asserts the cancellation.
func (s *DispatchService) CancelRide(ctx context.Context, riderID string) (*entities.Rider, error) {
	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return nil, ErrRiderNotFound
	}
	s.dispatcher.CancelRide(rider)
	return rider, nil
}

// GetRider returns one rider by ID.
func (s *DispatchService) GetRider(ctx context.Context, id string) (*entities.Rider, error) {
	rider, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRiderNotFound
	}
	return rider, nil
}

// GetDriver returns one driver by ID.
func (s *DispatchService) GetDriver(ctx context.Context, id string) (*entities.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrDriverNotFound
	}
	return driver, nil
}

// ListRiders returns all known riders in creation order.
func (s *DispatchService) ListRiders(ctx context.Context) ([]*entities.Rider, error) {
	return s.riderRepo.List(ctx)
}

// ListDrivers returns all known drivers in creation order.
func (s *DispatchService) ListDrivers(ctx context.Context) ([]*entities.Driver, error) {
	return s.driverRepo.List(ctx)
}
