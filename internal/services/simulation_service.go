package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ridesim/internal/domain/entities"
	"ridesim/internal/repository"
	"ridesim/internal/repository/sqlite"
	"ridesim/internal/simulation"
	"ridesim/pkg/utils"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrEmptyScenario   = errors.New("scenario contains no events")
	ErrRunNotFound     = errors.New("simulation run not found")
)

// SimulationService parses submitted scenarios, runs them through the
// engine, and persists the results.
type SimulationService struct {
	sim     *simulation.Simulation
	runRepo repository.RunRepository
}

func NewSimulationService(runRepo repository.RunRepository) *SimulationService {
	return &SimulationService{
		sim:     simulation.NewSimulation(),
		runRepo: runRepo,
	}
}

// RunScenario parses the event source, runs the simulation, stores the
// run, and returns it.
func (s *SimulationService) RunScenario(ctx context.Context, source string) (*entities.SimulationRun, error) {
	events, err := simulation.ParseEvents(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if len(events) == 0 {
		return nil, ErrEmptyScenario
	}

	result := s.sim.Run(events)

	run := entities.NewSimulationRun(utils.GenerateID(), source)
	run.EventsProcessed = result.EventsProcessed
	run.RiderWaitTime = result.Report.RiderWaitTime
	run.DriverTotalDistance = result.Report.DriverTotalDistance
	run.DriverRideDistance = result.Report.DriverRideDistance

	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("store run: %w", err)
	}
	return run, nil
}

// GetRun returns one stored run by ID.
func (s *SimulationService) GetRun(ctx context.Context, id string) (*entities.SimulationRun, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if errors.Is(err, sqlite.ErrRunNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns all stored runs, newest first.
func (s *SimulationService) ListRuns(ctx context.Context) ([]*entities.SimulationRun, error) {
	return s.runRepo.List(ctx)
}
