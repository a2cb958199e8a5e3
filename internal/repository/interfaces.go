// Package repository declares the storage ports used by the service layer.
// Implementations live in the memory and sqlite subpackages.
package repository

import (
	"context"

	"ridesim/internal/domain/entities"
)

type RiderRepository interface {
	Create(ctx context.Context, rider *entities.Rider) error
	GetByID(ctx context.Context, id string) (*entities.Rider, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Rider, error)
}

type DriverRepository interface {
	Create(ctx context.Context, driver *entities.Driver) error
	GetByID(ctx context.Context, id string) (*entities.Driver, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Driver, error)
}

type RunRepository interface {
	Create(ctx context.Context, run *entities.SimulationRun) error
	GetByID(ctx context.Context, id string) (*entities.SimulationRun, error)
	List(ctx context.Context) ([]*entities.SimulationRun, error)
}
