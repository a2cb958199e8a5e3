package memory

import (
	"context"
	"errors"
	"sync"

	"ridesim/internal/domain/entities"
)

var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrDriverExists   = errors.New("driver already exists")
)

type DriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*entities.Driver
	order   []string
}

func NewDriverRepository() *DriverRepository {
	return &DriverRepository{
		drivers: make(map[string]*entities.Driver),
	}
}

func (r *DriverRepository) Create(ctx context.Context, driver *entities.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[driver.ID]; exists {
		return ErrDriverExists
	}
	r.drivers[driver.ID] = driver
	r.order = append(r.order, driver.ID)
	return nil
}

func (r *DriverRepository) GetByID(ctx context.Context, id string) (*entities.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, exists := r.drivers[id]
	if !exists {
		return nil, ErrDriverNotFound
	}
	return driver, nil
}

func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[id]; !exists {
		return ErrDriverNotFound
	}
	delete(r.drivers, id)
	for i, known := range r.order {
		if known == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns drivers in creation order.
func (r *DriverRepository) List(ctx context.Context) ([]*entities.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]*entities.Driver, 0, len(r.order))
	for _, id := range r.order {
		drivers = append(drivers, r.drivers[id])
	}
	return drivers, nil
}
