// Package memory provides mutex-guarded in-memory repositories backing the
// live dispatch service.
package memory

import (
	"context"
	"errors"
	"sync"

	"ridesim/internal/domain/entities"
)

var (
	ErrRiderNotFound = errors.New("rider not found")
	ErrRiderExists   = errors.New("rider already exists")
)

type RiderRepository struct {
	mu     sync.RWMutex
	riders map[string]*entities.Rider
	order  []string
}

func NewRiderRepository() *RiderRepository {
	return &RiderRepository{
		riders: make(map[string]*entities.Rider),
	}
}

func (r *RiderRepository) Create(ctx context.Context, rider *entities.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.riders[rider.ID]; exists {
		return ErrRiderExists
	}
	r.riders[rider.ID] = rider
	r.order = append(r.order, rider.ID)
	return nil
}

func (r *RiderRepository) GetByID(ctx context.Context, id string) (*entities.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rider, exists := r.riders[id]
	if !exists {
		return nil, ErrRiderNotFound
	}
	return rider, nil
}

func (r *RiderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.riders[id]; !exists {
		return ErrRiderNotFound
	}
	delete(r.riders, id)
	for i, known := range r.order {
		if known == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns riders in creation order.
func (r *RiderRepository) List(ctx context.Context) ([]*entities.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	riders := make([]*entities.Rider, 0, len(r.order))
	for _, id := range r.order {
		riders = append(riders, r.riders[id])
	}
	return riders, nil
}
