package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
)

// CrudRepo is an in-memory stand-in for any crud.Command/crud.Query pair.
// The id function extracts the identifier from an entity; entities are
// stored by value reference, no copying.
type CrudRepo[T any] struct {
	mu sync.Mutex
	db map[uuid.UUID]*T
	id func(*T) uuid.UUID
}

func NewCrudRepo[T any](id func(*T) uuid.UUID) *CrudRepo[T] {
	return &CrudRepo[T]{
		db: make(map[uuid.UUID]*T),
		id: id,
	}
}

func (r *CrudRepo[T]) Insert(ctx context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entity == nil {
		return errors.New("entity cannot be nil")
	}

	id := r.id(entity)
	if _, exists := r.db[id]; exists {
		return errorx.NewDuplicateEntry()
	}

	r.db[id] = entity
	return nil
}

func (r *CrudRepo[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db[id], nil
}

func (r *CrudRepo[T]) Update(ctx context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entity == nil {
		return errors.New("entity cannot be nil")
	}

	id := r.id(entity)
	if _, exists := r.db[id]; !exists {
		return errorx.NewNotFound()
	}

	r.db[id] = entity
	return nil
}

func (r *CrudRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.db[id]; !exists {
		return errorx.NewNotFound()
	}

	delete(r.db, id)
	return nil
}

func (r *CrudRepo[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.db)
}
