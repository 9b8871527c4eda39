// Package crud defines the generic persistence capability the entity
// services are written against. Storage backends satisfy these per entity
// type; the services never see anything more specific.
package crud

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/tmsv2/tms-backend/pkg/apperr"
)

// ErrWrongID is returned when a caller supplies the zero identifier where a
// real one is required.
var ErrWrongID = apperr.NewInvalid("wrong id")

// Command is the write side of the capability. Delete is a soft delete.
type Command[T any] interface {
	Insert(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Query is the read side. GetByID returns (nil, nil) when no live row
// matches, absence is not an error here.
type Query[T any] interface {
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
}
