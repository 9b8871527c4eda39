// Package column contains the board column entity.
package column

import (
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"

	"gitlab.com/tmsv2/tms-backend/pkg/apperr"
	"gitlab.com/tmsv2/tms-backend/pkg/validationx"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxColorLength       = 16
)

type Type int16

const (
	TypeBacklog    Type = 1
	TypeInProgress Type = 2
	TypeReview     Type = 3
	TypeDone       Type = 4
)

var ErrUnknownType = apperr.NewInvalid("unknown column type")

func (t Type) Validate() error {
	if t < TypeBacklog || t > TypeDone {
		return ErrUnknownType
	}
	return nil
}

// Column is a single lane on a board. Tasks reference it by id.
type Column struct {
	id          uuid.UUID
	boardID     uuid.UUID
	name        string
	description string
	columnType  Type
	sortOrder   int32
	color       string
	createdAt   time.Time
	updatedAt   *time.Time
	deletedAt   *time.Time
}

type NewArgs struct {
	BoardID     uuid.UUID
	Name        string
	Description string
	Type        Type
	SortOrder   int32
	Color       string
}

func New(args NewArgs) (*Column, error) {
	err := validation.Errors{
		"board_id":    validation.Validate(args.BoardID, validationx.Required),
		"name":        validation.Validate(args.Name, validation.Required, validation.Length(1, MaxNameLength)),
		"description": validation.Validate(args.Description, validation.Length(0, MaxDescriptionLength)),
		"type":        args.Type.Validate(),
		"color":       validation.Validate(args.Color, validation.Length(0, MaxColorLength)),
	}.Filter()
	if err != nil {
		return nil, err
	}

	return &Column{
		id:          uuid.New(),
		boardID:     args.BoardID,
		name:        args.Name,
		description: args.Description,
		columnType:  args.Type,
		sortOrder:   args.SortOrder,
		color:       args.Color,
		createdAt:   time.Now().UTC(),
	}, nil
}

type RehydrateArgs struct {
	ID          uuid.UUID
	BoardID     uuid.UUID
	Name        string
	Description string
	Type        Type
	SortOrder   int32
	Color       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

func Rehydrate(args RehydrateArgs) *Column {
	return &Column{
		id:          args.ID,
		boardID:     args.BoardID,
		name:        args.Name,
		description: args.Description,
		columnType:  args.Type,
		sortOrder:   args.SortOrder,
		color:       args.Color,
		createdAt:   args.CreatedAt,
		updatedAt:   args.UpdatedAt,
		deletedAt:   args.DeletedAt,
	}
}

type UpdateArgs struct {
	Name        *string
	Description *string
	Type        *Type
	SortOrder   *int32
	Color       *string
}

// Update applies the non-nil fields and stamps updatedAt.
func (c *Column) Update(args UpdateArgs) error {
	err := validation.Errors{
		"name":        validation.Validate(args.Name, validation.Length(1, MaxNameLength)),
		"description": validation.Validate(args.Description, validation.Length(0, MaxDescriptionLength)),
		"color":       validation.Validate(args.Color, validation.Length(0, MaxColorLength)),
	}.Filter()
	if err != nil {
		return err
	}
	if args.Type != nil {
		if err := args.Type.Validate(); err != nil {
			return err
		}
	}

	if args.Name != nil {
		c.name = *args.Name
	}
	if args.Description != nil {
		c.description = *args.Description
	}
	if args.Type != nil {
		c.columnType = *args.Type
	}
	if args.SortOrder != nil {
		c.sortOrder = *args.SortOrder
	}
	if args.Color != nil {
		c.color = *args.Color
	}

	now := time.Now().UTC()
	c.updatedAt = &now

	return nil
}

func (c *Column) ID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.id
}

func (c *Column) BoardID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.boardID
}

func (c *Column) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

func (c *Column) Description() string {
	if c == nil {
		return ""
	}
	return c.description
}

func (c *Column) Type() Type {
	if c == nil {
		return 0
	}
	return c.columnType
}

func (c *Column) SortOrder() int32 {
	if c == nil {
		return 0
	}
	return c.sortOrder
}

func (c *Column) Color() string {
	if c == nil {
		return ""
	}
	return c.color
}

func (c *Column) CreatedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.createdAt
}

func (c *Column) UpdatedAt() *time.Time {
	if c == nil {
		return nil
	}
	return c.updatedAt
}

func (c *Column) DeletedAt() *time.Time {
	if c == nil {
		return nil
	}
	return c.deletedAt
}
