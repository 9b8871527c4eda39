// Package task contains the task entity.
package task

import (
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"

	"gitlab.com/tmsv2/tms-backend/pkg/validationx"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Task is a unit of work living in a column.
type Task struct {
	id          uuid.UUID
	columnID    uuid.UUID
	title       string
	description string
	assigneeID  *uuid.UUID
	sortOrder   int32
	dueDate     *time.Time
	createdAt   time.Time
	updatedAt   *time.Time
	deletedAt   *time.Time
}

type NewArgs struct {
	ColumnID    uuid.UUID
	Title       string
	Description string
	AssigneeID  *uuid.UUID
	SortOrder   int32
	DueDate     *time.Time
}

func New(args NewArgs) (*Task, error) {
	err := validation.Errors{
		"column_id":   validation.Validate(args.ColumnID, validationx.Required),
		"title":       validation.Validate(args.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		"description": validation.Validate(args.Description, validation.Length(0, MaxDescriptionLength)),
	}.Filter()
	if err != nil {
		return nil, err
	}

	return &Task{
		id:          uuid.New(),
		columnID:    args.ColumnID,
		title:       args.Title,
		description: args.Description,
		assigneeID:  args.AssigneeID,
		sortOrder:   args.SortOrder,
		dueDate:     args.DueDate,
		createdAt:   time.Now().UTC(),
	}, nil
}

type RehydrateArgs struct {
	ID          uuid.UUID
	ColumnID    uuid.UUID
	Title       string
	Description string
	AssigneeID  *uuid.UUID
	SortOrder   int32
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

func Rehydrate(args RehydrateArgs) *Task {
	return &Task{
		id:          args.ID,
		columnID:    args.ColumnID,
		title:       args.Title,
		description: args.Description,
		assigneeID:  args.AssigneeID,
		sortOrder:   args.SortOrder,
		dueDate:     args.DueDate,
		createdAt:   args.CreatedAt,
		updatedAt:   args.UpdatedAt,
		deletedAt:   args.DeletedAt,
	}
}

type UpdateArgs struct {
	ColumnID    *uuid.UUID
	Title       *string
	Description *string
	AssigneeID  *uuid.UUID
	SortOrder   *int32
	DueDate     *time.Time
}

// Update applies the non-nil fields and stamps updatedAt. AssigneeID and
// DueDate cannot be cleared through here; that would need explicit unset
// flags, which nothing asks for yet.
func (t *Task) Update(args UpdateArgs) error {
	err := validation.Errors{
		"title":       validation.Validate(args.Title, validation.Length(1, MaxTitleLength)),
		"description": validation.Validate(args.Description, validation.Length(0, MaxDescriptionLength)),
	}.Filter()
	if err != nil {
		return err
	}
	if args.ColumnID != nil {
		if err := validation.Validate(*args.ColumnID, validationx.Required); err != nil {
			return validation.Errors{"column_id": err}.Filter()
		}
	}

	if args.ColumnID != nil {
		t.columnID = *args.ColumnID
	}
	if args.Title != nil {
		t.title = *args.Title
	}
	if args.Description != nil {
		t.description = *args.Description
	}
	if args.AssigneeID != nil {
		t.assigneeID = args.AssigneeID
	}
	if args.SortOrder != nil {
		t.sortOrder = *args.SortOrder
	}
	if args.DueDate != nil {
		t.dueDate = args.DueDate
	}

	now := time.Now().UTC()
	t.updatedAt = &now

	return nil
}

func (t *Task) ID() uuid.UUID {
	if t == nil {
		return uuid.Nil
	}
	return t.id
}

func (t *Task) ColumnID() uuid.UUID {
	if t == nil {
		return uuid.Nil
	}
	return t.columnID
}

func (t *Task) Title() string {
	if t == nil {
		return ""
	}
	return t.title
}

func (t *Task) Description() string {
	if t == nil {
		return ""
	}
	return t.description
}

func (t *Task) AssigneeID() *uuid.UUID {
	if t == nil {
		return nil
	}
	return t.assigneeID
}

func (t *Task) SortOrder() int32 {
	if t == nil {
		return 0
	}
	return t.sortOrder
}

func (t *Task) DueDate() *time.Time {
	if t == nil {
		return nil
	}
	return t.dueDate
}

func (t *Task) CreatedAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.createdAt
}

func (t *Task) UpdatedAt() *time.Time {
	if t == nil {
		return nil
	}
	return t.updatedAt
}

func (t *Task) DeletedAt() *time.Time {
	if t == nil {
		return nil
	}
	return t.deletedAt
}
