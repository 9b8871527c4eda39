package postgres

import (
	"time"

	"github.com/google/uuid"

	"gitlab.com/tmsv2/tms-backend/internal/domain/column"
	"gitlab.com/tmsv2/tms-backend/internal/domain/task"
	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
)

type VerificationDTO struct {
	ID        uuid.UUID
	Target    string
	Channel   int16
	Code      string
	IsUsed    bool
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func DomainToVerificationDTO(v *verification.Verification) VerificationDTO {
	return VerificationDTO{
		ID:        uuid.UUID(v.ID()),
		Target:    v.Target(),
		Channel:   int16(v.Channel()),
		Code:      v.Code(),
		IsUsed:    v.IsUsed(),
		ExpiresAt: v.ExpiresAt(),
		CreatedAt: v.CreatedAt(),
		UpdatedAt: v.UpdatedAt(),
	}
}

func VerificationToDomain(dto VerificationDTO) *verification.Verification {
	return verification.Rehydrate(verification.RehydrateArgs{
		ID:        verification.ID(dto.ID),
		Target:    dto.Target,
		Channel:   channel.Channel(dto.Channel),
		Code:      dto.Code,
		IsUsed:    dto.IsUsed,
		ExpiresAt: dto.ExpiresAt,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

type ColumnDTO struct {
	ID          uuid.UUID
	BoardID     uuid.UUID
	Name        string
	Description string
	ColumnType  int16
	SortOrder   int32
	Color       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

func DomainToColumnDTO(c *column.Column) ColumnDTO {
	return ColumnDTO{
		ID:          c.ID(),
		BoardID:     c.BoardID(),
		Name:        c.Name(),
		Description: c.Description(),
		ColumnType:  int16(c.Type()),
		SortOrder:   c.SortOrder(),
		Color:       c.Color(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
		DeletedAt:   c.DeletedAt(),
	}
}

func ColumnToDomain(dto ColumnDTO) *column.Column {
	return column.Rehydrate(column.RehydrateArgs{
		ID:          dto.ID,
		BoardID:     dto.BoardID,
		Name:        dto.Name,
		Description: dto.Description,
		Type:        column.Type(dto.ColumnType),
		SortOrder:   dto.SortOrder,
		Color:       dto.Color,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		DeletedAt:   dto.DeletedAt,
	})
}

type TaskDTO struct {
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

func DomainToTaskDTO(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID(),
		ColumnID:    t.ColumnID(),
		Title:       t.Title(),
		Description: t.Description(),
		AssigneeID:  t.AssigneeID(),
		SortOrder:   t.SortOrder(),
		DueDate:     t.DueDate(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		DeletedAt:   t.DeletedAt(),
	}
}

func TaskToDomain(dto TaskDTO) *task.Task {
	return task.Rehydrate(task.RehydrateArgs{
		ID:          dto.ID,
		ColumnID:    dto.ColumnID,
		Title:       dto.Title,
		Description: dto.Description,
		AssigneeID:  dto.AssigneeID,
		SortOrder:   dto.SortOrder,
		DueDate:     dto.DueDate,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		DeletedAt:   dto.DeletedAt,
	})
}
