package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/channel"
	"gitlab.com/tmsv2/tms-backend/internal/domain/verification"
	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
)

type VerificationRepo struct {
	*EventRepo
	dbbyID map[verification.ID]*verification.Verification
	// order preserves insertion so "most recent" is well defined even when
	// two records share a created_at timestamp
	order []verification.ID
	mu    sync.Mutex
}

func NewVerificationRepo() *VerificationRepo {
	return &VerificationRepo{
		EventRepo: NewEventRepo(),
		dbbyID:    make(map[verification.ID]*verification.Verification),
		order:     []verification.ID{},
		mu:        sync.Mutex{},
	}
}

func (r *VerificationRepo) GetVerificationByID(ctx context.Context, id verification.ID) (*verification.Verification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, exists := r.dbbyID[id]; exists {
		return v, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *VerificationRepo) SaveVerification(ctx context.Context, v *verification.Verification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v == nil {
		return errors.New("verification cannot be nil")
	}

	if _, exists := r.dbbyID[v.ID()]; exists {
		return errorx.NewDuplicateEntry()
	}

	r.dbbyID[v.ID()] = v
	r.order = append(r.order, v.ID())

	r.appendEvents(v.GetUncommittedEvents()...)
	v.MarkEventsAsCommitted()

	return nil
}

func (r *VerificationRepo) UpdateLatestVerification(
	ctx context.Context,
	target string,
	ch channel.Channel,
	fn func(context.Context, *verification.Verification) error,
) error {
	if fn == nil {
		return errors.New("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.latestLocked(target, ch)
	if v == nil {
		return errorx.NewNotFound()
	}

	if err := fn(ctx, v); err != nil {
		return fmt.Errorf("failed to apply update function: %w", err)
	}

	r.appendEvents(v.GetUncommittedEvents()...)
	v.MarkEventsAsCommitted()

	return nil
}

func (r *VerificationRepo) latestLocked(target string, ch channel.Channel) *verification.Verification {
	for i := len(r.order) - 1; i >= 0; i-- {
		v := r.dbbyID[r.order[i]]
		if v.Target() == target && v.Channel() == ch {
			return v
		}
	}
	return nil
}

func (r *VerificationRepo) Latest(target string, ch channel.Channel) *verification.Verification {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.latestLocked(target, ch)
}

// SeedVerification stores a verification without recording its events,
// mirroring a row that already exists in the store.
func (r *VerificationRepo) SeedVerification(t *testing.T, v *verification.Verification) *VerificationRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if v == nil {
		t.Fatal("verification cannot be nil")
	}
	if _, exists := r.dbbyID[v.ID()]; exists {
		t.Fatalf("verification %s already seeded", v.ID())
	}

	r.dbbyID[v.ID()] = v
	r.order = append(r.order, v.ID())
	v.MarkEventsAsCommitted()

	return r
}

func (r *VerificationRepo) AssertVerificationExists(t *testing.T, id verification.ID) *VerificationRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyID[id]; !exists {
		t.Errorf("expected verification %s to exist, but it does not", id)
	}

	return r
}

func (r *VerificationRepo) AssertVerificationUsed(t *testing.T, id verification.ID) *VerificationRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.dbbyID[id]
	if !exists {
		t.Errorf("expected verification %s to exist, but it does not", id)
		return r
	}
	if !v.IsUsed() {
		t.Errorf("expected verification %s to be used, but it is not", id)
	}

	return r
}
