package profilemock

import (
	"context"

	domain "peerlend-backend/internal/domain/profile"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, p *domain.Profile) error
	GetByEmailFn       func(ctx context.Context, email string) (*domain.Profile, error)
	GetByUserIDFn      func(ctx context.Context, userID string) (*domain.Profile, error)
	GetManyByUserIDsFn func(ctx context.Context, userIDs []string) (map[string]domain.Profile, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetManyByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error) {
	if m.GetManyByUserIDsFn != nil {
		return m.GetManyByUserIDsFn(ctx, userIDs)
	}
	return map[string]domain.Profile{}, nil
}
