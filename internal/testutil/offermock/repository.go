package offermock

import (
	"context"

	domain "peerlend-backend/internal/domain/offer"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn            func(ctx context.Context, o *domain.Offer) error
	GetByOfferIDFn      func(ctx context.Context, offerID string) (*domain.Offer, error)
	ListFn              func(ctx context.Context, excludeUserID string) ([]domain.Offer, error)
	ListByOwnerFn       func(ctx context.Context, userID string) ([]domain.Offer, error)
	GetManyByOfferIDsFn func(ctx context.Context, offerIDs []string) (map[string]domain.Offer, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Offer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOfferID(ctx context.Context, offerID string) (*domain.Offer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, excludeUserID string) ([]domain.Offer, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, excludeUserID)
	}
	return nil, nil
}

func (m *Repo) ListByOwner(ctx context.Context, userID string) ([]domain.Offer, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) GetManyByOfferIDs(ctx context.Context, offerIDs []string) (map[string]domain.Offer, error) {
	if m.GetManyByOfferIDsFn != nil {
		return m.GetManyByOfferIDsFn(ctx, offerIDs)
	}
	return map[string]domain.Offer{}, nil
}
