package offer

import "context"

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByOfferID(ctx context.Context, offerID string) (*Offer, error)
	// List returns all offers newest-first, optionally excluding one owner.
	List(ctx context.Context, excludeUserID string) ([]Offer, error)
	ListByOwner(ctx context.Context, userID string) ([]Offer, error)
	GetManyByOfferIDs(ctx context.Context, offerIDs []string) (map[string]Offer, error)
}
