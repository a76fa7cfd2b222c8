package offer

import (
	"context"
	"strings"

	"peerlend-backend/internal/domain/loan"
	domain "peerlend-backend/internal/domain/offer"
	"peerlend-backend/internal/domain/session"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/pkg/id"
)

// ListingCache is the best-effort read cache the usecase invalidates on
// mutation; a nil implementation is a valid no-op.
type ListingCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, v any)
	Invalidate(ctx context.Context, keys ...string)
}

type Usecase struct {
	offers domain.Repository
	loans  loan.Repository
	cache  ListingCache
}

func NewUsecase(offers domain.Repository, loans loan.Repository, c ListingCache) *Usecase {
	return &Usecase{offers: offers, loans: loans, cache: c}
}

// Create publishes a new lender offer owned by the session user. Offers are
// write-once; there is no edit or delete path.
func (u *Usecase) Create(ctx context.Context, sess *session.Session, in CreateOfferInput) (*OfferDTO, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if in.InterestRate != nil && *in.InterestRate < 0 {
		return nil, domain.ErrInvalidInterestRate
	}

	o := &domain.Offer{
		OfferID:       id.NewID32(),
		UserID:        sess.UserID,
		FullName:      strings.TrimSpace(in.FullName),
		Contact:       strings.TrimSpace(in.Contact),
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		InterestRate:  in.InterestRate,
	}
	if err := u.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Invalidate(ctx, cache.OffersKey())
	}
	return toDTO(o), nil
}

// Marketplace lists offers the session user can act on: newest-first, never
// their own, and never an offer they already hold a loan against. The search
// term filters on lender name and payment method, case-insensitively.
func (u *Usecase) Marketplace(ctx context.Context, sess *session.Session, searchTerm string) ([]OfferDTO, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}

	all, err := u.listAll(ctx)
	if err != nil {
		return nil, err
	}

	borrowed, err := u.loans.ListOfferIDsByBorrower(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(borrowed))
	for _, oid := range borrowed {
		taken[oid] = struct{}{}
	}

	term := strings.TrimSpace(searchTerm)
	out := make([]OfferDTO, 0, len(all))
	for i := range all {
		o := &all[i]
		if o.UserID == sess.UserID {
			continue
		}
		if _, ok := taken[o.OfferID]; ok {
			continue
		}
		if term != "" && !matchesTerm(o, term) {
			continue
		}
		out = append(out, *toDTO(o))
	}
	return out, nil
}

// ListByOwner is the "my lendings" view.
func (u *Usecase) ListByOwner(ctx context.Context, sess *session.Session) ([]OfferDTO, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}
	offers, err := u.offers.ListByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]OfferDTO, 0, len(offers))
	for i := range offers {
		out = append(out, *toDTO(&offers[i]))
	}
	return out, nil
}

// listAll serves the shared newest-first listing through the read cache;
// per-user exclusions are applied after, so the cached value is user-agnostic.
func (u *Usecase) listAll(ctx context.Context) ([]domain.Offer, error) {
	key := cache.OffersKey()
	if u.cache != nil {
		var cached []domain.Offer
		if u.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}
	all, err := u.offers.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Set(ctx, key, all)
	}
	return all, nil
}

func matchesTerm(o *domain.Offer, term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(o.FullName), t) ||
		strings.Contains(strings.ToLower(o.PaymentMethod), t)
}

func toDTO(o *domain.Offer) *OfferDTO {
	return &OfferDTO{
		OfferID:       o.OfferID,
		UserID:        o.UserID,
		FullName:      o.FullName,
		Contact:       o.Contact,
		Amount:        o.Amount,
		PaymentMethod: o.PaymentMethod,
		InterestRate:  o.InterestRate,
		CreatedAt:     o.CreatedAt,
	}
}
