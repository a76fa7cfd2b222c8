package mysql

import (
	"context"

	"gorm.io/gorm"

	offerDomain "peerlend-backend/internal/domain/offer"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	return &out, res.Error
}

func (r *OfferRepository) List(ctx context.Context, excludeUserID string) ([]offerDomain.Offer, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if excludeUserID != "" {
		q = q.Where("user_id <> ?", excludeUserID)
	}
	var out []offerDomain.Offer
	res := q.Find(&out)
	return out, res.Error
}

func (r *OfferRepository) ListByOwner(ctx context.Context, userID string) ([]offerDomain.Offer, error) {
	var out []offerDomain.Offer
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) GetManyByOfferIDs(ctx context.Context, offerIDs []string) (map[string]offerDomain.Offer, error) {
	out := make(map[string]offerDomain.Offer, len(offerIDs))
	if len(offerIDs) == 0 {
		return out, nil
	}
	var rows []offerDomain.Offer
	res := r.db.WithContext(ctx).Where("offer_id IN ?", offerIDs).Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	for _, o := range rows {
		out[o.OfferID] = o
	}
	return out, nil
}
