package mysql

import (
	"context"

	"gorm.io/gorm"

	profileDomain "peerlend-backend/internal/domain/profile"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *profileDomain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *ProfileRepository) GetManyByUserIDs(ctx context.Context, userIDs []string) (map[string]profileDomain.Profile, error) {
	out := make(map[string]profileDomain.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []profileDomain.Profile
	res := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}
