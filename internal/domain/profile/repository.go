package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetManyByUserIDs(ctx context.Context, userIDs []string) (map[string]Profile, error)
}
