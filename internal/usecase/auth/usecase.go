package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"peerlend-backend/internal/domain/profile"
	"peerlend-backend/pkg/id"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Denylist revokes session token ids until their expiry; backed by Redis.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

type Usecase struct {
	profiles profile.Repository
	denylist Denylist
	secret   []byte
	ttl      time.Duration
}

func NewUsecase(profiles profile.Repository, denylist Denylist, secret []byte, ttl time.Duration) *Usecase {
	return &Usecase{profiles: profiles, denylist: denylist, secret: secret, ttl: ttl}
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
}

type AuthDTO struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
}

func (u *Usecase) SignUp(ctx context.Context, in SignUpInput) (*AuthDTO, error) {
	email := normalizeEmail(in.Email)
	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}

	_, err := u.profiles.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, profile.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &profile.Profile{
		UserID:       id.NewID32(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Contact:      strings.TrimSpace(in.Contact),
	}
	if err := u.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return u.toAuthDTO(p)
}

func (u *Usecase) SignIn(ctx context.Context, email, password string) (*AuthDTO, error) {
	p, err := u.profiles.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u.toAuthDTO(p)
}

// SignOut clears the session by revoking the token's jti for its remaining
// lifetime. Already-expired tokens are a no-op.
func (u *Usecase) SignOut(ctx context.Context, rawToken string) error {
	tok, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return u.secret, nil
	})
	if err != nil || !tok.Valid {
		return ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	if jti == "" {
		return ErrInvalidToken
	}
	return u.denylist.Revoke(ctx, jti, time.Until(time.Unix(int64(exp), 0)))
}

func (u *Usecase) toAuthDTO(p *profile.Profile) (*AuthDTO, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   p.UserID,
		"email": p.Email,
		"jti":   id.NewID32(),
		"iat":   now.Unix(),
		"exp":   now.Add(u.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}
	return &AuthDTO{
		Token:    signed,
		UserID:   p.UserID,
		Email:    p.Email,
		FullName: p.FullName,
		Contact:  p.Contact,
	}, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
