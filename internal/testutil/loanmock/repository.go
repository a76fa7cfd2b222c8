package loanmock

import (
	"context"

	domain "peerlend-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn             func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn    func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByOfferAndBorrowerFn   func(ctx context.Context, offerID, borrowerID string) (*domain.Loan, error)
	ListOfferIDsByBorrowerFn  func(ctx context.Context, borrowerID string) ([]string, error)
	ListByBorrowerFn          func(ctx context.Context, borrowerID string) ([]domain.WithDetails, error)
	ListByLenderFn            func(ctx context.Context, lenderID string) ([]domain.WithDetails, error)
	SaveFn                    func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOfferAndBorrower(ctx context.Context, offerID, borrowerID string) (*domain.Loan, error) {
	if m.GetByOfferAndBorrowerFn != nil {
		return m.GetByOfferAndBorrowerFn(ctx, offerID, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOfferIDsByBorrower(ctx context.Context, borrowerID string) ([]string, error) {
	if m.ListOfferIDsByBorrowerFn != nil {
		return m.ListOfferIDsByBorrowerFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.WithDetails, error) {
	if m.ListByBorrowerFn != nil {
		return m.ListByBorrowerFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) ListByLender(ctx context.Context, lenderID string) ([]domain.WithDetails, error) {
	if m.ListByLenderFn != nil {
		return m.ListByLenderFn(ctx, lenderID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
