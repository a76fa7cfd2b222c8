package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByOfferAndBorrower(ctx context.Context, offerID, borrowerID string) (*Loan, error)
	// ListOfferIDsByBorrower feeds the marketplace exclusion of offers the
	// caller already borrowed against.
	ListOfferIDsByBorrower(ctx context.Context, borrowerID string) ([]string, error)
	// Listings are newest-first and enriched with the offer's display fields;
	// lender-side rows additionally carry the borrower's profile fields.
	ListByBorrower(ctx context.Context, borrowerID string) ([]WithDetails, error)
	ListByLender(ctx context.Context, lenderID string) ([]WithDetails, error)
	Save(ctx context.Context, l *Loan) error
}
