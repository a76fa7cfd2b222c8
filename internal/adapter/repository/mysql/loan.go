package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "peerlend-backend/internal/domain/loan"
	offerDomain "peerlend-backend/internal/domain/offer"
	profileDomain "peerlend-backend/internal/domain/profile"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByOfferAndBorrower(ctx context.Context, offerID, borrowerID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("lender_offer_id = ? AND borrower_id = ?", offerID, borrowerID).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListOfferIDsByBorrower(ctx context.Context, borrowerID string) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("borrower_id = ?", borrowerID).
		Pluck("lender_offer_id", &out)
	return out, res.Error
}

func (r *LoanRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]loanDomain.WithDetails, error) {
	loans, err := r.list(ctx, "borrower_id = ?", borrowerID)
	if err != nil {
		return nil, err
	}
	return r.enrich(ctx, loans, false)
}

func (r *LoanRepository) ListByLender(ctx context.Context, lenderID string) ([]loanDomain.WithDetails, error) {
	loans, err := r.list(ctx, "lender_id = ?", lenderID)
	if err != nil {
		return nil, err
	}
	return r.enrich(ctx, loans, true)
}

func (r *LoanRepository) list(ctx context.Context, cond string, arg any) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// enrich joins each loan with its offer's display fields at read time, and
// with the borrower's profile when the lender-facing view asks for it. Done
// as batched IN lookups rather than SQL joins so the soft-delete scopes of
// each table keep applying.
func (r *LoanRepository) enrich(ctx context.Context, loans []loanDomain.Loan, withBorrower bool) ([]loanDomain.WithDetails, error) {
	out := make([]loanDomain.WithDetails, 0, len(loans))
	if len(loans) == 0 {
		return out, nil
	}

	offerIDs := make([]string, 0, len(loans))
	borrowerIDs := make([]string, 0, len(loans))
	for _, l := range loans {
		offerIDs = append(offerIDs, l.LenderOfferID)
		borrowerIDs = append(borrowerIDs, l.BorrowerID)
	}

	var offers []offerDomain.Offer
	if err := r.db.WithContext(ctx).Where("offer_id IN ?", offerIDs).Find(&offers).Error; err != nil {
		return nil, err
	}
	offerByID := make(map[string]offerDomain.Offer, len(offers))
	for _, o := range offers {
		offerByID[o.OfferID] = o
	}

	profileByID := map[string]profileDomain.Profile{}
	if withBorrower {
		var profiles []profileDomain.Profile
		if err := r.db.WithContext(ctx).Where("user_id IN ?", borrowerIDs).Find(&profiles).Error; err != nil {
			return nil, err
		}
		for _, p := range profiles {
			profileByID[p.UserID] = p
		}
	}

	for _, l := range loans {
		row := loanDomain.WithDetails{Loan: l}
		if o, ok := offerByID[l.LenderOfferID]; ok {
			row.Offer = loanDomain.OfferDetails{
				FullName:      o.FullName,
				Contact:       o.Contact,
				Amount:        o.Amount,
				PaymentMethod: o.PaymentMethod,
				InterestRate:  o.InterestRate,
			}
		}
		if withBorrower {
			if p, ok := profileByID[l.BorrowerID]; ok {
				row.Borrower = &loanDomain.BorrowerDetails{
					FullName: p.FullName,
					Contact:  p.Contact,
					Email:    p.Email,
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}
