package loan

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"gorm.io/gorm"

	domain "peerlend-backend/internal/domain/loan"
	offerDomain "peerlend-backend/internal/domain/offer"
	"peerlend-backend/internal/domain/session"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/testutil/cachemock"
	"peerlend-backend/internal/testutil/loanmock"
	"peerlend-backend/internal/testutil/offermock"
	"peerlend-backend/internal/testutil/storemock"
	"peerlend-backend/internal/testutil/uowmock"
	"peerlend-backend/internal/usecase/evidence"
)

var (
	lenderID   = strings.Repeat("a", 32)
	borrowerID = strings.Repeat("b", 32)
	offerID    = strings.Repeat("1", 32)
	loanID     = strings.Repeat("f", 32)

	lenderSess   = &session.Session{UserID: lenderID}
	borrowerSess = &session.Session{UserID: borrowerID}
)

func newCapture() *evidence.Capture { return evidence.NewCapture(storemock.New()) }

func borrowRepos(loans *loanmock.Repo) uow.Repos {
	return uow.Repos{
		Offers: &offermock.Repo{
			GetByOfferIDFn: func(ctx context.Context, id string) (*offerDomain.Offer, error) {
				if id != offerID {
					return nil, gorm.ErrRecordNotFound
				}
				return &offerDomain.Offer{OfferID: offerID, UserID: lenderID, Amount: 5000, PaymentMethod: "M-Pesa"}, nil
			},
		},
		Loans: loans,
	}
}

func TestBorrow_CreatesPendingLoan(t *testing.T) {
	var created *domain.Loan
	loans := &loanmock.Repo{
		GetByOfferAndBorrowerFn: func(ctx context.Context, oid, bid string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, l *domain.Loan) error { created = l; return nil },
	}
	c := cachemock.New()
	uc := NewUsecase(loans, uowmock.Passthrough(borrowRepos(loans)), newCapture(), c)

	dto, err := uc.Borrow(context.Background(), borrowerSess, offerID)
	if err != nil {
		t.Fatalf("Borrow: %v", err)
	}
	if dto.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", dto.Status)
	}
	if dto.LenderID != lenderID {
		t.Fatalf("lender_id = %s, want offer owner", dto.LenderID)
	}
	if created == nil || created.BorrowerID != borrowerID || len(created.LoanID) != 32 {
		t.Fatalf("unexpected persisted loan: %+v", created)
	}
	if len(c.Invalidated) == 0 {
		t.Fatalf("borrow must invalidate cached listings")
	}
}

func TestBorrow_OfferNotFound(t *testing.T) {
	loans := &loanmock.Repo{}
	uc := NewUsecase(loans, uowmock.Passthrough(borrowRepos(loans)), newCapture(), nil)

	_, err := uc.Borrow(context.Background(), borrowerSess, strings.Repeat("9", 32))
	if !errors.Is(err, offerDomain.ErrNotFound) {
		t.Fatalf("err = %v, want offer ErrNotFound", err)
	}
}

func TestBorrow_RejectsOwnOffer(t *testing.T) {
	loans := &loanmock.Repo{}
	uc := NewUsecase(loans, uowmock.Passthrough(borrowRepos(loans)), newCapture(), nil)

	_, err := uc.Borrow(context.Background(), lenderSess, offerID)
	if !errors.Is(err, domain.ErrOwnOffer) {
		t.Fatalf("err = %v, want ErrOwnOffer", err)
	}
}

func TestBorrow_RejectsSecondBorrowBySameUser(t *testing.T) {
	loans := &loanmock.Repo{
		GetByOfferAndBorrowerFn: func(ctx context.Context, oid, bid string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: loanID, LenderOfferID: oid, BorrowerID: bid}, nil
		},
	}
	uc := NewUsecase(loans, uowmock.Passthrough(borrowRepos(loans)), newCapture(), nil)

	_, err := uc.Borrow(context.Background(), borrowerSess, offerID)
	if !errors.Is(err, domain.ErrAlreadyBorrowed) {
		t.Fatalf("err = %v, want ErrAlreadyBorrowed", err)
	}
}

func TestBorrow_RequiresSession(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, uowmock.New(), newCapture(), nil)
	if _, err := uc.Borrow(context.Background(), nil, offerID); err != session.ErrUnauthenticated {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func pendingLoan() *domain.Loan {
	return &domain.Loan{
		LoanID:        loanID,
		LenderOfferID: offerID,
		BorrowerID:    borrowerID,
		LenderID:      lenderID,
		Status:        domain.StatusPending,
	}
}

func loanRepoWith(l *domain.Loan) *loanmock.Repo {
	return &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			if id != l.LoanID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *l
			return &cp, nil
		},
		SaveFn: func(ctx context.Context, saved *domain.Loan) error { *l = *saved; return nil },
	}
}

func TestSubmitPayment_TextProof(t *testing.T) {
	l := pendingLoan()
	loans := loanRepoWith(l)
	c := cachemock.New()
	uc := NewUsecase(loans, uowmock.Passthrough(uow.Repos{Loans: loans}), newCapture(), c)

	dto, err := uc.SubmitPayment(context.Background(), borrowerSess, loanID, PaymentInput{Note: "REF999"})
	if err != nil {
		t.Fatalf("SubmitPayment: %v", err)
	}
	if dto.Status != string(domain.StatusPaid) {
		t.Fatalf("status = %s, want paid", dto.Status)
	}
	if dto.PaymentProof != "REF999" || dto.Evidence != "REF999" {
		t.Fatalf("evidence: %+v", dto)
	}
	if l.Status != domain.StatusPaid {
		t.Fatalf("loan not persisted as paid: %+v", l)
	}
	if len(c.Invalidated) == 0 {
		t.Fatalf("payment must invalidate cached listings")
	}
}

func TestSubmitPayment_WithFileComposesEvidence(t *testing.T) {
	l := pendingLoan()
	loans := loanRepoWith(l)
	uc := NewUsecase(loans, uowmock.Passthrough(uow.Repos{Loans: loans}), newCapture(), nil)

	f := &evidence.File{Name: "r.png", ContentType: "image/png", Size: 4, Reader: io.NopCloser(strings.NewReader("abcd"))}
	dto, err := uc.SubmitPayment(context.Background(), borrowerSess, loanID, PaymentInput{Note: "TX123", File: f})
	if err != nil {
		t.Fatalf("SubmitPayment: %v", err)
	}
	if dto.PaymentProof != "TX123" || dto.PaymentFile == "" {
		t.Fatalf("structured evidence missing: %+v", dto)
	}
	want := "TX123 | " + dto.PaymentFile
	if dto.Evidence != want {
		t.Fatalf("composed evidence = %q, want %q", dto.Evidence, want)
	}
}

func TestSubmitPayment_RequiresEvidence(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, uowmock.New(), newCapture(), nil)
	_, err := uc.SubmitPayment(context.Background(), borrowerSess, loanID, PaymentInput{Note: "   "})
	if !errors.Is(err, domain.ErrNoEvidence) {
		t.Fatalf("err = %v, want ErrNoEvidence", err)
	}
}

func TestSubmitPayment_OnlyBorrower(t *testing.T) {
	l := pendingLoan()
	loans := loanRepoWith(l)
	uc := NewUsecase(loans, uowmock.Passthrough(uow.Repos{Loans: loans}), newCapture(), nil)

	_, err := uc.SubmitPayment(context.Background(), lenderSess, loanID, PaymentInput{Note: "REF"})
	if !errors.Is(err, domain.ErrNotBorrower) {
		t.Fatalf("err = %v, want ErrNotBorrower", err)
	}
}

func TestSubmitPayment_RejectsOutOfOrder(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusPaid, domain.StatusConfirmed} {
		l := pendingLoan()
		l.Status = status
		loans := loanRepoWith(l)
		uc := NewUsecase(loans, uowmock.Passthrough(uow.Repos{Loans: loans}), newCapture(), nil)

		_, err := uc.SubmitPayment(context.Background(), borrowerSess, loanID, PaymentInput{Note: "REF"})
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("status %s: err = %v, want ErrInvalidTransition", status, err)
		}
	}
}

func TestSubmitPayment_NotFound(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(loans, uowmock.New(), newCapture(), nil)
	_, err := uc.SubmitPayment(context.Background(), borrowerSess, loanID, PaymentInput{Note: "REF"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestConfirm_FromPaid(t *testing.T) {
	l := pendingLoan()
	l.Status = domain.StatusPaid
	loans := loanRepoWith(l)
	c := cachemock.New()
	uc := NewUsecase(loans, uowmock.Passthrough(uow.Repos{Loans: loans}), newCapture(), c)

	dto, err := uc.Confirm(context.Background(), lenderSess, loanID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if dto.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status = %s, want confirmed", dto.Status)
	}
	if l.Status != domain.StatusConfirmed {
		t.Fatalf("loan not persisted as confirmed")
	}
	if len(c.Invalidated) == 0 {
		t.Fatalf("confirm must invalidate cached listings")
	}
}

func TestConfirm_RejectsPendingAndConfirmed(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusPending, domain.StatusConfirmed} {
		l := pendingLoan()
		l.Status = status
		loans := loanRepoWith(l)
		uc := NewUsecase(loans, uowmock.Passthrough(uow.Repos{Loans: loans}), newCapture(), nil)

		_, err := uc.Confirm(context.Background(), lenderSess, loanID)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("status %s: err = %v, want ErrInvalidTransition", status, err)
		}
	}
}

func TestConfirm_OnlyLender(t *testing.T) {
	l := pendingLoan()
	l.Status = domain.StatusPaid
	loans := loanRepoWith(l)
	uc := NewUsecase(loans, uowmock.Passthrough(uow.Repos{Loans: loans}), newCapture(), nil)

	_, err := uc.Confirm(context.Background(), borrowerSess, loanID)
	if !errors.Is(err, domain.ErrNotLender) {
		t.Fatalf("err = %v, want ErrNotLender", err)
	}
}

func TestForLender_CountsPaidNotifications(t *testing.T) {
	loans := &loanmock.Repo{
		ListByLenderFn: func(ctx context.Context, id string) ([]domain.WithDetails, error) {
			return []domain.WithDetails{
				{Loan: domain.Loan{LoanID: strings.Repeat("1", 32), Status: domain.StatusPaid}},
				{Loan: domain.Loan{LoanID: strings.Repeat("2", 32), Status: domain.StatusPending}},
				{Loan: domain.Loan{LoanID: strings.Repeat("3", 32), Status: domain.StatusPaid}},
			}, nil
		},
	}
	uc := NewUsecase(loans, uowmock.New(), newCapture(), nil)

	board, err := uc.ForLender(context.Background(), lenderSess)
	if err != nil {
		t.Fatalf("ForLender: %v", err)
	}
	if board.NotificationCount != 2 {
		t.Fatalf("notification_count = %d, want 2", board.NotificationCount)
	}
	if len(board.Loans) != 3 {
		t.Fatalf("len = %d, want 3", len(board.Loans))
	}
}

func TestForBorrower_CachesListing(t *testing.T) {
	calls := 0
	loans := &loanmock.Repo{
		ListByBorrowerFn: func(ctx context.Context, id string) ([]domain.WithDetails, error) {
			calls++
			return []domain.WithDetails{{Loan: domain.Loan{LoanID: loanID, Status: domain.StatusPending}}}, nil
		},
	}
	c := cachemock.New()
	uc := NewUsecase(loans, uowmock.New(), newCapture(), c)

	for i := 0; i < 2; i++ {
		out, err := uc.ForBorrower(context.Background(), borrowerSess)
		if err != nil {
			t.Fatalf("ForBorrower: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("len = %d, want 1", len(out))
		}
	}
	if calls != 1 {
		t.Fatalf("repo hit %d times, want 1", calls)
	}
}
