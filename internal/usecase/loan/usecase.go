package loan

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "peerlend-backend/internal/domain/loan"
	offerDomain "peerlend-backend/internal/domain/offer"
	"peerlend-backend/internal/domain/session"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/usecase/evidence"
	"peerlend-backend/pkg/id"
)

type ListingCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, v any)
	Invalidate(ctx context.Context, keys ...string)
}

type Usecase struct {
	loans   domain.Repository
	uow     uow.UnitOfWork
	capture *evidence.Capture
	cache   ListingCache
}

func NewUsecase(loans domain.Repository, tx uow.UnitOfWork, capture *evidence.Capture, c ListingCache) *Usecase {
	return &Usecase{loans: loans, uow: tx, capture: capture, cache: c}
}

// Borrow creates a pending loan against an offer. The offer lookup and the
// loan insert run in a single transaction, so lender_id always matches the
// offer owner at insert time. Two different users may still borrow the same
// offer; only re-borrowing by the same user is rejected.
func (u *Usecase) Borrow(ctx context.Context, sess *session.Session, offerID string) (*LoanDTO, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Offers.GetByOfferID(ctx, offerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return offerDomain.ErrNotFound
			}
			return err
		}
		if o.UserID == sess.UserID {
			return domain.ErrOwnOffer
		}

		_, err = r.Loans.GetByOfferAndBorrower(ctx, offerID, sess.UserID)
		switch {
		case err == nil:
			return domain.ErrAlreadyBorrowed
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		l := &domain.Loan{
			LoanID:        id.NewID32(),
			LenderOfferID: o.OfferID,
			BorrowerID:    sess.UserID,
			LenderID:      o.UserID,
			Status:        domain.StatusPending,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		d := toDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, sess.UserID, dto.LenderID)
	return dto, nil
}

// ForBorrower lists the session user's loans, newest-first, enriched with the
// originating offer's display fields.
func (u *Usecase) ForBorrower(ctx context.Context, sess *session.Session) ([]LoanDetailsDTO, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}
	key := cache.BorrowerLoansKey(sess.UserID)
	if u.cache != nil {
		var cached []LoanDetailsDTO
		if u.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}
	rows, err := u.loans.ListByBorrower(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDetailsDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDetailsDTO(&rows[i]))
	}
	if u.cache != nil {
		u.cache.Set(ctx, key, out)
	}
	return out, nil
}

// ForLender lists loans taken against the session user's offers, plus a count
// of paid loans awaiting confirmation.
func (u *Usecase) ForLender(ctx context.Context, sess *session.Session) (*LenderBoard, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}
	key := cache.LenderLoansKey(sess.UserID)
	if u.cache != nil {
		var cached LenderBoard
		if u.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}
	rows, err := u.loans.ListByLender(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	board := &LenderBoard{Loans: make([]LoanDetailsDTO, 0, len(rows))}
	for i := range rows {
		board.Loans = append(board.Loans, toDetailsDTO(&rows[i]))
		if rows[i].Status == domain.StatusPaid {
			board.NotificationCount++
		}
	}
	if u.cache != nil {
		u.cache.Set(ctx, key, board)
	}
	return board, nil
}

// SubmitPayment moves a pending loan to paid with the borrower's evidence.
// The file (if any) is validated and uploaded before the transaction; the
// status transition itself happens under a row lock.
func (u *Usecase) SubmitPayment(ctx context.Context, sess *session.Session, loanID string, in PaymentInput) (*LoanDTO, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Note) == "" && in.File == nil {
		return nil, domain.ErrNoEvidence
	}

	// Cheap pre-checks so an invalid call never uploads a file.
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if l.BorrowerID != sess.UserID {
		return nil, domain.ErrNotBorrower
	}
	if !l.Status.CanTransitionTo(domain.StatusPaid) {
		return nil, domain.ErrInvalidTransition
	}

	ev, err := u.capture.Collect(ctx, loanID, in.Note, in.File)
	if err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.BorrowerID != sess.UserID {
			return domain.ErrNotBorrower
		}
		if err := l.Transition(domain.StatusPaid); err != nil {
			return err
		}
		l.PaymentProof = ev.Note
		l.PaymentFile = ev.FileURL
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		d := toDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	u.invalidate(ctx, dto.BorrowerID, dto.LenderID)
	return dto, nil
}

// Confirm moves a paid loan to confirmed, the terminal state. Only the lender
// may confirm, and only from paid.
func (u *Usecase) Confirm(ctx context.Context, sess *session.Session, loanID string) (*LoanDTO, error) {
	if sess == nil {
		return nil, session.ErrUnauthenticated
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.LenderID != sess.UserID {
			return domain.ErrNotLender
		}
		if err := l.Transition(domain.StatusConfirmed); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		d := toDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	u.invalidate(ctx, dto.BorrowerID, dto.LenderID)
	return dto, nil
}

// invalidate clears every listing scope a loan mutation can stale. Best
// effort: failures are logged inside the cache, never surfaced here.
func (u *Usecase) invalidate(ctx context.Context, borrowerID, lenderID string) {
	if u.cache == nil {
		return
	}
	u.cache.Invalidate(ctx,
		cache.OffersKey(),
		cache.BorrowerLoansKey(borrowerID),
		cache.LenderLoansKey(lenderID),
	)
}
