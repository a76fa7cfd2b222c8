package uowmock

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/testutil/loanmock"
	"peerlend-backend/internal/testutil/offermock"
)

func TestUoW_WithinTx_ForwardsRepos(t *testing.T) {
	ctx := context.Background()

	loans := &loanmock.Repo{}
	offers := &offermock.Repo{}
	repos := uow.Repos{Offers: offers, Loans: loans}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Loans != loans || r.Offers != offers {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Defaults_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := New() // no funcs set

	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinLoanTx(ctx, "x", func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_ResolvesLoanWithPlainRead(t *testing.T) {
	ctx := context.Background()
	loanID := strings.Repeat("f", 32)

	stored := &loan.Loan{ID: 7, LoanID: loanID, Status: loan.StatusPending}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, id string) (*loan.Loan, error) {
			if id != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			return stored, nil
		},
	}
	m := Passthrough(uow.Repos{Loans: loans})

	innerCalled := false
	err := m.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		innerCalled = true
		if l != stored {
			t.Fatalf("loan not forwarded: %+v", l)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	if !innerCalled {
		t.Fatalf("inner fn not called")
	}

	// Missing loan short-circuits before the callback.
	err = m.WithinLoanTx(ctx, strings.Repeat("0", 32), func(uow.Repos, *loan.Loan) error {
		t.Fatalf("callback must not run for a missing loan")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestUoW_Reset(t *testing.T) {
	m := New()
	m.WithinTxFn = func(context.Context, func(uow.Repos) error) error { return nil }
	m.Reset()
	if m.WithinTxFn != nil || m.WithinLoanTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
