package loan

import (
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/usecase/evidence"
)

type LoanDTO struct {
	LoanID        string    `json:"loan_id"`
	LenderOfferID string    `json:"lender_offer_id"`
	BorrowerID    string    `json:"borrower_id"`
	LenderID      string    `json:"lender_id"`
	Status        string    `json:"status"`
	PaymentProof  string    `json:"payment_proof,omitempty"`
	PaymentFile   string    `json:"payment_file,omitempty"`
	// Evidence is the composed "note | url" form kept for legacy consumers.
	Evidence  string    `json:"evidence,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoanDetailsDTO struct {
	LoanDTO
	Offer    domain.OfferDetails     `json:"offer"`
	Borrower *domain.BorrowerDetails `json:"borrower,omitempty"`
}

// LenderBoard is the lender-facing listing; NotificationCount is the number
// of loans sitting in "paid" awaiting this lender's confirmation.
type LenderBoard struct {
	Loans             []LoanDetailsDTO `json:"loans"`
	NotificationCount int              `json:"notification_count"`
}

type PaymentInput struct {
	Note string
	File *evidence.File
}

func toDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:        l.LoanID,
		LenderOfferID: l.LenderOfferID,
		BorrowerID:    l.BorrowerID,
		LenderID:      l.LenderID,
		Status:        string(l.Status),
		PaymentProof:  l.PaymentProof,
		PaymentFile:   l.PaymentFile,
		Evidence:      evidence.Evidence{Note: l.PaymentProof, FileURL: l.PaymentFile}.String(),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toDetailsDTO(w *domain.WithDetails) LoanDetailsDTO {
	return LoanDetailsDTO{
		LoanDTO:  toDTO(&w.Loan),
		Offer:    w.Offer,
		Borrower: w.Borrower,
	}
}
