package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusConfirmed Status = "confirmed"
)

// transitions is the only allowed forward path. There is no cancel, reject
// or reverse edge; confirmed is terminal.
var transitions = map[Status]Status{
	StatusPending: StatusPaid,
	StatusPaid:    StatusConfirmed,
}

func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s] == next
}

// Loan tracks one borrower acting on one lender offer through the payment
// status pipeline. LenderID is copied from the offer owner at creation time.
type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	LenderOfferID   string         `gorm:"size:32;index:idx_loans_offer_active" json:"lender_offer_id"`
	BorrowerID      string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	LenderID        string         `gorm:"size:32;index:idx_loans_lender_active" json:"lender_id"`
	Status          Status         `gorm:"type:enum('pending','paid','confirmed');default:'pending'" json:"status"`
	PaymentProof    string         `gorm:"type:text" json:"payment_proof,omitempty"`
	PaymentFile     string         `gorm:"type:text" json:"payment_file,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "active_loans" }

// Transition moves the loan to next, rejecting any edge not in the allowed
// table (e.g. paid->paid, or confirming a loan that is still pending).
func (l *Loan) Transition(next Status) error {
	if !l.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	l.Status = next
	l.StatusUpdatedAt = time.Now().UTC()
	return nil
}

// OfferDetails are the originating offer's display fields carried on the
// read-time join; never stored with the loan.
type OfferDetails struct {
	FullName      string   `json:"full_name"`
	Contact       string   `json:"contact"`
	Amount        float64  `json:"amount"`
	PaymentMethod string   `json:"payment_method"`
	InterestRate  *float64 `json:"interest_rate,omitempty"`
}

// BorrowerDetails enrich the lender-facing view.
type BorrowerDetails struct {
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
}

type WithDetails struct {
	Loan
	Offer    OfferDetails     `json:"offer"`
	Borrower *BorrowerDetails `json:"borrower,omitempty"`
}
