package loan

import "errors"

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
	ErrAlreadyBorrowed   = errors.New("offer already borrowed by this user")
	ErrOwnOffer          = errors.New("cannot borrow your own offer")
	ErrNotBorrower       = errors.New("only the borrower may submit payment")
	ErrNotLender         = errors.New("only the lender may confirm payment")
	ErrNoEvidence        = errors.New("payment evidence required (reference or file)")
)
