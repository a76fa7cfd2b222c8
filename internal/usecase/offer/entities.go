package offer

import "time"

type CreateOfferInput struct {
	FullName      string   `json:"full_name"`
	Contact       string   `json:"contact"`
	Amount        float64  `json:"amount"`
	PaymentMethod string   `json:"payment_method"`
	InterestRate  *float64 `json:"interest_rate,omitempty"`
}

type OfferDTO struct {
	OfferID       string    `json:"offer_id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Contact       string    `json:"contact"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	InterestRate  *float64  `json:"interest_rate,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
