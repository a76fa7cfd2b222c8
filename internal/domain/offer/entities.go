package offer

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("offer not found")
	ErrInvalidAmount       = errors.New("offer amount must be greater than zero")
	ErrInvalidInterestRate = errors.New("interest rate must not be negative")
)

// Offer is a published willingness to lend a fixed amount under stated terms.
// Write-once: no update or delete path exists after creation.
type Offer struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	OfferID       string         `gorm:"size:32;uniqueIndex:ux_offers_offer_id_active" json:"offer_id"`
	UserID        string         `gorm:"size:32;index:idx_offers_user_active" json:"user_id"`
	FullName      string         `gorm:"size:255" json:"full_name"`
	Contact       string         `gorm:"size:64" json:"contact"`
	Amount        float64        `gorm:"type:decimal(18,2)" json:"amount"`
	PaymentMethod string         `gorm:"size:64" json:"payment_method"`
	InterestRate  *float64       `gorm:"type:decimal(6,2)" json:"interest_rate,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Offer) TableName() string { return "lender_offers" }
