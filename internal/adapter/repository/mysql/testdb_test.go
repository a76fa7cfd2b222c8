package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly loan schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	LoanID          string         `gorm:"size:32;column:loan_id"`
	LenderOfferID   string         `gorm:"size:32;column:lender_offer_id"`
	BorrowerID      string         `gorm:"size:32;column:borrower_id"`
	LenderID        string         `gorm:"size:32;column:lender_id"`
	Status          string         `gorm:"type:text;column:status"` // ← no enum
	PaymentProof    string         `gorm:"type:text;column:payment_proof"`
	PaymentFile     string         `gorm:"type:text;column:payment_file"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "active_loans" }

// offerSQLite and profileSQLite keep the money columns as plain floats so
// sqlite's AutoMigrate never sees a mysql decimal type.

type offerSQLite struct {
	ID            uint64         `gorm:"primaryKey;column:id"`
	OfferID       string         `gorm:"size:32;column:offer_id"`
	UserID        string         `gorm:"size:32;column:user_id"`
	FullName      string         `gorm:"column:full_name"`
	Contact       string         `gorm:"column:contact"`
	Amount        float64        `gorm:"column:amount"`
	PaymentMethod string         `gorm:"column:payment_method"`
	InterestRate  *float64       `gorm:"column:interest_rate"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (offerSQLite) TableName() string { return "lender_offers" }

type profileSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	UserID       string         `gorm:"size:32;uniqueIndex;column:user_id"`
	Email        string         `gorm:"uniqueIndex;column:email"`
	PasswordHash string         `gorm:"column:password_hash"`
	FullName     string         `gorm:"column:full_name"`
	Contact      string         `gorm:"column:contact"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (profileSQLite) TableName() string { return "profiles" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &offerSQLite{}, &profileSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
