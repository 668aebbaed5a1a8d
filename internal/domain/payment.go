package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // ID generation
	"gorm.io/gorm"           // GORM ORM library
)

// PaymentStatus is the lifecycle state of a payment record
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// DefaultCurrency is applied when a payment is created without one
const DefaultCurrency = "USD"

// Valid reports whether s is one of the four known statuses
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment Model
type Payment struct {
	ID                       string        `gorm:"primaryKey;size:36" json:"_id"`
	OrderNumber              string        `gorm:"size:191;uniqueIndex;not null" json:"orderNumber"`
	CustomerName             string        `gorm:"not null" json:"customerName"`
	CustomerEmail            string        `gorm:"not null" json:"customerEmail"`
	CustomerPhone            string        `gorm:"not null" json:"customerPhone"`
	Product                  string        `gorm:"not null" json:"product"`
	Amount                   float64       `gorm:"not null" json:"amount"`
	Currency                 string        `gorm:"size:8;not null;default:USD" json:"currency"`
	PaymentMethod            string        `gorm:"not null" json:"paymentMethod"`
	CardType                 string        `json:"cardType,omitempty"`
	Last4Digits              string        `gorm:"column:last4_digits;size:4" json:"last4Digits,omitempty"`
	Status                   PaymentStatus `gorm:"size:16;index;not null;default:pending" json:"status"`
	ExternalPaymentReference string        `gorm:"column:external_payment_reference" json:"stripePaymentId,omitempty"` // Processor-side reference
	CheckInDate              *time.Time    `json:"checkInDate,omitempty"`
	CheckOutDate             *time.Time    `json:"checkOutDate,omitempty"`
	NumberOfGuests           int           `gorm:"not null;default:1" json:"numberOfGuests"`
	RoomType                 string        `json:"roomType,omitempty"`
	SpecialRequests          string        `json:"specialRequests,omitempty"`
	Notes                    string        `json:"notes,omitempty"`
	CreatedAt                time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt                time.Time     `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PaymentStats aggregates payment records
type PaymentStats struct {
	TotalPayments     int64   `json:"totalPayments"`
	CompletedPayments int64   `json:"completedPayments"`
	PendingPayments   int64   `json:"pendingPayments"`
	FailedPayments    int64   `json:"failedPayments"`
	TotalAmount       float64 `json:"totalAmount"`
	AverageAmount     float64 `json:"averageAmount"`
}
