package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripExpenseInput is one expense line captured on a completed trip.
type TripExpenseInput struct {
	Type   string          `json:"type" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
}

// TripCompletedRequest is the domain event a completed trip emits toward the
// ledger: freight revenue receivable from the client plus the trip's expense
// lines paid from cash.
type TripCompletedRequest struct {
	TripID        string             `json:"tripID" binding:"required"`
	ClientID      string             `json:"clientID" binding:"required"`
	Route         string             `json:"route"`
	FreightAmount decimal.Decimal    `json:"freightAmount" binding:"required,positivedecimal"`
	Expenses      []TripExpenseInput `json:"expenses" binding:"dive"`
	// CompletedAt is an RFC3339 timestamp; the batch posts on its date.
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
}
