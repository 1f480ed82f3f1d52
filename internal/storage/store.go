// Package storage provides abstractions for session storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tipsplit/internal/models"
)

// ErrNotFound is returned when a bill does not exist.
var ErrNotFound = errors.New("bill not found")

// Store defines the interface for bill storage operations.
// This abstraction keeps the service layer independent of the backend.
type Store interface {
	// CreateBill persists a new bill.
	// ID, Title and CreatedAt are populated by the store when empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID, participants in roster order.
	// Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces the state of an existing bill.
	// Generated titles are regenerated from the new roster.
	// Returns ErrNotFound if the bill does not exist.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill and its participants.
	// Returns ErrNotFound if the bill does not exist.
	DeleteBill(ctx context.Context, billID string) error

	// CountBills returns the number of stored bills.
	CountBills(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
