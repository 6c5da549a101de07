// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, verification-gate
// check, transaction management, persistence, and post-commit push of the
// realtime envelopes created along the way.
package commands

import (
	"context"

	"parcelmatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest interface that covers the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// BidRepoFactory provides access to the bid repository within a transaction.
	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// ParcelUoW manages transactions for parcel lifecycle operations that
	// never touch bids: posting, progress updates.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		AccountRepoFactory
		NotificationRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// BiddingUoW manages transactions that span the parcel and its bids.
	// Bid selection updates the parcel, the winning bid and every rejected
	// competitor through one of these; committing them separately could
	// leave two selected bids visible.
	BiddingUoW interface {
		TxManager
		ParcelRepoFactory
		BidRepoFactory
		AccountRepoFactory
		NotificationRepoFactory
	}

	// BiddingUoWFactory creates new bidding unit of work instances.
	BiddingUoWFactory interface {
		Create() BiddingUoW
	}

	// NotificationUoW manages transactions for notification-only operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
