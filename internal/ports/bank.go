package ports

import "context"

// WalletUpdate represents a single chip change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// Bank defines the interface for managing game chips.
type Bank interface {
	// GetBalance retrieves the current chip balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies multiple wallet changes.
	// This is used at the end of a game to settle stakes between the teams.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
