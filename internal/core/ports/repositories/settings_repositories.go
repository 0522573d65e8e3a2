package repositories

import (
	"context"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsRepository persists the per-user settings document.
// Writes have merge semantics: saving the goal leaves favorites untouched and
// vice versa.
type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)
	SaveMonthlyGoal(ctx context.Context, userID string, goal decimal.Decimal) error
	SaveFavorites(ctx context.Context, userID string, favorites []domain.Favorite) error
}

// PinRepository stores the bcrypt hash of a user's 6-digit PIN, keyed by
// username.
type PinRepository interface {
	FindPinHashByUsername(ctx context.Context, username string) (string, error)
	SavePinHash(ctx context.Context, username, pinHash string) error
	DeletePin(ctx context.Context, username string) error
}
