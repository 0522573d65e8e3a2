package services

import (
	"context"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsSvcFacade defines operations on the per-user settings document.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)
	SetMonthlyGoal(ctx context.Context, userID string, goal decimal.Decimal) error

	// ToggleFavorite adds the favorite, or removes it when one with the
	// same (description, category) pair already exists. Returns true when
	// the favorite was added.
	ToggleFavorite(ctx context.Context, userID string, fav domain.Favorite) (bool, error)
}
