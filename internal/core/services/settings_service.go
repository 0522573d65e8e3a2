package services

import (
	"context"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
}

// NewSettingsService creates the user settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	return s.settingsRepo.GetSettings(ctx, userID)
}

func (s *settingsService) SetMonthlyGoal(ctx context.Context, userID string, goal decimal.Decimal) error {
	if goal.IsNegative() {
		return apperrors.NewAppError(400, "monthly goal must not be negative", apperrors.ErrValidation)
	}
	if err := s.settingsRepo.SaveMonthlyGoal(ctx, userID, goal); err != nil {
		return err
	}
	s.LogInfo(ctx, "monthly goal updated", "user_id", userID)
	return nil
}

// ToggleFavorite adds the favorite, or removes the existing one with the
// same (description, category) pair. Returns true when added.
func (s *settingsService) ToggleFavorite(ctx context.Context, userID string, fav domain.Favorite) (bool, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, userID)
	if err != nil {
		return false, err
	}

	kept := make([]domain.Favorite, 0, len(settings.Favorites)+1)
	removed := false
	for _, existing := range settings.Favorites {
		if existing.SameAs(fav) {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		kept = append(kept, fav)
	}

	if err := s.settingsRepo.SaveFavorites(ctx, userID, kept); err != nil {
		return false, err
	}
	return !removed, nil
}
