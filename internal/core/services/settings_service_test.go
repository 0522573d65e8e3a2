package services_test

import (
	"context"
	"testing"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	repo    *fakeSettingsRepo
	service portssvc.SettingsSvcFacade
}

func (s *SettingsServiceTestSuite) SetupTest() {
	s.repo = newFakeSettingsRepo()
	s.service = services.NewSettingsService(s.repo)
}

func (s *SettingsServiceTestSuite) TestMonthlyGoal() {
	ctx := context.Background()

	err := s.service.SetMonthlyGoal(ctx, testUserID, decimal.NewFromInt(-100))
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	s.Require().NoError(s.service.SetMonthlyGoal(ctx, testUserID, decimal.NewFromInt(5000)))

	settings, err := s.service.GetSettings(ctx, testUserID)
	s.Require().NoError(err)
	s.True(settings.MonthlyGoal.Equal(decimal.NewFromInt(5000)))
}

func (s *SettingsServiceTestSuite) TestToggleFavorite() {
	ctx := context.Background()
	fav := domain.Favorite{
		Description: "ค่าส่งสินค้า",
		Amount:      decimal.NewFromInt(40),
		Category:    "ค่าขนส่ง",
		Type:        domain.Expense,
	}

	added, err := s.service.ToggleFavorite(ctx, testUserID, fav)
	s.Require().NoError(err)
	s.True(added)

	settings, err := s.service.GetSettings(ctx, testUserID)
	s.Require().NoError(err)
	s.Require().Len(settings.Favorites, 1)

	// Same description and category toggles off, even with a new amount.
	again := fav
	again.Amount = decimal.NewFromInt(60)
	added, err = s.service.ToggleFavorite(ctx, testUserID, again)
	s.Require().NoError(err)
	s.False(added)

	settings, err = s.service.GetSettings(ctx, testUserID)
	s.Require().NoError(err)
	s.Empty(settings.Favorites)
}

func (s *SettingsServiceTestSuite) TestGoalAndFavoritesDoNotClobberEachOther() {
	ctx := context.Background()
	fav := domain.Favorite{Description: "น้ำแข็ง", Amount: decimal.NewFromInt(20), Category: "ต้นทุนสินค้า", Type: domain.Expense}

	_, err := s.service.ToggleFavorite(ctx, testUserID, fav)
	s.Require().NoError(err)
	s.Require().NoError(s.service.SetMonthlyGoal(ctx, testUserID, decimal.NewFromInt(3000)))

	settings, err := s.service.GetSettings(ctx, testUserID)
	s.Require().NoError(err)
	s.Len(settings.Favorites, 1)
	s.True(settings.MonthlyGoal.Equal(decimal.NewFromInt(3000)))
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
