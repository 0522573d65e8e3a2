package dto

import (
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateGoalRequest sets the monthly goal (target net balance).
type UpdateGoalRequest struct {
	MonthlyGoal decimal.Decimal `json:"monthlyGoal" binding:"required"`
}

// FavoriteRequest is a transaction template to toggle in the favorites list.
type FavoriteRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=income expense"`
}

// FavoriteResponse mirrors a stored favorite.
type FavoriteResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
}

// SettingsResponse is the per-user settings document.
type SettingsResponse struct {
	MonthlyGoal decimal.Decimal    `json:"monthlyGoal"`
	Favorites   []FavoriteResponse `json:"favorites"`
}

// ToggleFavoriteResponse reports the result of a favorites toggle.
type ToggleFavoriteResponse struct {
	Added bool `json:"added"`
}

// ToFavorite converts the request into a domain favorite.
func (r FavoriteRequest) ToFavorite() domain.Favorite {
	return domain.Favorite{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Type:        domain.TransactionType(r.Type),
	}
}

// ToSettingsResponse converts domain settings to their DTO.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	resp := SettingsResponse{
		MonthlyGoal: s.MonthlyGoal,
		Favorites:   make([]FavoriteResponse, len(s.Favorites)),
	}
	for i, f := range s.Favorites {
		resp.Favorites[i] = FavoriteResponse{
			Description: f.Description,
			Amount:      f.Amount,
			Category:    f.Category,
			Type:        string(f.Type),
		}
	}
	return resp
}
