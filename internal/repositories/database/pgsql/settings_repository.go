package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func favoritesToJSON(favorites []domain.Favorite) ([]byte, error) {
	entries := make([]models.FavoriteEntry, len(favorites))
	for i, f := range favorites {
		entries[i] = models.FavoriteEntry{
			Description: f.Description,
			Amount:      f.Amount.String(),
			Category:    f.Category,
			Type:        string(f.Type),
		}
	}
	return json.Marshal(entries)
}

func favoritesFromJSON(raw []byte) ([]domain.Favorite, error) {
	if len(raw) == 0 {
		return []domain.Favorite{}, nil
	}
	var entries []models.FavoriteEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	favorites := make([]domain.Favorite, len(entries))
	for i, e := range entries {
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse favorite amount %q: %w", e.Amount, err)
		}
		favorites[i] = domain.Favorite{
			Description: e.Description,
			Amount:      amount,
			Category:    e.Category,
			Type:        domain.TransactionType(e.Type),
		}
	}
	return favorites, nil
}

func (r *PgxSettingsRepository) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	query := `
        SELECT user_id, monthly_goal, favorites, updated_at
        FROM user_settings
        WHERE user_id = $1;
    `
	var m models.Settings
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.MonthlyGoal,
		&m.Favorites,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing settings row reads as defaults, not an error.
			return &domain.Settings{
				UserID:      userID,
				MonthlyGoal: decimal.Zero,
				Favorites:   []domain.Favorite{},
			}, nil
		}
		return nil, fmt.Errorf("failed to get settings for user %s: %w", userID, err)
	}

	favorites, err := favoritesFromJSON(m.Favorites)
	if err != nil {
		return nil, err
	}
	return &domain.Settings{
		UserID:      m.UserID,
		MonthlyGoal: m.MonthlyGoal,
		Favorites:   favorites,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (r *PgxSettingsRepository) SaveMonthlyGoal(ctx context.Context, userID string, goal decimal.Decimal) error {
	query := `
        INSERT INTO user_settings (user_id, monthly_goal, favorites, updated_at)
        VALUES ($1, $2, '[]'::jsonb, $3)
        ON CONFLICT (user_id) DO UPDATE SET
            monthly_goal = EXCLUDED.monthly_goal,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := r.Pool.Exec(ctx, query, userID, goal, time.Now()); err != nil {
		return fmt.Errorf("failed to save monthly goal: %w", err)
	}
	return nil
}

func (r *PgxSettingsRepository) SaveFavorites(ctx context.Context, userID string, favorites []domain.Favorite) error {
	raw, err := favoritesToJSON(favorites)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	query := `
        INSERT INTO user_settings (user_id, monthly_goal, favorites, updated_at)
        VALUES ($1, 0, $2, $3)
        ON CONFLICT (user_id) DO UPDATE SET
            favorites = EXCLUDED.favorites,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := r.Pool.Exec(ctx, query, userID, raw, time.Now()); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

type PgxPinRepository struct {
	BaseRepository
}

func newPgxPinRepository(db *pgxpool.Pool) portsrepo.PinRepository {
	return &PgxPinRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PinRepository = (*PgxPinRepository)(nil)

func (r *PgxPinRepository) FindPinHashByUsername(ctx context.Context, username string) (string, error) {
	query := `SELECT pin_hash FROM user_pins WHERE username = $1;`
	var hash string
	err := r.Pool.QueryRow(ctx, query, username).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find pin for %s: %w", username, err)
	}
	return hash, nil
}

func (r *PgxPinRepository) SavePinHash(ctx context.Context, username, pinHash string) error {
	query := `
        INSERT INTO user_pins (username, pin_hash, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (username) DO UPDATE SET
            pin_hash = EXCLUDED.pin_hash,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := r.Pool.Exec(ctx, query, username, pinHash, time.Now()); err != nil {
		return fmt.Errorf("failed to save pin: %w", err)
	}
	return nil
}

func (r *PgxPinRepository) DeletePin(ctx context.Context, username string) error {
	query := `DELETE FROM user_pins WHERE username = $1;`
	if _, err := r.Pool.Exec(ctx, query, username); err != nil {
		return fmt.Errorf("failed to delete pin: %w", err)
	}
	return nil
}
