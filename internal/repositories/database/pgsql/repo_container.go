package pgsql

import (
	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository against the shared pool.
// The report cache slot is filled separately by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, reportCache portsrepo.ReportCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		SettingsRepo:    newPgxSettingsRepository(dbPool),
		PinRepo:         newPgxPinRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		ReportCache:     reportCache,
	}
}
