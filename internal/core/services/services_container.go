package services

import (
	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.SettingsRepo,
		repos.ReportCache,
		WithUndoWindow(cfg.UndoDeleteWindow),
	)

	container.Reporting = NewReportingService(
		repos.TransactionRepo,
		repos.ReportCache,
		WithReportCacheTTL(cfg.ReportCacheTTL),
	)

	container.Settings = NewSettingsService(repos.SettingsRepo)

	container.SessionLock = NewSessionLockService(
		repos.PinRepo,
		container.User,
		WithIdleTimeout(cfg.LockIdleTimeout),
		WithPollInterval(cfg.LockPollInterval),
	)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
