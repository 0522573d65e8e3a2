package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	TransactionRepo TransactionRepository
	SettingsRepo    SettingsRepository
	PinRepo         PinRepository
	UserRepo        UserRepository
	ReportCache     ReportCache
}
