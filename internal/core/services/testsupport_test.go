package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// In-memory fakes shared by the service suites. The multi-step flows under
// test (staged deletes, lock transitions) are stateful, so real state beats
// call-by-call mocks here.

type fakeTxnRepo struct {
	mu   sync.Mutex
	txns map[string]domain.Transaction
}

func newFakeTxnRepo() *fakeTxnRepo {
	return &fakeTxnRepo{txns: make(map[string]domain.Transaction)}
}

func (r *fakeTxnRepo) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns[txn.TransactionID] = txn
	return nil
}

func (r *fakeTxnRepo) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txns[txn.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	r.txns[txn.TransactionID] = txn
	return nil
}

func (r *fakeTxnRepo) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[transactionID]
	if !ok || txn.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(r.txns, transactionID)
	return nil
}

func (r *fakeTxnRepo) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[transactionID]
	if !ok || txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	out := txn
	return &out, nil
}

func (r *fakeTxnRepo) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Transaction{}
	for _, txn := range r.txns {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[string]domain.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[string]domain.Settings)}
}

func (r *fakeSettingsRepo) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		return &domain.Settings{UserID: userID, Favorites: []domain.Favorite{}}, nil
	}
	out := s
	return &out, nil
}

func (r *fakeSettingsRepo) SaveMonthlyGoal(ctx context.Context, userID string, goal decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings[userID]
	s.UserID = userID
	s.MonthlyGoal = goal
	r.settings[userID] = s
	return nil
}

func (r *fakeSettingsRepo) SaveFavorites(ctx context.Context, userID string, favorites []domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings[userID]
	s.UserID = userID
	s.Favorites = favorites
	r.settings[userID] = s
	return nil
}

type fakePinRepo struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newFakePinRepo() *fakePinRepo {
	return &fakePinRepo{hashes: make(map[string]string)}
}

func (r *fakePinRepo) FindPinHashByUsername(ctx context.Context, username string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, ok := r.hashes[username]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return hash, nil
}

func (r *fakePinRepo) SavePinHash(ctx context.Context, username, pinHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashes[username] = pinHash
	return nil
}

func (r *fakePinRepo) DeletePin(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hashes, username)
	return nil
}

type fakeReportCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{entries: make(map[string][]byte)}
}

func (c *fakeReportCache) Get(ctx context.Context, userID, month string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[userID+":"+month], nil
}

func (c *fakeReportCache) Set(ctx context.Context, userID, month string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID+":"+month] = payload
	return nil
}

func (c *fakeReportCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		delete(c.entries, key)
	}
	c.invalidated++
	return nil
}
