package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/utils"
)

const (
	defaultIdleTimeout  = 5 * time.Minute
	defaultPollInterval = 10 * time.Second

	// Sessions untouched for this long are evicted entirely; the next
	// request recreates them in their initial locked state.
	sessionEvictAfter = 24 * time.Hour
)

// lockSession is one (user, session) lock state machine instance.
type lockSession struct {
	username      string
	state         domain.LockState
	pendingChange bool
	lastActivity  time.Time
}

func (l *lockSession) status() domain.LockStatus {
	return domain.LockStatus{State: l.state, PendingChange: l.pendingChange}
}

type sessionLockService struct {
	BaseService
	pinRepo portsrepo.PinRepository
	userSvc portssvc.UserSvcFacade

	idleTimeout  time.Duration
	pollInterval time.Duration
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*lockSession
}

// SessionLockOption configures the session lock service.
type SessionLockOption func(*sessionLockService)

// WithIdleTimeout overrides how long an unlocked session may sit idle.
func WithIdleTimeout(d time.Duration) SessionLockOption {
	return func(s *sessionLockService) { s.idleTimeout = d }
}

// WithPollInterval overrides the idle watcher's tick interval.
func WithPollInterval(d time.Duration) SessionLockOption {
	return func(s *sessionLockService) { s.pollInterval = d }
}

// WithLockNowFunc overrides the clock, for tests.
func WithLockNowFunc(now func() time.Time) SessionLockOption {
	return func(s *sessionLockService) { s.now = now }
}

// NewSessionLockService creates the PIN lock state machine. Lock state is
// in-memory per session; only the PIN hash itself is persisted.
func NewSessionLockService(pinRepo portsrepo.PinRepository, userSvc portssvc.UserSvcFacade, opts ...SessionLockOption) portssvc.SessionLockSvcFacade {
	s := &sessionLockService{
		pinRepo:      pinRepo,
		userSvc:      userSvc,
		idleTimeout:  defaultIdleTimeout,
		pollInterval: defaultPollInterval,
		now:          time.Now,
		sessions:     make(map[string]*lockSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SessionLockSvcFacade = (*sessionLockService)(nil)

// session returns the lock session, creating it in its initial state when
// unknown: Locked(verify) when a PIN is registered for the username,
// Locked(set) otherwise. Caller must hold s.mu.
func (s *sessionLockService) session(ctx context.Context, sessionKey, username string) (*lockSession, error) {
	if existing, ok := s.sessions[sessionKey]; ok {
		return existing, nil
	}

	state := domain.LockedVerify
	if _, err := s.pinRepo.FindPinHashByUsername(ctx, username); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		state = domain.LockedSet
	}

	created := &lockSession{
		username:     username,
		state:        state,
		lastActivity: s.now(),
	}
	s.sessions[sessionKey] = created
	return created, nil
}

// expireIfIdle locks the session when its idle clock ran out. Caller must
// hold s.mu.
func (s *sessionLockService) expireIfIdle(sess *lockSession) {
	if sess.state != domain.Unlocked {
		return
	}
	if s.now().Sub(sess.lastActivity) >= s.idleTimeout {
		sess.state = domain.LockedVerify
	}
}

func (s *sessionLockService) Status(ctx context.Context, sessionKey, username string) (domain.LockStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionKey, username)
	if err != nil {
		return domain.LockStatus{}, err
	}
	s.expireIfIdle(sess)
	return sess.status(), nil
}

func (s *sessionLockService) Touch(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey]
	if !ok {
		return
	}
	s.expireIfIdle(sess)
	if sess.state == domain.Unlocked {
		sess.lastActivity = s.now()
	}
}

func (s *sessionLockService) IsUnlocked(sessionKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey]
	if !ok {
		return false
	}
	s.expireIfIdle(sess)
	return sess.state == domain.Unlocked
}

func (s *sessionLockService) VerifyPin(ctx context.Context, sessionKey, username, pin string) (domain.LockStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionKey, username)
	if err != nil {
		return domain.LockStatus{}, err
	}
	if sess.state != domain.LockedVerify {
		return sess.status(), apperrors.NewAppError(409, "no PIN verification pending", apperrors.ErrSessionLocked)
	}

	hash, err := s.pinRepo.FindPinHashByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// PIN vanished underneath the session (reset elsewhere).
			sess.state = domain.LockedSet
			sess.pendingChange = false
			return sess.status(), nil
		}
		return domain.LockStatus{}, err
	}

	if !utils.CheckPinHash(pin, hash) {
		s.LogDebug(ctx, "pin mismatch", "username", username)
		return sess.status(), apperrors.ErrPinMismatch
	}

	if sess.pendingChange {
		// Old PIN verified; a new one must be chosen before unlocking.
		sess.state = domain.LockedSet
		sess.pendingChange = false
		return sess.status(), nil
	}

	sess.state = domain.Unlocked
	sess.lastActivity = s.now()
	s.LogInfo(ctx, "session unlocked", "username", username)
	return sess.status(), nil
}

func (s *sessionLockService) SetPin(ctx context.Context, sessionKey, username, pin, confirm string) (domain.LockStatus, error) {
	if !utils.IsValidPinFormat(pin) {
		return domain.LockStatus{}, apperrors.NewAppError(400, "PIN must be exactly 6 digits", apperrors.ErrValidation)
	}
	if pin != confirm {
		return domain.LockStatus{}, apperrors.NewAppError(400, "PIN confirmation does not match", apperrors.ErrPinMismatch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionKey, username)
	if err != nil {
		return domain.LockStatus{}, err
	}
	if sess.state != domain.LockedSet {
		return sess.status(), apperrors.NewAppError(409, "no PIN setup pending", apperrors.ErrSessionLocked)
	}

	hash, err := utils.HashPin(pin)
	if err != nil {
		return domain.LockStatus{}, err
	}
	if err := s.pinRepo.SavePinHash(ctx, username, hash); err != nil {
		return domain.LockStatus{}, err
	}

	sess.state = domain.Unlocked
	sess.pendingChange = false
	sess.lastActivity = s.now()
	s.LogInfo(ctx, "pin registered", "username", username)
	return sess.status(), nil
}

func (s *sessionLockService) ResetPin(ctx context.Context, sessionKey, username string, confirmed bool) (domain.LockStatus, error) {
	if !confirmed {
		return domain.LockStatus{}, apperrors.NewAppError(400, "reset requires explicit confirmation", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionKey, username)
	if err != nil {
		return domain.LockStatus{}, err
	}

	if err := s.pinRepo.DeletePin(ctx, username); err != nil {
		return domain.LockStatus{}, err
	}

	// Destroying the PIN revokes the refresh token too, so other devices
	// must sign in again rather than inherit the unset lock.
	if s.userSvc != nil {
		if user, lookupErr := s.userSvc.GetUserByUsername(ctx, username); lookupErr == nil {
			if clearErr := s.userSvc.ClearRefreshToken(ctx, user.UserID); clearErr != nil {
				s.LogError(ctx, clearErr, "failed to revoke refresh token on pin reset", "username", username)
			}
		}
	}

	sess.state = domain.LockedSet
	sess.pendingChange = false
	s.LogInfo(ctx, "pin reset", "username", username)
	return sess.status(), nil
}

func (s *sessionLockService) BeginChangePin(ctx context.Context, sessionKey, username string) (domain.LockStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionKey, username)
	if err != nil {
		return domain.LockStatus{}, err
	}
	s.expireIfIdle(sess)
	if sess.state != domain.Unlocked {
		return sess.status(), apperrors.NewAppError(409, "session must be unlocked to change PIN", apperrors.ErrSessionLocked)
	}

	sess.state = domain.LockedVerify
	sess.pendingChange = true
	return sess.status(), nil
}

// Run drives the idle-timeout poll until the context is cancelled. Expiry is
// also checked lazily on access, so the poll only matters for sessions
// nobody is asking about.
func (s *sessionLockService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *sessionLockService) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, sess := range s.sessions {
		s.expireIfIdle(sess)
		if now.Sub(sess.lastActivity) >= sessionEvictAfter {
			delete(s.sessions, key)
		}
	}
}
