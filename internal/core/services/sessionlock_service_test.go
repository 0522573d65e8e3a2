package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type SessionLockTestSuite struct {
	suite.Suite
	pinRepo *fakePinRepo
	service portssvc.SessionLockSvcFacade
	now     time.Time
}

func (s *SessionLockTestSuite) SetupTest() {
	s.pinRepo = newFakePinRepo()
	s.now = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
	s.service = services.NewSessionLockService(
		s.pinRepo,
		nil,
		services.WithIdleTimeout(5*time.Minute),
		services.WithLockNowFunc(func() time.Time { return s.now }),
	)
}

func (s *SessionLockTestSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

const (
	sessionKey = "user-1:abcd"
	username   = "shopowner"
)

func (s *SessionLockTestSuite) TestFirstSightWithoutPinIsLockedSet() {
	status, err := s.service.Status(context.Background(), sessionKey, username)
	s.Require().NoError(err)
	s.Equal(domain.LockedSet, status.State)
	s.False(s.service.IsUnlocked(sessionKey))
}

func (s *SessionLockTestSuite) TestFirstSightWithPinIsLockedVerify() {
	otherSession := "user-1:registered"
	_, err := s.service.SetPin(context.Background(), otherSession, username, "123456", "123456")
	s.Require().NoError(err)

	// A brand new session for the same username now starts at verify.
	status, err := s.service.Status(context.Background(), "user-1:fresh", username)
	s.Require().NoError(err)
	s.Equal(domain.LockedVerify, status.State)
}

func (s *SessionLockTestSuite) TestSetPinFlow() {
	ctx := context.Background()
	_, err := s.service.Status(ctx, sessionKey, username)
	s.Require().NoError(err)

	_, err = s.service.SetPin(ctx, sessionKey, username, "123456", "654321")
	s.Require().Error(err, "confirmation mismatch must fail")

	_, err = s.service.SetPin(ctx, sessionKey, username, "12345", "12345")
	s.Require().Error(err, "short PIN must fail")

	_, err = s.service.SetPin(ctx, sessionKey, username, "12a456", "12a456")
	s.Require().Error(err, "non-digit PIN must fail")

	status, err := s.service.SetPin(ctx, sessionKey, username, "123456", "123456")
	s.Require().NoError(err)
	s.Equal(domain.Unlocked, status.State)
	s.True(s.service.IsUnlocked(sessionKey))
}

func (s *SessionLockTestSuite) unlockWithNewPin(pin string) {
	ctx := context.Background()
	_, err := s.service.Status(ctx, sessionKey, username)
	s.Require().NoError(err)
	_, err = s.service.SetPin(ctx, sessionKey, username, pin, pin)
	s.Require().NoError(err)
	s.Require().True(s.service.IsUnlocked(sessionKey))
}

func (s *SessionLockTestSuite) TestIdleTimeoutLocksSession() {
	s.unlockWithNewPin("123456")

	// Just under the timeout: still unlocked, and activity resets the clock.
	s.advance(4 * time.Minute)
	s.True(s.service.IsUnlocked(sessionKey))
	s.service.Touch(sessionKey)

	s.advance(4 * time.Minute)
	s.True(s.service.IsUnlocked(sessionKey), "touch must reset the idle clock")

	// Past the timeout with no activity: locked, PIN required again.
	s.advance(5*time.Minute + time.Second)
	s.False(s.service.IsUnlocked(sessionKey))

	status, err := s.service.Status(context.Background(), sessionKey, username)
	s.Require().NoError(err)
	s.Equal(domain.LockedVerify, status.State)
}

func (s *SessionLockTestSuite) TestVerifyPin() {
	s.unlockWithNewPin("123456")
	s.advance(6 * time.Minute) // force the lock

	ctx := context.Background()
	status, err := s.service.VerifyPin(ctx, sessionKey, username, "000000")
	s.Require().ErrorIs(err, apperrors.ErrPinMismatch)
	s.Equal(domain.LockedVerify, status.State, "mismatch is recoverable")

	status, err = s.service.VerifyPin(ctx, sessionKey, username, "123456")
	s.Require().NoError(err)
	s.Equal(domain.Unlocked, status.State)
}

func (s *SessionLockTestSuite) TestVerifyWhileUnlockedIsRejected() {
	s.unlockWithNewPin("123456")
	_, err := s.service.VerifyPin(context.Background(), sessionKey, username, "123456")
	s.Require().Error(err)
}

func (s *SessionLockTestSuite) TestChangePinFlow() {
	s.unlockWithNewPin("123456")
	ctx := context.Background()

	status, err := s.service.BeginChangePin(ctx, sessionKey, username)
	s.Require().NoError(err)
	s.Equal(domain.LockedVerify, status.State)
	s.True(status.PendingChange)
	s.False(s.service.IsUnlocked(sessionKey))

	// Verifying the old PIN lands at set, not unlocked.
	status, err = s.service.VerifyPin(ctx, sessionKey, username, "123456")
	s.Require().NoError(err)
	s.Equal(domain.LockedSet, status.State)
	s.False(status.PendingChange)

	status, err = s.service.SetPin(ctx, sessionKey, username, "999999", "999999")
	s.Require().NoError(err)
	s.Equal(domain.Unlocked, status.State)

	// The old PIN no longer verifies after the next lock.
	s.advance(6 * time.Minute)
	_, err = s.service.VerifyPin(ctx, sessionKey, username, "123456")
	s.Require().ErrorIs(err, apperrors.ErrPinMismatch)
	_, err = s.service.VerifyPin(ctx, sessionKey, username, "999999")
	s.Require().NoError(err)
}

func (s *SessionLockTestSuite) TestResetPin() {
	s.unlockWithNewPin("123456")
	ctx := context.Background()

	_, err := s.service.ResetPin(ctx, sessionKey, username, false)
	s.Require().Error(err, "reset requires explicit confirmation")

	status, err := s.service.ResetPin(ctx, sessionKey, username, true)
	s.Require().NoError(err)
	s.Equal(domain.LockedSet, status.State)

	_, found := s.pinRepo.hashes[username]
	s.False(found, "stored PIN must be destroyed")
}

func TestSessionLockTestSuite(t *testing.T) {
	suite.Run(t, new(SessionLockTestSuite))
}
