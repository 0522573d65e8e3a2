package services

import (
	"context"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
)

// SessionLockSvcFacade is the PIN lock state machine gating the data
// surfaces. One lock session exists per (user, session key); sessions cycle
// between Unlocked and the two Locked sub-modes for their whole lifetime.
type SessionLockSvcFacade interface {
	// Status reports the session's current lock state, creating the session
	// on first sight: Unlocked when a verified-PIN marker exists, otherwise
	// Locked(verify) when a PIN is registered for the username and
	// Locked(set) when none is.
	Status(ctx context.Context, sessionKey, username string) (domain.LockStatus, error)

	// Touch records user activity, resetting the idle clock. Only effective
	// while Unlocked.
	Touch(sessionKey string)

	// IsUnlocked reports whether the session may reach the data surfaces.
	IsUnlocked(sessionKey string) bool

	// VerifyPin attempts to unlock with the stored PIN. A mismatch is
	// recoverable and leaves the session in Locked(verify); a match during
	// a pending change lands in Locked(set) instead of Unlocked.
	VerifyPin(ctx context.Context, sessionKey, username, pin string) (domain.LockStatus, error)

	// SetPin registers a new PIN from Locked(set); entry and confirmation
	// must match. On success the session unlocks with a verified marker.
	SetPin(ctx context.Context, sessionKey, username, pin, confirm string) (domain.LockStatus, error)

	// ResetPin destroys the stored PIN after explicit confirmation, clears
	// the verified marker, revokes refresh tokens upstream and re-enters
	// Locked(set).
	ResetPin(ctx context.Context, sessionKey, username string, confirmed bool) (domain.LockStatus, error)

	// BeginChangePin moves an Unlocked session into Locked(verify) with a
	// pending change, so a new PIN must be set after the old one verifies.
	BeginChangePin(ctx context.Context, sessionKey, username string) (domain.LockStatus, error)

	// Run drives the idle-timeout poll until the context is cancelled.
	Run(ctx context.Context)
}
